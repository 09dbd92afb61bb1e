package service

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
)

// allowedExtensions maps every accepted upload extension to its canonical
// content type. Uploads with any other extension are rejected outright.
var allowedExtensions = map[string]string{
	".txt":  "text/plain",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".zip":  "application/zip",
	".rar":  "application/vnd.rar",
}

// contentTypeForFilename resolves the canonical content type from the
// filename's extension (case-insensitive). ok is false for extensions
// outside the allow-list.
func contentTypeForFilename(filename string) (contentType string, ok bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok = allowedExtensions[ext]
	return contentType, ok
}

// isValidDownloadCode reports whether code is exactly four ASCII digits.
func isValidDownloadCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// generateDownloadCode produces a random 4-digit code, zero-padded.
func generateDownloadCode() string {
	digits := make([]byte, 4)
	for i := range digits {
		digits[i] = byte('0' + rand.IntN(10))
	}
	return string(digits)
}
