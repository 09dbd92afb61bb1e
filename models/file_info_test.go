package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFileInfo_Redacted(t *testing.T) {
	file := FileInfo{FileID: 1, OwnerID: 10, IsPrivate: true, DownloadCode: "1234"}

	owner := file.Redacted(10)
	if owner.DownloadCode != "1234" {
		t.Errorf("expected the owner to keep the code, got %q", owner.DownloadCode)
	}

	stranger := file.Redacted(20)
	if stranger.DownloadCode != "" {
		t.Errorf("expected the code redacted for non-owners, got %q", stranger.DownloadCode)
	}

	anonymous := file.Redacted(0)
	if anonymous.DownloadCode != "" {
		t.Errorf("expected the code redacted for anonymous callers, got %q", anonymous.DownloadCode)
	}

	if file.DownloadCode != "1234" {
		t.Error("Redacted must not mutate the receiver")
	}
}

func TestFileInfo_JSONHidesInternalFields(t *testing.T) {
	file := FileInfo{
		FileID:      1,
		Filename:    "report.pdf",
		StoragePath: "internal-blob-name",
		OwnerID:     10,
	}

	data, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	if strings.Contains(string(data), "internal-blob-name") {
		t.Error("StoragePath must never appear in JSON output")
	}
}

func TestFileInfo_JSONOmitsEmptyCode(t *testing.T) {
	data, err := json.Marshal(FileInfo{FileID: 1, Filename: "notes.txt"})
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	if strings.Contains(string(data), "download_code") {
		t.Error("empty download code must be omitted from JSON output")
	}
}
