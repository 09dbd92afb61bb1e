package http

import (
	"context"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/service"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

// callerFromContext returns the authenticated user placed in the context by
// the auth middleware, or nil for anonymous requests.
func callerFromContext(ctx context.Context) *models.User {
	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		return nil
	}
	return &user
}

// toFileInfoResponse converts a redacted file record into its transport
// representation. The record must already have passed through
// [models.FileInfo.Redacted] so the download code is present only for the
// owner.
func toFileInfoResponse(file models.FileInfo) models.FileInfoResponse {
	return models.FileInfoResponse{
		FileID:       file.FileID,
		Filename:     file.Filename,
		UploadTime:   file.UploadTime.Format(time.RFC3339),
		Uploader:     file.Uploader,
		IsPrivate:    file.IsPrivate,
		FileType:     file.FileType,
		Downloads:    file.Downloads,
		DownloadCode: file.DownloadCode,
		CanPreview:   service.CanPreview(file.FileType),
	}
}

// toFileInfoResponses converts a redacted listing, preserving order.
func toFileInfoResponses(files []models.FileInfo) []models.FileInfoResponse {
	responses := make([]models.FileInfoResponse, 0, len(files))
	for _, file := range files {
		responses = append(responses, toFileInfoResponse(file))
	}
	return responses
}
