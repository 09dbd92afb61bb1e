package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-file-keeper/internal/service"
	"github.com/MKhiriev/go-file-keeper/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidCredentials, http.StatusBadRequest},
		{service.ErrFileTypeNotAllowed, http.StatusBadRequest},
		{service.ErrInvalidDownloadCode, http.StatusBadRequest},
		{service.ErrPreviewNotSupported, http.StatusBadRequest},
		{store.ErrUsernameTaken, http.StatusBadRequest},
		{service.ErrTokenInvalid, http.StatusUnauthorized},
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{store.ErrFileNotFound, http.StatusNotFound},
		{store.ErrBlobNotFound, http.StatusNotFound},
		{store.ErrNoUserWasFound, http.StatusNotFound},
		{store.ErrExecutingQuery, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromError(tt.err), "error %v", tt.err)
	}
}

func TestStatusFromError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("gate read failed: %w", service.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, statusFromError(wrapped))
}
