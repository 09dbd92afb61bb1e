package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-file-keeper/internal/service"
	"github.com/MKhiriev/go-file-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusBadRequest,
	service.ErrFileTypeNotAllowed:  http.StatusBadRequest,
	service.ErrInvalidDownloadCode: http.StatusBadRequest,
	service.ErrPreviewNotSupported: http.StatusBadRequest,
	service.ErrTokenInvalid:        http.StatusUnauthorized,
	service.ErrUnauthorized:        http.StatusUnauthorized,
	service.ErrForbidden:           http.StatusForbidden,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	store.ErrUsernameTaken:  http.StatusBadRequest,
	store.ErrNoUserWasFound: http.StatusNotFound,
	store.ErrFileNotFound:   http.StatusNotFound,
	store.ErrBlobNotFound:   http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
