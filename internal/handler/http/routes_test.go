package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
	"github.com/MKhiriev/go-file-keeper/models"
)

// TestRoutes_AuthBoundaries drives requests through the full router to
// verify which routes demand a bearer token and which accept anonymous
// callers.
func TestRoutes_AuthBoundaries(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, tokenString string) (models.User, error) {
			if tokenString != "valid.jwt.token" {
				return models.User{}, service.ErrTokenInvalid
			}
			return models.User{UserID: 7, Username: "alice"}, nil
		},
	}
	files := &mockFileService{
		listFn: func(_ context.Context, _ int64) ([]models.FileInfo, error) {
			return nil, nil
		},
		infoFn: func(_ context.Context, _ int64, caller *models.User, _ string) (models.FileInfo, error) {
			assert.Nil(t, caller)
			return models.FileInfo{FileID: 5, FileType: "text/plain"}, nil
		},
	}
	h := NewHandler(&service.Services{AuthService: auth, FileService: files}, logger.Nop())
	router := h.Init()

	// listing requires authentication
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/files", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// file info is reachable anonymously; the policy decides access
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/files/5/info", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_TraceIDHeader(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.Token, error) {
			return stubToken("signed", 1), nil
		},
	}
	h := NewHandler(&service.Services{AuthService: auth}, logger.Nop())
	router := h.Init()

	form := strings.NewReader("username=alice&password=secret")
	req := httptest.NewRequest(http.MethodPost, "/api/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader), "every response carries a trace ID")
}

func TestRoutes_TraceIDPropagatedFromRequest(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.Token, error) {
			return stubToken("signed", 1), nil
		},
	}
	h := NewHandler(&service.Services{AuthService: auth}, logger.Nop())
	router := h.Init()

	form := strings.NewReader("username=alice&password=secret")
	req := httptest.NewRequest(http.MethodPost, "/api/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(traceIDHeader, "caller-supplied-id")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "caller-supplied-id", rec.Header().Get(traceIDHeader))
}
