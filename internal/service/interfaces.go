package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-file-keeper/models"
)

// AuthService owns the session lifecycle: account creation, credential
// verification, and the single-active-token contract. A user has at most
// one live session; logging in again supersedes the previous token and
// logging out clears it.
type AuthService interface {
	// Register creates a new account and returns its first session token.
	Register(ctx context.Context, username, password string) (models.Token, error)

	// Login verifies credentials and returns a fresh session token,
	// unconditionally superseding any previously issued one.
	Login(ctx context.Context, username, password string) (models.Token, error)

	// Logout clears the user's active token. Calling it for an already
	// logged-out user is a no-op.
	Logout(ctx context.Context, userID int64) error

	// Authenticate resolves a bearer token string to its user. It
	// requires both cryptographic validity and equality with the user's
	// stored active token; any failure yields ErrTokenInvalid.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)

	// ChangePassword rehashes and stores a new password for the user.
	ChangePassword(ctx context.Context, userID int64, newPassword string) error
}

// FileService owns the file record lifecycle and gates every read and
// mutation through the access policy. caller is nil for anonymous
// requests; code is the optional download code accompanying the request.
type FileService interface {
	// Upload validates type and code, writes the bytes to blob storage,
	// and commits the metadata record.
	Upload(ctx context.Context, upload models.FileUpload) (models.FileInfo, error)

	// List returns all files newest-first, with download codes redacted
	// for files the caller does not own.
	List(ctx context.Context, callerID int64) ([]models.FileInfo, error)

	// Info returns a file's metadata, policy-gated like a download and
	// redacted for the caller.
	Info(ctx context.Context, fileID int64, caller *models.User, code string) (models.FileInfo, error)

	// Download returns the file record and a reader over its bytes, and
	// increments the download counter. The caller must close the reader.
	Download(ctx context.Context, fileID int64, caller *models.User, code string) (models.FileInfo, io.ReadCloser, error)

	// Preview renders a policy-gated preview of the file's content.
	// Returns the rendered bytes and their content type.
	Preview(ctx context.Context, fileID int64, caller *models.User, code string) ([]byte, string, error)

	// Delete removes a file's bytes (best-effort) and its metadata
	// record. Owner-only.
	Delete(ctx context.Context, fileID int64, caller *models.User) error
}
