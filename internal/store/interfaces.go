package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-file-keeper/models"
)

// UserRepository is the data-access contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with
	// server-assigned fields populated. A duplicate username yields
	// ErrUsernameTaken via the storage-layer uniqueness constraint.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns the account with the given username or
	// ErrNoUserWasFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID returns the account with the given ID or
	// ErrNoUserWasFound.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateActiveToken overwrites the user's stored active token.
	// Pass an empty string to clear it (logout).
	UpdateActiveToken(ctx context.Context, userID int64, token string) error

	// UpdatePasswordHash replaces the user's stored password hash.
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

// FileRepository is the data-access contract for file metadata records.
type FileRepository interface {
	// CreateFile persists a new file record and returns it with
	// server-assigned fields populated.
	CreateFile(ctx context.Context, file models.FileInfo) (models.FileInfo, error)

	// GetFileByID returns the record with the given ID or ErrFileNotFound.
	GetFileByID(ctx context.Context, fileID int64) (models.FileInfo, error)

	// ListFiles returns all file records ordered by upload time, newest
	// first, with the uploader's username resolved.
	ListFiles(ctx context.Context) ([]models.FileInfo, error)

	// IncrementDownloads adds one to the record's download counter.
	IncrementDownloads(ctx context.Context, fileID int64) error

	// DeleteFile removes the record. Returns ErrFileNotFound when no row
	// was affected.
	DeleteFile(ctx context.Context, fileID int64) error
}

// BlobStorage persists the physical bytes of uploaded files under unique
// names generated at upload time. Implementations: local filesystem
// (default) and an S3-compatible object store.
type BlobStorage interface {
	// Save writes the blob under the given unique name.
	Save(ctx context.Context, name string, data io.Reader, size int64) error

	// Open returns a reader over the blob's bytes, or ErrBlobNotFound.
	// The caller must close the returned reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting an absent blob is not an error:
	// record deletion treats blob removal as best-effort.
	Delete(ctx context.Context, name string) error
}
