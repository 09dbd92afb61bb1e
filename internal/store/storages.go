package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// Storages aggregates every persistence backend the services depend on:
// the user and file repositories over the shared DB handle, and the blob
// storage holding uploaded file bytes.
type Storages struct {
	UserRepository UserRepository
	FileRepository FileRepository
	BlobStorage    BlobStorage

	db *DB
}

// NewStorages opens the configured database (running migrations on the
// PostgreSQL backend), constructs the blob storage selected by
// cfg.Blobs.Backend, and wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.DB.Driver {
	case "sqlite3":
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
		if err == nil {
			err = db.Migrate()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("error setting up database: %w", err)
	}

	var blobs BlobStorage
	switch cfg.Blobs.Backend {
	case "s3":
		blobs, err = NewS3BlobStorage(ctx, cfg.Blobs.S3, log)
	default:
		blobs, err = NewFSBlobStorage(cfg.Blobs.UploadDir, log)
	}
	if err != nil {
		return nil, fmt.Errorf("error setting up blob storage: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		FileRepository: NewFileRepository(db, log),
		BlobStorage:    blobs,
		db:             db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
