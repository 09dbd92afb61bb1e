package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// fsBlobStorage is the filesystem implementation of [BlobStorage]. Blobs
// are plain files under a single directory; names are the unique storage
// names generated at upload time, so no two writers ever target the same
// path.
type fsBlobStorage struct {
	dir    string
	logger *logger.Logger
}

// NewFSBlobStorage constructs a filesystem [BlobStorage] rooted at dir,
// creating the directory if it does not exist.
func NewFSBlobStorage(dir string, logger *logger.Logger) (BlobStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Err(err).Str("dir", dir).Msg("error creating blob directory")
		return nil, fmt.Errorf("error creating blob directory: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("creating filesystem blob storage")
	return &fsBlobStorage{dir: dir, logger: logger}, nil
}

// Save streams data into a file named name under the storage directory.
// The write goes to a temporary file first and is renamed into place, so
// a crashed upload never leaves a half-written blob under its final name.
func (s *fsBlobStorage) Save(ctx context.Context, name string, data io.Reader, size int64) error {
	log := logger.FromContext(ctx)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		log.Err(err).Str("blob", name).Msg("error creating temp file for blob")
		return fmt.Errorf("error creating temp file for blob: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		log.Err(err).Str("blob", name).Msg("error writing blob bytes")
		return fmt.Errorf("error writing blob bytes: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing blob file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		log.Err(err).Str("blob", name).Msg("error renaming blob into place")
		return fmt.Errorf("error renaming blob into place: %w", err)
	}

	return nil
}

// Open returns a reader over the blob's bytes or [ErrBlobNotFound] when
// the metadata record outlived its bytes.
func (s *fsBlobStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("error opening blob: %w", err)
	}

	return f, nil
}

// Delete removes the blob file. An absent blob is not an error: metadata
// deletion proceeds regardless of whether the bytes were still on disk.
func (s *fsBlobStorage) Delete(ctx context.Context, name string) error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing blob: %w", err)
	}

	return nil
}

func (s *fsBlobStorage) path(name string) string {
	// blob names come from GenerateStorageName, but keep path traversal
	// out of the storage directory regardless
	return filepath.Join(s.dir, filepath.Base(name))
}
