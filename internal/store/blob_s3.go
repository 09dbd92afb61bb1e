package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// s3BlobStorage is the object-store implementation of [BlobStorage] for
// S3-compatible backends (MinIO, AWS S3). Selected via the
// storage.blobs.backend = "s3" configuration.
type s3BlobStorage struct {
	client *minio.Client
	bucket string
	region string
	logger *logger.Logger
}

// NewS3BlobStorage constructs an S3-compatible [BlobStorage] from the
// given configuration and ensures the bucket exists before use.
func NewS3BlobStorage(ctx context.Context, cfg config.S3, logger *logger.Logger) (BlobStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		logger.Err(err).Str("endpoint", cfg.Endpoint).Msg("error creating s3 client")
		return nil, fmt.Errorf("error creating s3 client: %w", err)
	}

	s := &s3BlobStorage{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: logger,
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	logger.Debug().Str("bucket", cfg.Bucket).Msg("creating s3 blob storage")
	return s, nil
}

func (s *s3BlobStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("error creating bucket %s: %w", s.bucket, err)
		}
	}

	return nil
}

// Save uploads the blob as an object named name.
func (s *s3BlobStorage) Save(ctx context.Context, name string, data io.Reader, size int64) error {
	log := logger.FromContext(ctx)

	_, err := s.client.PutObject(ctx, s.bucket, name, data, size, minio.PutObjectOptions{})
	if err != nil {
		log.Err(err).Str("blob", name).Msg("error uploading blob object")
		return fmt.Errorf("error uploading blob object: %w", err)
	}

	return nil
}

// Open returns a reader over the object's bytes or [ErrBlobNotFound].
//
// GetObject is lazy, so a missing key only surfaces on the first read;
// Stat is checked up front to keep the NotFound contract.
func (s *s3BlobStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{}); err != nil {
		if isS3NotFound(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("error checking blob object: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("error opening blob object: %w", err)
	}

	return obj, nil
}

// Delete removes the object; an absent object is not an error.
func (s *s3BlobStorage) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
	if err != nil && !isS3NotFound(err) {
		return fmt.Errorf("error removing blob object: %w", err)
	}

	return nil
}

func isS3NotFound(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.StatusCode == 404
	}
	return false
}
