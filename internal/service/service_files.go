package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/render"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

// fileService is the concrete implementation of FileService. It owns the
// full lifecycle of a file (creation, reads, the download counter, and
// deletion) and runs every operation through the access policy in
// access_policy.go before touching storage.
//
// A file's bytes and its metadata record are created and destroyed
// together: blob write precedes the metadata insert on upload, and blob
// removal (best-effort) precedes the metadata delete on removal.
type fileService struct {
	files    store.FileRepository
	blobs    store.BlobStorage
	renderer render.Renderer
	logger   *logger.Logger
}

// NewFileService constructs a FileService over the given repositories and
// preview renderer.
func NewFileService(files store.FileRepository, blobs store.BlobStorage, renderer render.Renderer, logger *logger.Logger) FileService {
	return &fileService{
		files:    files,
		blobs:    blobs,
		renderer: renderer,
		logger:   logger,
	}
}

// Upload creates a new file record together with its bytes.
//
// Validation happens before anything is written:
//   - the filename extension must be on the allow-list
//     (ErrFileTypeNotAllowed), and decides the canonical content type;
//   - a caller-supplied download code must be exactly four digits
//     (ErrInvalidDownloadCode); for a private upload without one, a
//     random code is generated.
//
// A private file always commits with a code; a public file never carries
// one, and a code supplied for a public upload is ignored. The bytes are
// stored first under a unique generated name, then the metadata record is
// inserted; if the insert fails the just-written blob is removed so no
// orphan bytes survive a failed upload.
func (s *fileService) Upload(ctx context.Context, upload models.FileUpload) (models.FileInfo, error) {
	log := logger.FromContext(ctx)

	contentType, ok := contentTypeForFilename(upload.Filename)
	if !ok {
		log.Warn().Str("filename", upload.Filename).Msg("upload rejected: file type not allowed")
		return models.FileInfo{}, ErrFileTypeNotAllowed
	}

	if upload.DownloadCode != "" && !isValidDownloadCode(upload.DownloadCode) {
		log.Warn().Str("filename", upload.Filename).Msg("upload rejected: malformed download code")
		return models.FileInfo{}, ErrInvalidDownloadCode
	}

	code := ""
	if upload.IsPrivate {
		code = upload.DownloadCode
		if code == "" {
			code = generateDownloadCode()
		}
	}

	storageName := utils.GenerateStorageName(time.Now(), upload.Filename)
	if err := s.blobs.Save(ctx, storageName, upload.Data, upload.Size); err != nil {
		log.Err(err).Str("filename", upload.Filename).Msg("blob write failed")
		return models.FileInfo{}, fmt.Errorf("blob write failed: %w", err)
	}

	created, err := s.files.CreateFile(ctx, models.FileInfo{
		Filename:     upload.Filename,
		StoragePath:  storageName,
		OwnerID:      upload.OwnerID,
		IsPrivate:    upload.IsPrivate,
		DownloadCode: code,
		FileType:     contentType,
	})
	if err != nil {
		log.Err(err).Str("filename", upload.Filename).Msg("file record creation failed")
		// do not leave orphan bytes behind a failed insert
		if cleanupErr := s.blobs.Delete(ctx, storageName); cleanupErr != nil {
			log.Err(cleanupErr).Str("blob", storageName).Msg("orphan blob cleanup failed")
		}
		return models.FileInfo{}, fmt.Errorf("file record creation failed: %w", err)
	}

	return created, nil
}

// List returns every file, newest upload first, projected for the caller:
// download codes survive only on the caller's own files. callerID is the
// authenticated user (listing requires auth at the transport layer).
func (s *fileService) List(ctx context.Context, callerID int64) ([]models.FileInfo, error) {
	files, err := s.files.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing files failed: %w", err)
	}

	redacted := make([]models.FileInfo, len(files))
	for i, file := range files {
		redacted[i] = file.Redacted(callerID)
	}

	return redacted, nil
}

// Info returns a file's metadata under the same policy gate as a
// download, redacted for the caller. The download counter is untouched.
func (s *fileService) Info(ctx context.Context, fileID int64, caller *models.User, code string) (models.FileInfo, error) {
	file, err := s.gateRead(ctx, fileID, caller, code)
	if err != nil {
		return models.FileInfo{}, err
	}

	return file.Redacted(callerID(caller)), nil
}

// Download returns the file record and a reader over its bytes.
//
// The bytes must actually exist: a metadata record whose blob has gone
// missing reports store.ErrBlobNotFound, which the transport maps to 404
// like a missing record. The download counter increments only once the
// blob is confirmed present, and never on forbidden attempts.
func (s *fileService) Download(ctx context.Context, fileID int64, caller *models.User, code string) (models.FileInfo, io.ReadCloser, error) {
	log := logger.FromContext(ctx)

	file, err := s.gateRead(ctx, fileID, caller, code)
	if err != nil {
		return models.FileInfo{}, nil, err
	}

	blob, err := s.blobs.Open(ctx, file.StoragePath)
	if err != nil {
		if errors.Is(err, store.ErrBlobNotFound) {
			log.Warn().Int64("file_id", fileID).Str("blob", file.StoragePath).Msg("file bytes missing for existing record")
			return models.FileInfo{}, nil, store.ErrBlobNotFound
		}
		return models.FileInfo{}, nil, fmt.Errorf("opening file bytes failed: %w", err)
	}

	if err := s.files.IncrementDownloads(ctx, fileID); err != nil {
		// the download still proceeds; the counter is informational
		log.Err(err).Int64("file_id", fileID).Msg("download counter increment failed")
	}

	return file, blob, nil
}

// Preview renders a policy-gated preview of the file's content.
//
// Eligibility is a property of the file type alone and is checked only
// after access has been granted, so a forbidden caller learns nothing
// about the type of a private file.
func (s *fileService) Preview(ctx context.Context, fileID int64, caller *models.User, code string) ([]byte, string, error) {
	log := logger.FromContext(ctx)

	file, err := s.gateRead(ctx, fileID, caller, code)
	if err != nil {
		return nil, "", err
	}

	if !CanPreview(file.FileType) {
		return nil, "", ErrPreviewNotSupported
	}

	blob, err := s.blobs.Open(ctx, file.StoragePath)
	if err != nil {
		if errors.Is(err, store.ErrBlobNotFound) {
			return nil, "", store.ErrBlobNotFound
		}
		return nil, "", fmt.Errorf("opening file bytes failed: %w", err)
	}
	defer blob.Close()

	data, err := io.ReadAll(blob)
	if err != nil {
		return nil, "", fmt.Errorf("reading file bytes failed: %w", err)
	}

	rendered, renderedType, err := s.renderer.Render(ctx, file.FileType, data)
	if err != nil {
		if errors.Is(err, render.ErrRenderUnsupported) {
			return nil, "", ErrPreviewNotSupported
		}
		log.Err(err).Int64("file_id", fileID).Str("file_type", file.FileType).Msg("preview rendering failed")
		return nil, "", fmt.Errorf("preview rendering failed: %w", err)
	}

	return rendered, renderedType, nil
}

// Delete removes a file's bytes and metadata, owner-only via CanManage.
//
// The removal is an explicit two-step sequence: physical bytes first,
// best-effort (a missing or undeletable blob is logged and skipped), then
// the metadata record. A blob-delete failure therefore never blocks the
// record's removal. The reverse failure, a record delete failing after
// the bytes are gone, is an accepted asymmetry and is not rolled back.
func (s *fileService) Delete(ctx context.Context, fileID int64, caller *models.User) error {
	log := logger.FromContext(ctx)

	file, err := s.files.GetFileByID(ctx, fileID)
	if err != nil {
		return err
	}

	if err := CanManage(caller, file); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, file.StoragePath); err != nil {
		log.Err(err).Int64("file_id", fileID).Str("blob", file.StoragePath).Msg("best-effort blob delete failed")
	}

	if err := s.files.DeleteFile(ctx, fileID); err != nil {
		return err
	}

	return nil
}

// gateRead fetches the record and applies the view/download policy.
// Denials surface as ErrForbidden; a missing record as ErrFileNotFound.
func (s *fileService) gateRead(ctx context.Context, fileID int64, caller *models.User, code string) (models.FileInfo, error) {
	file, err := s.files.GetFileByID(ctx, fileID)
	if err != nil {
		return models.FileInfo{}, err
	}

	if !CanViewOrDownload(caller, file, code) {
		return models.FileInfo{}, ErrForbidden
	}

	return file, nil
}

func callerID(caller *models.User) int64 {
	if caller == nil {
		return 0
	}
	return caller.UserID
}
