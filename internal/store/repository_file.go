package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/models"
)

// fileRepository is the SQL-backed implementation of [FileRepository].
// It manages file metadata records in the "files" table; the physical
// bytes live in [BlobStorage] and are not this repository's concern.
type fileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFileRepository constructs a [FileRepository] backed by the provided
// database connection and logger.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

// fileColumns is the canonical column order scanned by every file query.
var fileColumns = []string{
	"file_id", "filename", "storage_path", "upload_time",
	"owner_id", "is_private", "download_code", "file_type", "downloads",
}

// CreateFile persists a new file metadata record and returns it with
// server-assigned fields (FileID, UploadTime) populated.
//
// The caller guarantees the private/code invariant (code present iff
// private); the database CHECK constraint backs it up.
func (r *fileRepository) CreateFile(ctx context.Context, file models.FileInfo) (models.FileInfo, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(file.TableName()).
		Columns("filename", "storage_path", "owner_id", "is_private", "download_code", "file_type").
		Values(file.Filename, file.StoragePath, file.OwnerID, file.IsPrivate, nullableCode(file.DownloadCode), file.FileType).
		Suffix("RETURNING " + joinColumns(fileColumns)).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.CreateFile").Msg("error: building query")
		return models.FileInfo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.FileInfo
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanFile(row.Err, row.Scan, &created); err != nil {
		log.Err(err).Str("func", "*fileRepository.CreateFile").Msg("error: scanning created file")
		return models.FileInfo{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetFileByID retrieves the file record with the given primary key.
//
// Error handling:
//   - no matching row → [ErrFileNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *fileRepository) GetFileByID(ctx context.Context, fileID int64) (models.FileInfo, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select(fileColumns...).
		From(models.FileInfo{}.TableName()).
		Where(sq.Eq{"file_id": fileID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.GetFileByID").Msg("error: building query")
		return models.FileInfo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.FileInfo
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanFile(row.Err, row.Scan, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FileInfo{}, ErrFileNotFound
		}
		log.Err(err).Str("func", "*fileRepository.GetFileByID").Msg("error: scanning found file")
		return models.FileInfo{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// ListFiles returns every file record ordered by upload time, newest
// first, with each record's Uploader field resolved via a join on the
// users table. No caller-specific filtering or redaction happens here;
// the service layer projects the result for the requesting identity.
func (r *fileRepository) ListFiles(ctx context.Context) ([]models.FileInfo, error) {
	log := logger.FromContext(ctx)

	columns := append(prefixColumns("f", fileColumns), "u.username")
	query, args, err := r.db.Builder().
		Select(columns...).
		From(models.FileInfo{}.TableName() + " f").
		Join(models.User{}.TableName() + " u ON u.user_id = f.owner_id").
		OrderBy("f.upload_time DESC", "f.file_id DESC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.ListFiles").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.ListFiles").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var files []models.FileInfo
	for rows.Next() {
		var file models.FileInfo
		var code sql.NullString
		if err := rows.Scan(
			&file.FileID, &file.Filename, &file.StoragePath, &file.UploadTime,
			&file.OwnerID, &file.IsPrivate, &code, &file.FileType, &file.Downloads,
			&file.Uploader,
		); err != nil {
			log.Err(err).Str("func", "*fileRepository.ListFiles").Msg("error: scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		file.DownloadCode = code.String
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}

// IncrementDownloads adds one to the record's download counter. The
// counter only moves after an authorized download has streamed
// successfully, so forbidden attempts never touch it.
func (r *fileRepository) IncrementDownloads(ctx context.Context, fileID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Update(models.FileInfo{}.TableName()).
		Set("downloads", sq.Expr("downloads + 1")).
		Where(sq.Eq{"file_id": fileID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.IncrementDownloads").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.IncrementDownloads").Msg("error: executing update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	return nil
}

// DeleteFile removes the metadata record. The caller removes the physical
// bytes first (best-effort); this method only reports ErrFileNotFound when
// the record itself is already gone.
func (r *fileRepository) DeleteFile(ctx context.Context, fileID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete(models.FileInfo{}.TableName()).
		Where(sq.Eq{"file_id": fileID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.DeleteFile").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.DeleteFile").Msg("error: executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	return nil
}

// nullableCode maps an empty download code to SQL NULL so the database
// CHECK constraint sees public files with no code at all.
func nullableCode(code string) any {
	if code == "" {
		return nil
	}
	return code
}

// scanFile scans a single file row shared by CreateFile and GetFileByID.
// rowErr and scan decouple it from *sql.Row for easier reuse.
func scanFile(rowErr func() error, scan func(...any) error, dst *models.FileInfo) error {
	if err := rowErr(); err != nil {
		return err
	}

	var code sql.NullString
	if err := scan(
		&dst.FileID, &dst.Filename, &dst.StoragePath, &dst.UploadTime,
		&dst.OwnerID, &dst.IsPrivate, &code, &dst.FileType, &dst.Downloads,
	); err != nil {
		return err
	}
	dst.DownloadCode = code.String

	return nil
}
