package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/models"
)

func newTestFileRepo(t *testing.T) (*fileRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &fileRepository{
		db: &DB{
			DB:      db,
			builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
			logger:  l,
		},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateFile_Success(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()
	file := models.FileInfo{
		Filename:     "report.pdf",
		StoragePath:  "20260115T101500_x_report.pdf",
		OwnerID:      1,
		IsPrivate:    true,
		DownloadCode: "1234",
		FileType:     "application/pdf",
	}

	now := time.Now()
	rows := sqlmock.
		NewRows(fileColumns).
		AddRow(7, file.Filename, file.StoragePath, now, file.OwnerID, true, "1234", file.FileType, 0)

	mock.ExpectQuery("INSERT INTO files").
		WithArgs(file.Filename, file.StoragePath, file.OwnerID, file.IsPrivate, file.DownloadCode, file.FileType).
		WillReturnRows(rows)

	created, err := repo.CreateFile(ctx, file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.FileID != 7 {
		t.Errorf("expected FileID=7, got %d", created.FileID)
	}
	if created.DownloadCode != "1234" {
		t.Errorf("expected download code to round-trip, got %q", created.DownloadCode)
	}
}

func TestCreateFile_PublicFileStoresNullCode(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()
	file := models.FileInfo{
		Filename:    "notes.txt",
		StoragePath: "20260115T101500_x_notes.txt",
		OwnerID:     1,
		FileType:    "text/plain",
	}

	now := time.Now()
	rows := sqlmock.
		NewRows(fileColumns).
		AddRow(8, file.Filename, file.StoragePath, now, file.OwnerID, false, nil, file.FileType, 0)

	// empty code must be inserted as NULL, not as an empty string
	mock.ExpectQuery("INSERT INTO files").
		WithArgs(file.Filename, file.StoragePath, file.OwnerID, false, nil, file.FileType).
		WillReturnRows(rows)

	created, err := repo.CreateFile(ctx, file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.DownloadCode != "" {
		t.Errorf("expected empty download code, got %q", created.DownloadCode)
	}
}

func TestGetFileByID_NotFound(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT file_id").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetFileByID(ctx, 99)
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestListFiles_NewestFirstWithUploader(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	columns := append(fileColumns, "username")
	rows := sqlmock.
		NewRows(columns).
		AddRow(2, "late.txt", "p2", now, 1, false, nil, "text/plain", 3, "alice").
		AddRow(1, "early.txt", "p1", now.Add(-time.Hour), 2, true, "4321", "text/plain", 0, "bob")

	mock.ExpectQuery("SELECT f.file_id").
		WillReturnRows(rows)

	files, err := repo.ListFiles(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].FileID != 2 || files[1].FileID != 1 {
		t.Errorf("expected newest-first order, got %d then %d", files[0].FileID, files[1].FileID)
	}
	if files[0].Uploader != "alice" || files[1].Uploader != "bob" {
		t.Errorf("expected uploader names resolved, got %q and %q", files[0].Uploader, files[1].Uploader)
	}
	if files[1].DownloadCode != "4321" {
		t.Errorf("expected download code scanned, got %q", files[1].DownloadCode)
	}
}

func TestListFiles_QueryError(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT f.file_id").
		WillReturnError(errors.New("db failure"))

	_, err := repo.ListFiles(ctx)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestIncrementDownloads_Success(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE files").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.IncrementDownloads(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncrementDownloads_NoSuchFile(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE files").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementDownloads(ctx, 99)
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestDeleteFile_Success(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM files").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteFile(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteFile_AlreadyGone(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM files").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteFile(ctx, 99)
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}
