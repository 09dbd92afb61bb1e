package models

import "time"

// FileInfo is the metadata record of a single uploaded file.
//
// The physical bytes live in blob storage under StoragePath, a generated
// unique name; Filename keeps the original display name. The record and
// its bytes are created together on upload and destroyed together on
// deletion.
//
// Invariant: DownloadCode is non-empty if and only if IsPrivate is true,
// and when present it is exactly four ASCII digits.
type FileInfo struct {
	// FileID is the internal unique identifier of the file record.
	FileID int64 `json:"id"`

	// Filename is the original name the file was uploaded under.
	// Shown to users; never used as the on-disk name.
	Filename string `json:"filename"`

	// StoragePath is the unique blob name the bytes are stored under.
	// Internal detail, never exposed via JSON.
	StoragePath string `json:"-"`

	// UploadTime is when the file was uploaded. Listings are ordered
	// by this field, newest first.
	UploadTime time.Time `json:"upload_time"`

	// OwnerID references the uploading user (users.user_id).
	OwnerID int64 `json:"-"`

	// IsPrivate marks the file as requiring a download code (or
	// ownership) for access. Public files are open to anyone.
	IsPrivate bool `json:"is_private"`

	// DownloadCode is the 4-digit access code for private files.
	// Empty for public files. Redacted for non-owners at presentation.
	DownloadCode string `json:"download_code,omitempty"`

	// FileType is the canonical content type derived from the original
	// file extension at upload time (e.g. "application/pdf").
	FileType string `json:"file_type"`

	// Downloads counts successful downloads. Incremented only after an
	// authorized download completes.
	Downloads int64 `json:"downloads"`

	// Uploader is the owner's username, resolved by the listing query.
	// Presentation-only; not a column of the files table.
	Uploader string `json:"uploader,omitempty"`
}

// TableName returns the name of the database table
// associated with the FileInfo model.
func (f FileInfo) TableName() string {
	return "files"
}

// Redacted returns a copy of the record suitable for presenting to the
// given caller: the download code is visible only to the file's owner.
// callerID may be zero for anonymous callers.
//
// Redaction is a pure projection applied after fetching; the storage
// layer itself is identity-agnostic.
func (f FileInfo) Redacted(callerID int64) FileInfo {
	if f.OwnerID != callerID {
		f.DownloadCode = ""
	}
	return f
}
