package models

// TokenResponse is the body returned by the register and login endpoints.
type TokenResponse struct {
	// AccessToken is the compact signed JWT to present as a bearer token.
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer".
	TokenType string `json:"token_type"`
}

// UploadResponse is the body returned after a successful file upload.
type UploadResponse struct {
	// FileID identifies the newly created file record.
	FileID int64 `json:"file_id"`

	// DownloadCode is the 4-digit access code assigned to a private
	// upload. Omitted for public files.
	DownloadCode string `json:"download_code,omitempty"`
}

// FileInfoResponse is the per-file entry of the listing and info endpoints.
// It mirrors FileInfo but carries the uploader's username instead of the
// raw owner ID and a preview-eligibility flag computed at response time.
type FileInfoResponse struct {
	FileID     int64  `json:"id"`
	Filename   string `json:"filename"`
	UploadTime string `json:"upload_time"`
	Uploader   string `json:"uploader,omitempty"`
	IsPrivate  bool   `json:"is_private"`
	FileType   string `json:"file_type"`
	Downloads  int64  `json:"downloads"`

	// DownloadCode is present only when the requesting caller owns the
	// file; it is redacted for everyone else.
	DownloadCode string `json:"download_code,omitempty"`

	// CanPreview reports whether the file's content type is in the
	// preview allow-list (plain text, JPEG, PNG, PDF).
	CanPreview bool `json:"can_preview"`
}
