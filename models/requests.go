package models

import "io"

// Credentials carries a username/password pair for the register and login
// endpoints. Register reads it from a JSON body, login from form fields.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// FileUpload carries everything the file service needs to create a new
// file: the owner, the original filename, the byte stream, and the
// caller's privacy choices.
type FileUpload struct {
	// OwnerID is the authenticated uploader.
	OwnerID int64

	// Filename is the original display name of the uploaded file. Its
	// extension decides the canonical content type.
	Filename string

	// Data streams the file bytes; Size is the declared length.
	Data io.Reader
	Size int64

	// IsPrivate requests a private file. Private files always end up
	// with a 4-digit download code.
	IsPrivate bool

	// DownloadCode optionally supplies the code for a private upload.
	// When empty, a random 4-digit code is generated. Must be exactly
	// four ASCII digits when set.
	DownloadCode string
}

// PasswordChange is the body of PUT /api/user/me.
type PasswordChange struct {
	NewPassword string `json:"new_password"`
}
