package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on login when the username is
	// unknown or the password does not match. Callers cannot distinguish
	// the two cases.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTokenInvalid covers every way a bearer token can fail to
	// authenticate: malformed, bad signature, expired, or superseded by a
	// newer login. Callers never learn which.
	ErrTokenInvalid = errors.New("token is invalid or expired")

	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrUnauthorized is returned when an operation requires an
	// authenticated caller and none is present.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the caller's identity is known but the
	// access policy denies the operation.
	ErrForbidden = errors.New("access to this file is forbidden")

	// ErrFileTypeNotAllowed is returned on upload when the file extension
	// is not in the allow-list.
	ErrFileTypeNotAllowed = errors.New("file type is not allowed")

	// ErrInvalidDownloadCode is returned on upload when a caller-supplied
	// download code is not exactly four ASCII digits.
	ErrInvalidDownloadCode = errors.New("download code must be exactly 4 digits")

	// ErrPreviewNotSupported is returned when a file's content type is
	// outside the preview allow-list.
	ErrPreviewNotSupported = errors.New("preview is not supported for this file type")
)
