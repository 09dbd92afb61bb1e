package service

import "github.com/MKhiriev/go-file-keeper/models"

// Access policy for file operations. All functions here are pure
// decisions over (caller, file, code) with no side effects; the file
// service applies them before touching storage.
//
// caller is nil for anonymous requests. Ownership always wins: an owner
// presenting a wrong download code is still granted access because the
// owner check short-circuits before the code comparison.

// CanViewOrDownload decides read access (metadata, bytes, preview):
//   - public files are open to anyone, including anonymous callers;
//   - the owner is always allowed;
//   - a caller presenting the file's download code is allowed;
//   - everyone else is denied.
func CanViewOrDownload(caller *models.User, file models.FileInfo, code string) bool {
	if !file.IsPrivate {
		return true
	}

	if caller != nil && caller.UserID == file.OwnerID {
		return true
	}

	return code != "" && code == file.DownloadCode
}

// CanShare decides whether the caller may share the file with others:
// any authenticated user may share a public file, only the owner may
// share a private one. Anonymous callers can never share.
func CanShare(caller *models.User, file models.FileInfo) bool {
	if caller == nil {
		return false
	}

	if !file.IsPrivate {
		return true
	}

	return caller.UserID == file.OwnerID
}

// CanManage decides management rights (delete, modify). It returns
// ErrUnauthorized when there is no caller at all and ErrForbidden when
// the caller is not the owner. Ownership is the only management grant;
// there is no admin override.
func CanManage(caller *models.User, file models.FileInfo) error {
	if caller == nil {
		return ErrUnauthorized
	}

	if caller.UserID != file.OwnerID {
		return ErrForbidden
	}

	return nil
}

// previewableTypes is the fixed allow-list of content types the preview
// renderer knows how to handle.
var previewableTypes = map[string]struct{}{
	"text/plain":      {},
	"image/jpeg":      {},
	"image/png":       {},
	"application/pdf": {},
}

// CanPreview reports whether files of the given content type are
// eligible for preview. It is a property of the type alone and is
// checked only after access has been granted.
func CanPreview(fileType string) bool {
	_, ok := previewableTypes[fileType]
	return ok
}
