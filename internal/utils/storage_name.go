package utils

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// GenerateStorageName produces a unique blob name for an uploaded file.
//
// The name combines the upload timestamp, a UUID, and the sanitized base of
// the original filename, e.g. "20260828T151004_0198c2e1-..._report.pdf".
// The timestamp prefix keeps directory listings roughly chronological while
// the UUID guarantees that two uploads of the same filename never collide,
// so no two writers ever target the same blob path.
//
// Only the base of originalFilename is used; any directory components a
// client smuggles into the filename are discarded.
func GenerateStorageName(now time.Time, originalFilename string) string {
	base := filepath.Base(originalFilename)

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return fmt.Sprintf("%s_%s_%s", now.UTC().Format("20060102T150405"), id.String(), base)
}
