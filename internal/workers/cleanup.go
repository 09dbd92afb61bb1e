package workers

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// scratchMaxAge is how old an abandoned ".upload-*" temp file must be
// before the cleaner removes it. Uploads in flight are far younger.
const scratchMaxAge = time.Hour

// scratchCleanupWorker periodically removes upload scratch files left in
// the blob directory by crashed or interrupted uploads. Completed uploads
// are renamed away from their ".upload-*" name, so anything still matching
// that pattern after scratchMaxAge is garbage.
type scratchCleanupWorker struct {
	dir      string
	interval time.Duration
	logger   *logger.Logger
}

func newScratchCleanupWorker(dir string, interval time.Duration, logger *logger.Logger) *scratchCleanupWorker {
	return &scratchCleanupWorker{dir: dir, interval: interval, logger: logger}
}

// Run starts the cleanup loop in a goroutine and returns immediately.
func (w *scratchCleanupWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for range ticker.C {
			w.sweep()
		}
	}()
}

func (w *scratchCleanupWorker) sweep() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Err(err).Str("dir", w.dir).Msg("error reading blob directory")
		return
	}

	cutoff := time.Now().Add(-scratchMaxAge)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), ".upload-") {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(w.dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			w.logger.Err(err).Str("path", path).Msg("error removing stale upload scratch file")
			continue
		}

		w.logger.Debug().Str("path", path).Msg("removed stale upload scratch file")
	}
}
