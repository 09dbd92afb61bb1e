package workers

import (
	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers enabled by the configuration.
// Currently the only worker is the upload scratch cleaner, which is started
// for the filesystem blob backend when a cleanup interval is set.
func NewWorkers(cfg config.Workers, storage config.Storage, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.CleanupInterval > 0 && storage.Blobs.Backend == "fs" {
		w.workers = append(w.workers, newScratchCleanupWorker(storage.Blobs.UploadDir, cfg.CleanupInterval, logger))
	}

	return w
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
