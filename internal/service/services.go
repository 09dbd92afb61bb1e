package service

import (
	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/render"
	"github.com/MKhiriev/go-file-keeper/internal/store"
)

type Services struct {
	AuthService AuthService
	FileService FileService
}

func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	renderer := render.NewRenderer(logger)

	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg, logger),
		FileService: NewFileService(storages.FileRepository, storages.BlobStorage, renderer, logger),
	}
}
