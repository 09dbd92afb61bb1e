package config

import "time"

// Fallback values applied by applyDefaults when a setting is absent from
// every configuration source.
const (
	defaultHTTPAddress   = "0.0.0.0:8080"
	defaultTokenIssuer   = "go-file-keeper"
	defaultTokenDuration = 30 * time.Minute
	defaultDBDriver      = "pgx"
	defaultBlobBackend   = "fs"
	defaultUploadDir     = "uploads"
)

// applyDefaults fills in fallback values for optional settings after all
// sources have been merged. Secrets (token sign key, DSN) have no
// defaults and must be supplied explicitly.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = defaultDBDriver
	}
	if cfg.Storage.Blobs.Backend == "" {
		cfg.Storage.Blobs.Backend = defaultBlobBackend
	}
	if cfg.Storage.Blobs.UploadDir == "" {
		cfg.Storage.Blobs.UploadDir = defaultUploadDir
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a typed error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Storage.DB.Driver {
	case "pgx", "sqlite3":
	default:
		return ErrInvalidStorageConfigs
	}

	switch cfg.Storage.Blobs.Backend {
	case "fs":
	case "s3":
		s3 := cfg.Storage.Blobs.S3
		if s3.Endpoint == "" || s3.Bucket == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	return nil
}
