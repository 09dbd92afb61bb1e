package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// sqliteSchema is the development-backend equivalent of the goose
// PostgreSQL migrations. SQLite cannot share the PostgreSQL DDL (identity
// columns, timestamptz, regex checks), so the schema is bootstrapped here
// directly.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    user_id       INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT    NOT NULL UNIQUE,
    password_hash TEXT    NOT NULL,
    active_token  TEXT    NOT NULL DEFAULT '',
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS files (
    file_id       INTEGER PRIMARY KEY AUTOINCREMENT,
    filename      TEXT      NOT NULL,
    storage_path  TEXT      NOT NULL UNIQUE,
    upload_time   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    owner_id      INTEGER   NOT NULL REFERENCES users (user_id),
    is_private    BOOLEAN   NOT NULL DEFAULT 0,
    download_code TEXT,
    file_type     TEXT      NOT NULL,
    downloads     INTEGER   NOT NULL DEFAULT 0,
    CHECK (
        (is_private AND download_code IS NOT NULL)
        OR (NOT is_private AND download_code IS NULL)
    )
);

CREATE INDEX IF NOT EXISTS files_upload_time_idx ON files (upload_time DESC);
`

// NewConnectSQLite opens (creating if necessary) a local SQLite database
// file and bootstraps the schema. Intended for development and tests;
// production deployments use PostgreSQL.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error bootstrapping sqlite schema")
		return nil, fmt.Errorf("error bootstrapping sqlite schema: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:      conn,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
	}

	return db, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
