package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-file-keeper/migrations"
)

// Migrate applies the embedded goose migrations. Only meaningful for the
// PostgreSQL backend; the sqlite backend bootstraps its schema on connect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// isUniqueViolation reports whether err is a uniqueness-constraint
// violation from either supported driver. Used to map duplicate usernames
// to [ErrUsernameTaken] regardless of backend.
func isUniqueViolation(err error) bool {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
