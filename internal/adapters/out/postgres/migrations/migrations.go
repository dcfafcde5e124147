// Package migrations holds the versioned schema and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var fs embed.FS

// Up brings the schema behind db to the latest version.
func Up(db *sql.DB) error {
	goose.SetBaseFS(fs)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.Up(db, ".")
}

// Open connects through lib/pq and applies every pending migration.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err = Up(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
