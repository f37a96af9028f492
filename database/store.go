// Package database reads the Photos library store (Photos.sqlite) and keeps
// the local export-history database.
//
// Every query against the Photos store opens its own short-lived, strictly
// read-only connection; the store is never mutated.
package database

import (
	"database/sql"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// OpenPhotosDB opens the Photos library database in read-only mode.
func OpenPhotosDB(dbPath string) (*sql.DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("photos database not found at %s: %w", dbPath, err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open photos database %s: %w", dbPath, err)
	}

	return db, nil
}
