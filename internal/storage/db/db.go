// Package db persists the state the catalog/journal/launch packages don't
// own themselves: a SHA-1 hash cache so repeated integrity checks skip
// unchanged files, the favourites index, and per-GameVersion launch history
// (spec §9 supplemented feature 1: installedTimePoint/lastPlayedTimePoint/
// standAlone/base/modified).
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sqlite connection.
type DB struct {
	*sql.DB
}

// New opens (creating if necessary) the sqlite database at path and brings
// its schema up to date.
func New(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}

	database := &DB{DB: sqlDB}

	if err := database.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return database, nil
}
