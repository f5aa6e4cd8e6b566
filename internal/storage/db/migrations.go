package db

import "fmt"

const currentVersion = 1

func (d *DB) migrate() error {
	if _, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var version int
	if err := d.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version); err != nil {
		return fmt.Errorf("getting schema version: %w", err)
	}

	migrations := []func(*DB) error{
		migrateV1,
	}

	for i := version; i < len(migrations); i++ {
		if err := migrations[i](d); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := d.Exec("INSERT INTO schema_migrations (version) VALUES (?)", i+1); err != nil {
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
	}

	return nil
}

func migrateV1(d *DB) error {
	statements := []string{
		`CREATE TABLE file_hashes (
			path TEXT PRIMARY KEY,
			size INTEGER NOT NULL,
			mod_time DATETIME NOT NULL,
			sha1 TEXT NOT NULL,
			hashed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE favourite_mods (
			name TEXT NOT NULL,
			version TEXT NOT NULL DEFAULT '',
			version_type TEXT NOT NULL DEFAULT '',
			added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY(name, version, version_type)
		)`,
		`CREATE TABLE game_version_runtime (
			game_version_id TEXT PRIMARY KEY,
			installed_at DATETIME,
			last_played_at DATETIME,
			standalone INTEGER NOT NULL DEFAULT 0,
			base INTEGER NOT NULL DEFAULT 0,
			modified INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE launch_history (
			launch_id TEXT PRIMARY KEY,
			game_version_id TEXT NOT NULL,
			mod_name TEXT NOT NULL,
			mod_version TEXT NOT NULL,
			mod_version_type TEXT NOT NULL,
			launched_at DATETIME NOT NULL
		)`,
		`CREATE INDEX idx_launch_history_game_version ON launch_history(game_version_id, launched_at)`,
	}

	for _, stmt := range statements {
		if _, err := d.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	return nil
}
