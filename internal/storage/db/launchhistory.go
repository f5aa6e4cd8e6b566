package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GameVersionRuntime mirrors gameversion.GameVersion's runtime-only fields
// (spec §9 supplemented feature 1) in sqlite. It is separate from the
// installed/lastPlayed values the game-version registry's JSON file stores;
// RecordLaunch updates only this copy.
type GameVersionRuntime struct {
	GameVersionID string
	InstalledAt   *time.Time
	LastPlayedAt  *time.Time
	StandAlone    bool
	Base          bool
	Modified      bool
}

// GetGameVersionRuntime returns the persisted runtime record for id, or nil
// if none has been recorded yet.
func (d *DB) GetGameVersionRuntime(gameVersionID string) (*GameVersionRuntime, error) {
	var r GameVersionRuntime
	var installedAt, lastPlayedAt sql.NullTime
	err := d.QueryRow(`
		SELECT game_version_id, installed_at, last_played_at, standalone, base, modified
		FROM game_version_runtime WHERE game_version_id = ?
	`, gameVersionID).Scan(&r.GameVersionID, &installedAt, &lastPlayedAt, &r.StandAlone, &r.Base, &r.Modified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting game version runtime: %w", err)
	}
	if installedAt.Valid {
		r.InstalledAt = &installedAt.Time
	}
	if lastPlayedAt.Valid {
		r.LastPlayedAt = &lastPlayedAt.Time
	}
	return &r, nil
}

// SaveGameVersionRuntime upserts a runtime record.
func (d *DB) SaveGameVersionRuntime(r GameVersionRuntime) error {
	_, err := d.Exec(`
		INSERT INTO game_version_runtime (game_version_id, installed_at, last_played_at, standalone, base, modified)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_version_id) DO UPDATE SET
			installed_at = excluded.installed_at,
			last_played_at = excluded.last_played_at,
			standalone = excluded.standalone,
			base = excluded.base,
			modified = excluded.modified
	`, r.GameVersionID, r.InstalledAt, r.LastPlayedAt, r.StandAlone, r.Base, r.Modified)
	if err != nil {
		return fmt.Errorf("saving game version runtime: %w", err)
	}
	return nil
}

// LaunchRecord is one completed (or at least attempted) Launch invocation,
// identified by the uuid the orchestrator's caller attaches to the run
// (DOMAIN STACK: google/uuid). The id is stored only in the launch-history
// table.
type LaunchRecord struct {
	LaunchID       string
	GameVersionID  string
	ModName        string
	ModVersion     string
	ModVersionType string
	LaunchedAt     time.Time
}

// RecordLaunch appends a launch-history entry and bumps the owning
// GameVersion's lastPlayedAt runtime field in the same call, since every
// launch always updates both.
func (d *DB) RecordLaunch(rec LaunchRecord) error {
	_, err := d.Exec(`
		INSERT INTO launch_history (launch_id, game_version_id, mod_name, mod_version, mod_version_type, launched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.LaunchID, rec.GameVersionID, rec.ModName, rec.ModVersion, rec.ModVersionType, rec.LaunchedAt)
	if err != nil {
		return fmt.Errorf("recording launch: %w", err)
	}

	runtime, err := d.GetGameVersionRuntime(rec.GameVersionID)
	if err != nil {
		return err
	}
	if runtime == nil {
		runtime = &GameVersionRuntime{GameVersionID: rec.GameVersionID}
	}
	launchedAt := rec.LaunchedAt
	runtime.LastPlayedAt = &launchedAt
	return d.SaveGameVersionRuntime(*runtime)
}

// ListLaunchHistory returns every launch recorded for gameVersionID, most
// recent first.
func (d *DB) ListLaunchHistory(gameVersionID string) ([]LaunchRecord, error) {
	rows, err := d.Query(`
		SELECT launch_id, game_version_id, mod_name, mod_version, mod_version_type, launched_at
		FROM launch_history WHERE game_version_id = ? ORDER BY launched_at DESC
	`, gameVersionID)
	if err != nil {
		return nil, fmt.Errorf("querying launch history: %w", err)
	}
	defer rows.Close()

	var records []LaunchRecord
	for rows.Next() {
		var r LaunchRecord
		if err := rows.Scan(&r.LaunchID, &r.GameVersionID, &r.ModName, &r.ModVersion, &r.ModVersionType, &r.LaunchedAt); err != nil {
			return nil, fmt.Errorf("scanning launch record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
