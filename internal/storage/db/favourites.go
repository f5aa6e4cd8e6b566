package db

import "fmt"

// PersistedFavourite mirrors catalog.ModIdentifier without importing the
// catalog package, so db stays a leaf dependency.
type PersistedFavourite struct {
	Name        string
	Version     string
	VersionType string
}

// AddFavourite records a favourite, matching catalog.FavouriteModCollection's
// uniqueness-by-triple rule (spec §4.2) — inserting an existing triple is a
// silent no-op rather than an error, since the persisted index only ever
// mirrors what the in-memory collection already validated.
func (d *DB) AddFavourite(f PersistedFavourite) error {
	_, err := d.Exec(`
		INSERT OR IGNORE INTO favourite_mods (name, version, version_type)
		VALUES (?, ?, ?)
	`, f.Name, f.Version, f.VersionType)
	if err != nil {
		return fmt.Errorf("saving favourite: %w", err)
	}
	return nil
}

// RemoveFavourite deletes a favourite, reporting whether one was found —
// mirroring catalog.FavouriteModCollection.Remove's documented not-found
// behaviour rather than the source's buggy always-true return (spec §9).
func (d *DB) RemoveFavourite(f PersistedFavourite) (bool, error) {
	result, err := d.Exec(`
		DELETE FROM favourite_mods WHERE name = ? AND version = ? AND version_type = ?
	`, f.Name, f.Version, f.VersionType)
	if err != nil {
		return false, fmt.Errorf("removing favourite: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ListFavourites returns every persisted favourite, oldest first.
func (d *DB) ListFavourites() ([]PersistedFavourite, error) {
	rows, err := d.Query(`
		SELECT name, version, version_type FROM favourite_mods ORDER BY added_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying favourites: %w", err)
	}
	defer rows.Close()

	var favourites []PersistedFavourite
	for rows.Next() {
		var f PersistedFavourite
		if err := rows.Scan(&f.Name, &f.Version, &f.VersionType); err != nil {
			return nil, fmt.Errorf("scanning favourite: %w", err)
		}
		favourites = append(favourites, f)
	}
	return favourites, rows.Err()
}
