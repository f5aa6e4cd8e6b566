package catalog

import "fmt"

// FavouriteModCollection is a list of ModIdentifier with uniqueness by triple
// (spec §4.2).
type FavouriteModCollection struct {
	entries []ModIdentifier
}

// NewFavouriteModCollection creates an empty favourites list.
func NewFavouriteModCollection() *FavouriteModCollection {
	return &FavouriteModCollection{}
}

// Entries returns all favourite identifiers in insertion order.
func (f *FavouriteModCollection) Entries() []ModIdentifier {
	return f.entries
}

// Has reports whether id is already a favourite.
func (f *FavouriteModCollection) Has(id ModIdentifier) bool {
	for _, e := range f.entries {
		if e.Equal(id) {
			return true
		}
	}
	return false
}

// Add appends id, rejecting duplicates.
func (f *FavouriteModCollection) Add(id ModIdentifier) error {
	if f.Has(id) {
		return fmt.Errorf("mod %q is already a favourite", id.Name)
	}
	f.entries = append(f.entries, id)
	return nil
}

// Remove deletes id from the list, reporting whether it was found.
//
// The original source has a documented bug here in one overload
// (FavouriteModCollection::removeFavourite returns true without erasing when
// the triple isn't found); spec §9 flags this as an open question rather
// than a bug to silently fix. DESIGN.md records the decision: this
// reimplementation returns false on not-found, matching the spec's
// documented expectation rather than the source's possibly-buggy behaviour.
func (f *FavouriteModCollection) Remove(id ModIdentifier) bool {
	for i, e := range f.entries {
		if e.Equal(id) {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true
		}
	}
	return false
}

// MissingFavourite names a favourite entry whose triple no longer resolves.
type MissingFavourite struct {
	Identifier ModIdentifier
}

// CheckForMissingFavouriteMods walks each favourite and warns (does not
// error, does not mutate the collection) on entries whose triple no longer
// resolves against col.
func (f *FavouriteModCollection) CheckForMissingFavouriteMods(col *Collection) []MissingFavourite {
	var missing []MissingFavourite
	for _, id := range f.entries {
		m := col.GetModWithName(id.Name)
		if m == nil {
			missing = append(missing, MissingFavourite{Identifier: id})
			continue
		}
		if id.Version == "" && id.VersionType == "" {
			continue
		}
		v, ok := m.findVersion(id.Version)
		if !ok {
			missing = append(missing, MissingFavourite{Identifier: id})
			continue
		}
		if id.VersionType == "" {
			continue
		}
		found := false
		for _, t := range v.Types {
			if eqFold(t.Type, id.VersionType) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, MissingFavourite{Identifier: id})
		}
	}
	return missing
}
