package catalog

import "time"

// EngineClassifier lets a ModGameVersion ask whether its linked engine
// treats zip archives as group files, without C1 depending on the full C3
// registry package.
type EngineClassifier interface {
	TreatsZipAsGroupFile(gameVersionID string) bool
}

// IsEDuke32 reports whether this ModGameVersion's engine treats zip files as
// group files (spec §3 "convenience predicate").
func (g *ModGameVersion) IsEDuke32(classifier EngineClassifier) bool {
	return classifier != nil && classifier.TreatsZipAsGroupFile(g.GameVersionID)
}

// Equal compares two Mods for semantic equality, ignoring back-pointers and
// slice ordering within unordered sets (downloads, screenshots, images,
// videos, relatedMods) per the round-trip testable property (spec §8).
// Versions, notes and team members are compared in order.
func (m *Mod) Equal(other *Mod) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.ID != other.ID || m.Name != other.Name || m.Type != other.Type ||
		m.PreferredVersion != other.PreferredVersion ||
		m.DefaultVersionType != other.DefaultVersionType ||
		m.Website != other.Website {
		return false
	}
	if !equalStringSetsFold(m.RelatedMods, other.RelatedMods) {
		return false
	}
	if !equalStringSlices(m.Notes, other.Notes) {
		return false
	}
	if len(m.Versions) != len(other.Versions) {
		return false
	}
	for i := range m.Versions {
		if !m.Versions[i].equal(&other.Versions[i]) {
			return false
		}
	}
	if !equalDownloadSets(m.Downloads, other.Downloads) {
		return false
	}
	if !equalImageSets(m.Screenshots, other.Screenshots) {
		return false
	}
	if !equalImageSets(m.Images, other.Images) {
		return false
	}
	if !equalVideoSets(m.Videos, other.Videos) {
		return false
	}
	return equalTeams(m.Team, other.Team)
}

func (v *ModVersion) equal(other *ModVersion) bool {
	if v.Version != other.Version || v.Repaired != other.Repaired {
		return false
	}
	if !equalTimePtr(v.ReleaseDate, other.ReleaseDate) {
		return false
	}
	if len(v.Types) != len(other.Types) {
		return false
	}
	for i := range v.Types {
		if !v.Types[i].equal(&other.Types[i]) {
			return false
		}
	}
	return true
}

func (t *ModVersionType) equal(other *ModVersionType) bool {
	if t.Type != other.Type {
		return false
	}
	if len(t.GameVersions) != len(other.GameVersions) {
		return false
	}
	for i := range t.GameVersions {
		if !t.GameVersions[i].equal(&other.GameVersions[i]) {
			return false
		}
	}
	return true
}

func (g *ModGameVersion) equal(other *ModGameVersion) bool {
	if g.GameVersionID != other.GameVersionID {
		return false
	}
	if len(g.Files) != len(other.Files) {
		return false
	}
	for i := range g.Files {
		if g.Files[i].FileName != other.Files[i].FileName ||
			g.Files[i].Type != other.Files[i].Type ||
			g.Files[i].SHA1 != other.Files[i].SHA1 ||
			g.Files[i].Shared != other.Files[i].Shared {
			return false
		}
	}
	return true
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStringSetsFold(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if !used[j] && eqFold(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalDownloadSets(a, b []ModDownload) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if x.FileName == y.FileName && x.Type == y.Type && x.Version == y.Version &&
				x.GameVersionID == y.GameVersionID && x.SHA1 == y.SHA1 && x.Repaired == y.Repaired &&
				x.PartNumber == y.PartNumber && x.PartCount == y.PartCount {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalImageSets(a, b []ModImage) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if x.FileName == y.FileName && x.FileSize == y.FileSize && x.Width == y.Width &&
				x.Height == y.Height && x.SHA1 == y.SHA1 && x.Subfolder == y.Subfolder &&
				x.Caption == y.Caption && x.Type == y.Type {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalVideoSets(a, b []ModVideo) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if x.URL == y.URL && x.Title == y.Title && x.Width == y.Width && x.Height == y.Height {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalTeams(a, b *ModTeam) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name {
		return false
	}
	if len(a.Members) != len(b.Members) {
		return false
	}
	for i := range a.Members {
		am, bm := a.Members[i], b.Members[i]
		if am.Name != bm.Name || am.Alias != bm.Alias || am.Website != bm.Website || am.Email != bm.Email {
			return false
		}
	}
	return true
}
