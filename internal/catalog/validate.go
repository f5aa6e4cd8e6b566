package catalog

import (
	"strconv"
	"strings"

	"duke3dmm/internal/diagnostic"
	"duke3dmm/internal/strutil"
)

func itoa(i int) string { return strconv.Itoa(i) }

// Validate checks every invariant from spec §3 that is local to a Mod (i.e.
// does not require the GameVersionCollection — invariant #8 is checked
// separately by Collection.CheckGameVersions). It always returns a
// collector; call c.HasErrors() to decide whether the Mod is usable.
func (m *Mod) Validate() *diagnostic.Collector {
	c := &diagnostic.Collector{}
	m.validate(c)
	return c
}

func (m *Mod) validate(c *diagnostic.Collector) {
	if strings.TrimSpace(m.ID) == "" {
		c.Error("id", "must be non-empty")
	}
	if strings.TrimSpace(m.Name) == "" {
		c.Error("name", "must be non-empty")
	}
	if strings.TrimSpace(m.Type) == "" {
		c.Error("type", "must be non-empty")
	}

	// invariant #2: version strings unique (case-insensitive)
	seenVersions := make(map[string]int)
	for i, v := range m.Versions {
		key := strutilLower(v.Version)
		if j, dup := seenVersions[key]; dup {
			c.Error("versions["+itoa(i)+"].version", "duplicate of versions["+itoa(j)+"]")
		} else {
			seenVersions[key] = i
		}
		m.Versions[i].validate(c, i)
	}

	// invariant #3: download file names, screenshot/image file names, video
	// URLs each unique within their own slice.
	checkUniqueDownloads(m.Downloads, c)
	checkUniqueImages("screenshots", m.Screenshots, c)
	checkUniqueImages("images", m.Images, c)
	seenVideoURLs := make(map[string]bool)
	for i, vid := range m.Videos {
		key := strutilLower(vid.URL)
		if strings.TrimSpace(vid.URL) == "" {
			c.Error("videos["+itoa(i)+"].url", "must be non-empty")
			continue
		}
		if seenVideoURLs[key] {
			c.Error("videos["+itoa(i)+"].url", "duplicate video url")
		}
		seenVideoURLs[key] = true
	}

	// invariant #4: preferredVersion exists; defaultVersionType exists in at
	// least one version.
	if m.PreferredVersion != "" {
		if _, ok := m.findVersion(m.PreferredVersion); !ok {
			c.Error("preferredVersion", "references nonexistent version %q", m.PreferredVersion)
		}
	}
	if m.DefaultVersionType != "" {
		found := false
		for _, v := range m.Versions {
			for _, t := range v.Types {
				if eqFold(t.Type, m.DefaultVersionType) {
					found = true
				}
			}
		}
		if !found {
			c.Error("defaultVersionType", "not present in any version")
		}
	}

	// invariant #5, #6: Original Files / Mod Manager Files downloads.
	m.validateDownloadCoverage(c)

	// invariant #7: multi-part completeness.
	validateMultiPart(m.Downloads, c)

	// invariant #9: back-pointer integrity.
	for i := range m.Versions {
		if m.Versions[i].parent != m {
			c.Error("versions["+itoa(i)+"]", "back-pointer does not match parent mod")
		}
	}
}

func (v *ModVersion) validate(c *diagnostic.Collector, index int) {
	path := "versions[" + itoa(index) + "]"
	seenTypes := make(map[string]int)
	for i, t := range v.Types {
		key := strutilLower(t.Type)
		if j, dup := seenTypes[key]; dup {
			c.Error(path+".types["+itoa(i)+"].type", "duplicate of types["+itoa(j)+"]")
		} else {
			seenTypes[key] = i
		}
		if t.parent != v {
			c.Error(path+".types["+itoa(i)+"]", "back-pointer does not match parent version")
		}
		for j, gv := range t.GameVersions {
			gvPath := path + ".types[" + itoa(i) + "].gameVersions[" + itoa(j) + "]"
			if strings.TrimSpace(gv.GameVersionID) == "" {
				c.Error(gvPath+".gameVersionId", "must be non-empty")
			}
			seenFiles := make(map[string]bool)
			for k, f := range gv.Files {
				if strings.TrimSpace(f.FileName) == "" {
					c.Error(gvPath+".files["+itoa(k)+"].fileName", "must be non-empty")
					continue
				}
				key := strutilLower(f.FileName)
				if seenFiles[key] && !f.Shared {
					c.Error(gvPath+".files["+itoa(k)+"].fileName", "duplicate file name %q (mark shared=true if intentional)", f.FileName)
				}
				seenFiles[key] = true
			}
		}
	}
}

func checkUniqueDownloads(downloads []ModDownload, c *diagnostic.Collector) {
	seen := make(map[string]int)
	for i, d := range downloads {
		if strings.TrimSpace(d.FileName) == "" {
			c.Error("downloads["+itoa(i)+"].fileName", "must be non-empty")
			continue
		}
		key := strutilLower(d.FileName)
		if j, dup := seen[key]; dup {
			c.Error("downloads["+itoa(i)+"].fileName", "duplicate of downloads["+itoa(j)+"]")
		} else {
			seen[key] = i
		}
	}
}

func checkUniqueImages(field string, images []ModImage, c *diagnostic.Collector) {
	seen := make(map[string]int)
	for i, img := range images {
		if strings.TrimSpace(img.FileName) == "" {
			c.Error(field+"["+itoa(i)+"].fileName", "must be non-empty")
			continue
		}
		key := strutilLower(img.FileName)
		if j, dup := seen[key]; dup {
			c.Error(field+"["+itoa(i)+"].fileName", "duplicate of "+field+"["+itoa(j)+"]")
		} else {
			seen[key] = i
		}
	}
}

// validateDownloadCoverage enforces invariant #5 and #6: every ModVersion
// needs an "Original Files" and "Mod Manager Files" download of matching
// version (and a matching "repaired" download when ModVersion.Repaired is
// set); every (modVersion, modGameVersion) pair needs a "Mod Manager Files"
// download row.
func (m *Mod) validateDownloadCoverage(c *diagnostic.Collector) {
	for vi, v := range m.Versions {
		path := "versions[" + itoa(vi) + "]"
		hasOriginal, hasManager, hasRepaired := false, false, false
		for _, d := range m.Downloads {
			if !eqFold(d.Version, v.Version) {
				continue
			}
			switch {
			case eqFold(d.Type, "Original Files"):
				hasOriginal = true
			case eqFold(d.Type, "Mod Manager Files"):
				hasManager = true
				if d.Repaired == v.Repaired {
					hasRepaired = true
				}
			}
		}
		if !hasOriginal {
			c.Error(path, "missing matching \"Original Files\" download")
		}
		if !hasManager {
			c.Error(path, "missing matching \"Mod Manager Files\" download")
		}
		if v.Repaired && !hasRepaired {
			c.Error(path, "repaired version missing a download with matching repaired flag")
		}

		for ti, t := range v.Types {
			for _, gv := range t.GameVersions {
				found := false
				for _, d := range m.Downloads {
					if eqFold(d.Version, v.Version) && eqFold(d.Type, "Mod Manager Files") && eqFold(d.GameVersionID, gv.GameVersionID) {
						found = true
						break
					}
				}
				if !found {
					c.Error(path+".types["+itoa(ti)+"]", "missing \"Mod Manager Files\" download for game version %q", gv.GameVersionID)
				}
			}
		}
	}
}

// validateMultiPart enforces invariant #7: for any download with
// partCount = n, the set of partNumber values present (sharing the same
// version) equals {1..n}.
func validateMultiPart(downloads []ModDownload, c *diagnostic.Collector) {
	type key struct {
		version   string
		partCount int
	}
	groups := make(map[key]map[int]bool)
	for _, d := range downloads {
		if d.PartCount <= 0 {
			continue
		}
		k := key{strutilLower(d.Version), d.PartCount}
		if groups[k] == nil {
			groups[k] = make(map[int]bool)
		}
		groups[k][d.PartNumber] = true
	}
	for k, parts := range groups {
		for n := 1; n <= k.partCount; n++ {
			if !parts[n] {
				c.Error("downloads", "multi-part download missing part %d/%d for version %q", n, k.partCount, k.version)
			}
		}
	}
}

func (m *Mod) findVersion(version string) (*ModVersion, bool) {
	for i := range m.Versions {
		if eqFold(m.Versions[i].Version, version) {
			return &m.Versions[i], true
		}
	}
	return nil, false
}

func strutilLower(s string) string { return strutil.ToLowerASCII(s) }
