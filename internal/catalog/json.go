package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"duke3dmm/internal/diagnostic"
)

// jsonModFile is the camelCase wire shape for ModFile.
type jsonModFile struct {
	FileName string `json:"fileName"`
	Type     string `json:"type"`
	SHA1     string `json:"sha1"`
	Shared   bool   `json:"shared,omitempty"`
}

type jsonModGameVersion struct {
	GameVersionID string        `json:"gameVersionId"`
	Files         []jsonModFile `json:"files,omitempty"`
}

type jsonModVersionType struct {
	Type         string               `json:"type,omitempty"`
	GameVersions []jsonModGameVersion `json:"gameVersions,omitempty"`
}

type jsonModVersion struct {
	Version     string               `json:"version,omitempty"`
	ReleaseDate string               `json:"releaseDate,omitempty"`
	Repaired    bool                 `json:"repaired,omitempty"`
	Types       []jsonModVersionType `json:"types,omitempty"`
}

type jsonModDownload struct {
	FileName      string `json:"fileName"`
	Type          string `json:"type"`
	Version       string `json:"version,omitempty"`
	GameVersionID string `json:"gameVersionId,omitempty"`
	SHA1          string `json:"sha1"`
	Repaired      bool   `json:"repaired,omitempty"`
	PartNumber    int    `json:"partNumber,omitempty"`
	PartCount     int    `json:"partCount,omitempty"`
}

type jsonModImage struct {
	FileName  string `json:"fileName"`
	FileSize  int64  `json:"fileSize,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	SHA1      string `json:"sha1"`
	Subfolder string `json:"subfolder,omitempty"`
	Caption   string `json:"caption,omitempty"`
	Type      string `json:"type,omitempty"`
}

type jsonModVideo struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type jsonModTeamMember struct {
	Name    string `json:"name"`
	Alias   string `json:"alias,omitempty"`
	Website string `json:"website,omitempty"`
	Email   string `json:"email,omitempty"`
}

type jsonModTeam struct {
	Name    string              `json:"name"`
	Members []jsonModTeamMember `json:"members,omitempty"`
}

type jsonModRelated struct {
	ID string `json:"id"`
}

type jsonMod struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Type               string               `json:"type"`
	PreferredVersion   string               `json:"preferredVersion,omitempty"`
	DefaultVersionType string               `json:"defaultVersionType,omitempty"`
	Website            string               `json:"website,omitempty"`
	Team               *jsonModTeam         `json:"team,omitempty"`
	Versions           []jsonModVersion     `json:"versions,omitempty"`
	Downloads          []jsonModDownload    `json:"downloads,omitempty"`
	Screenshots        []jsonModImage       `json:"screenshots,omitempty"`
	Images             []jsonModImage       `json:"images,omitempty"`
	Videos             []jsonModVideo       `json:"videos,omitempty"`
	Notes              []string             `json:"notes,omitempty"`
	RelatedMods        []jsonModRelated     `json:"relatedMods,omitempty"`
}

const dateLayout = "2006-01-02"

// ToJSON serializes m to its camelCase JSON representation. Only populated
// fields are written (spec §4.1): empty strings and nil pointers are omitted
// via the struct tags above.
func (m *Mod) ToJSON() ([]byte, error) {
	return json.Marshal(m.toJSONMod())
}

func (m *Mod) toJSONMod() jsonMod {
	out := jsonMod{
		ID:                 m.ID,
		Name:               m.Name,
		Type:               m.Type,
		PreferredVersion:   m.PreferredVersion,
		DefaultVersionType: m.DefaultVersionType,
		Website:            m.Website,
		Notes:              m.Notes,
	}
	if m.Team != nil {
		jt := &jsonModTeam{Name: m.Team.Name}
		for _, mem := range m.Team.Members {
			jt.Members = append(jt.Members, jsonModTeamMember{Name: mem.Name, Alias: mem.Alias, Website: mem.Website, Email: mem.Email})
		}
		out.Team = jt
	}
	for _, v := range m.Versions {
		jv := jsonModVersion{Version: v.Version, Repaired: v.Repaired}
		if v.ReleaseDate != nil {
			jv.ReleaseDate = v.ReleaseDate.Format(dateLayout)
		}
		for _, t := range v.Types {
			jt := jsonModVersionType{Type: t.Type}
			for _, gv := range t.GameVersions {
				jgv := jsonModGameVersion{GameVersionID: gv.GameVersionID}
				for _, f := range gv.Files {
					jgv.Files = append(jgv.Files, jsonModFile{FileName: f.FileName, Type: f.Type, SHA1: f.SHA1, Shared: f.Shared})
				}
				jt.GameVersions = append(jt.GameVersions, jgv)
			}
			jv.Types = append(jv.Types, jt)
		}
		out.Versions = append(out.Versions, jv)
	}
	for _, d := range m.Downloads {
		out.Downloads = append(out.Downloads, jsonModDownload{
			FileName: d.FileName, Type: d.Type, Version: d.Version, GameVersionID: d.GameVersionID,
			SHA1: d.SHA1, Repaired: d.Repaired, PartNumber: d.PartNumber, PartCount: d.PartCount,
		})
	}
	for _, s := range m.Screenshots {
		out.Screenshots = append(out.Screenshots, jsonModImage{
			FileName: s.FileName, FileSize: s.FileSize, Width: s.Width, Height: s.Height,
			SHA1: s.SHA1, Subfolder: s.Subfolder, Caption: s.Caption, Type: s.Type,
		})
	}
	for _, img := range m.Images {
		out.Images = append(out.Images, jsonModImage{
			FileName: img.FileName, FileSize: img.FileSize, Width: img.Width, Height: img.Height,
			SHA1: img.SHA1, Subfolder: img.Subfolder, Caption: img.Caption, Type: img.Type,
		})
	}
	for _, v := range m.Videos {
		out.Videos = append(out.Videos, jsonModVideo{URL: v.URL, Title: v.Title, Width: v.Width, Height: v.Height})
	}
	for _, r := range m.RelatedMods {
		out.RelatedMods = append(out.RelatedMods, jsonModRelated{ID: r})
	}
	return out
}

// ModFromJSON parses a single Mod from its JSON representation. Parsing is
// total: schema violations are recorded in the returned collector and, for
// hard errors, the returned *Mod is nil (spec §4.1, §7 SchemaError).
func ModFromJSON(data []byte) (*Mod, *diagnostic.Collector) {
	c := &diagnostic.Collector{}
	var jm jsonMod
	if err := json.Unmarshal(data, &jm); err != nil {
		c.Error("", "invalid JSON: %v", err)
		return nil, c
	}
	m := jm.toMod(c)
	if c.HasErrors() {
		return nil, c
	}
	return m, c
}

func (jm jsonMod) toMod(c *diagnostic.Collector) *Mod {
	m := &Mod{
		ID:                 jm.ID,
		Name:               jm.Name,
		Type:               jm.Type,
		PreferredVersion:   jm.PreferredVersion,
		DefaultVersionType: jm.DefaultVersionType,
		Website:            jm.Website,
		Notes:              jm.Notes,
	}
	if m.ID == "" {
		c.Error("id", "missing required field")
	}
	if m.Name == "" {
		c.Error("name", "missing required field")
	}
	if m.Type == "" {
		c.Error("type", "missing required field")
	}

	if jm.Team != nil {
		team := &ModTeam{Name: jm.Team.Name}
		for _, jmem := range jm.Team.Members {
			team.Members = append(team.Members, ModTeamMember{Name: jmem.Name, Alias: jmem.Alias, Website: jmem.Website, Email: jmem.Email})
		}
		m.Team = team
	}

	for vi, jv := range jm.Versions {
		path := fmt.Sprintf("versions[%d]", vi)
		v := ModVersion{Version: jv.Version, Repaired: jv.Repaired}
		if jv.ReleaseDate != "" {
			t, err := time.Parse(dateLayout, jv.ReleaseDate)
			if err != nil {
				c.Error(path+".releaseDate", "invalid date %q: %v", jv.ReleaseDate, err)
			} else {
				v.ReleaseDate = &t
			}
		}
		for ti, jt := range jv.Types {
			t := ModVersionType{Type: jt.Type}
			for gi, jgv := range jt.GameVersions {
				gvPath := fmt.Sprintf("%s.types[%d].gameVersions[%d]", path, ti, gi)
				if jgv.GameVersionID == "" {
					c.Error(gvPath+".gameVersionId", "missing required field")
				}
				gv := ModGameVersion{GameVersionID: jgv.GameVersionID}
				for _, jf := range jgv.Files {
					if jf.FileName == "" {
						c.Error(gvPath+".files[].fileName", "missing required field")
						continue
					}
					gv.Files = append(gv.Files, ModFile{FileName: jf.FileName, Type: jf.Type, SHA1: jf.SHA1, Shared: jf.Shared})
				}
				t.GameVersions = append(t.GameVersions, gv)
			}
			v.Types = append(v.Types, t)
		}
		m.Versions = append(m.Versions, v)
	}

	for di, jd := range jm.Downloads {
		if jd.FileName == "" {
			c.Error(fmt.Sprintf("downloads[%d].fileName", di), "missing required field")
			continue
		}
		m.Downloads = append(m.Downloads, ModDownload{
			FileName: jd.FileName, Type: jd.Type, Version: jd.Version, GameVersionID: jd.GameVersionID,
			SHA1: jd.SHA1, Repaired: jd.Repaired, PartNumber: jd.PartNumber, PartCount: jd.PartCount,
		})
	}
	for _, js := range jm.Screenshots {
		m.Screenshots = append(m.Screenshots, ModImage{
			FileName: js.FileName, FileSize: js.FileSize, Width: js.Width, Height: js.Height,
			SHA1: js.SHA1, Subfolder: js.Subfolder, Caption: js.Caption, Type: js.Type,
		})
	}
	for _, ji := range jm.Images {
		m.Images = append(m.Images, ModImage{
			FileName: ji.FileName, FileSize: ji.FileSize, Width: ji.Width, Height: ji.Height,
			SHA1: ji.SHA1, Subfolder: ji.Subfolder, Caption: ji.Caption, Type: ji.Type,
		})
	}
	for _, jv := range jm.Videos {
		if jv.URL == "" {
			c.Error("videos[].url", "missing required field")
			continue
		}
		m.Videos = append(m.Videos, ModVideo{URL: jv.URL, Title: jv.Title, Width: jv.Width, Height: jv.Height})
	}
	for _, jr := range jm.RelatedMods {
		m.RelatedMods = append(m.RelatedMods, jr.ID)
	}

	m.Relink()
	return m
}

// catalogFileType is the fileType the catalog JSON file must declare; its
// fileFormatVersion is checked by semver range in file.go (any 1.x
// accepted, 2.x rejected).
const catalogFileType = "Mods"
