package catalog

import (
	"encoding/xml"
	"fmt"
	"time"

	"duke3dmm/internal/diagnostic"
)

// XML element/attribute names are fixed per spec §6 "Mod catalog XML file".
// All names are lowercase.

type xmlFile struct {
	FileName string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	SHA1     string `xml:"sha1,attr"`
	Shared   bool   `xml:"shared,attr,omitempty"`
}

type xmlGameVersion struct {
	GameVersionID string    `xml:"id,attr"`
	Files         []xmlFile `xml:"file"`
}

type xmlVersionType struct {
	Type         string           `xml:"type,attr"`
	GameVersions []xmlGameVersion `xml:"game_version"`
}

type xmlVersion struct {
	Version     string           `xml:"version,attr"`
	ReleaseDate string           `xml:"release_date,attr,omitempty"`
	Repaired    bool             `xml:"repaired,attr,omitempty"`
	Types       []xmlVersionType `xml:"type"`
}

type xmlFiles struct {
	Versions []xmlVersion `xml:"version"`
}

type xmlDownload struct {
	FileName      string `xml:"file_name,attr"`
	Type          string `xml:"type,attr"`
	Version       string `xml:"version,attr,omitempty"`
	GameVersionID string `xml:"game_version,attr,omitempty"`
	SHA1          string `xml:"sha1,attr"`
	Repaired      bool   `xml:"repaired,attr,omitempty"`
	PartNumber    int    `xml:"part_number,attr,omitempty"`
	PartCount     int    `xml:"part_count,attr,omitempty"`
}

type xmlDownloads struct {
	Downloads []xmlDownload `xml:"download"`
}

type xmlImage struct {
	FileName  string `xml:"file_name,attr"`
	FileSize  int64  `xml:"file_size,attr,omitempty"`
	Width     int    `xml:"width,attr,omitempty"`
	Height    int    `xml:"height,attr,omitempty"`
	SHA1      string `xml:"sha1,attr"`
	Subfolder string `xml:"subfolder,attr,omitempty"`
	Caption   string `xml:"caption,attr,omitempty"`
	Type      string `xml:"type,attr,omitempty"`
}

type xmlImages struct {
	XMLName xml.Name   `xml:"images"`
	Images  []xmlImage `xml:"image"`
}

type xmlScreenshots struct {
	XMLName     xml.Name   `xml:"screenshots"`
	Screenshots []xmlImage `xml:"screenshot"`
}

type xmlVideo struct {
	URL    string `xml:"url,attr"`
	Title  string `xml:"title,attr,omitempty"`
	Width  int    `xml:"width,attr,omitempty"`
	Height int    `xml:"height,attr,omitempty"`
}

type xmlVideos struct {
	Videos []xmlVideo `xml:"video"`
}

type xmlTeamMember struct {
	Name    string `xml:"name,attr"`
	Alias   string `xml:"alias,attr,omitempty"`
	Website string `xml:"website,attr,omitempty"`
	Email   string `xml:"email,attr,omitempty"`
}

type xmlTeam struct {
	Name    string          `xml:"name,attr"`
	Members []xmlTeamMember `xml:"member"`
}

type xmlRelatedMod struct {
	ID string `xml:"id,attr"`
}

type xmlRelated struct {
	Mods []xmlRelatedMod `xml:"mod"`
}

type xmlNotes struct {
	Notes []string `xml:"note"`
}

type xmlMod struct {
	XMLName     xml.Name        `xml:"mod"`
	ID          string          `xml:"id,attr"`
	Name        string          `xml:"name,attr"`
	Type        string          `xml:"type,attr"`
	Version     string          `xml:"version,attr,omitempty"`
	VersionType string          `xml:"version_type,attr,omitempty"`
	Website     string          `xml:"website,attr,omitempty"`
	Team        *xmlTeam        `xml:"team,omitempty"`
	Files       *xmlFiles       `xml:"files,omitempty"`
	Downloads   *xmlDownloads   `xml:"downloads,omitempty"`
	Screenshots *xmlScreenshots `xml:"screenshots,omitempty"`
	Images      *xmlImages      `xml:"images,omitempty"`
	Videos      *xmlVideos      `xml:"videos,omitempty"`
	Related     *xmlRelated     `xml:"related,omitempty"`
	Notes       *xmlNotes       `xml:"notes,omitempty"`
}

type xmlModsRoot struct {
	XMLName xml.Name `xml:"mods"`
	Mods    []xmlMod `xml:"mod"`
}

// ToXML serializes m to the fixed XML schema (spec §6).
func (m *Mod) ToXML() ([]byte, error) {
	return xml.MarshalIndent(m.toXMLMod(), "", "  ")
}

func (m *Mod) toXMLMod() xmlMod {
	xm := xmlMod{
		ID:          m.ID,
		Name:        m.Name,
		Type:        m.Type,
		Version:     m.PreferredVersion,
		VersionType: m.DefaultVersionType,
		Website:     m.Website,
	}
	if m.Team != nil {
		t := &xmlTeam{Name: m.Team.Name}
		for _, mem := range m.Team.Members {
			t.Members = append(t.Members, xmlTeamMember{Name: mem.Name, Alias: mem.Alias, Website: mem.Website, Email: mem.Email})
		}
		xm.Team = t
	}
	if len(m.Versions) > 0 {
		files := &xmlFiles{}
		for _, v := range m.Versions {
			xv := xmlVersion{Version: v.Version, Repaired: v.Repaired}
			if v.ReleaseDate != nil {
				xv.ReleaseDate = v.ReleaseDate.Format(dateLayout)
			}
			for _, t := range v.Types {
				xt := xmlVersionType{Type: t.Type}
				for _, gv := range t.GameVersions {
					xgv := xmlGameVersion{GameVersionID: gv.GameVersionID}
					for _, f := range gv.Files {
						xgv.Files = append(xgv.Files, xmlFile{FileName: f.FileName, Type: f.Type, SHA1: f.SHA1, Shared: f.Shared})
					}
					xt.GameVersions = append(xt.GameVersions, xgv)
				}
				xv.Types = append(xv.Types, xt)
			}
			files.Versions = append(files.Versions, xv)
		}
		xm.Files = files
	}
	if len(m.Downloads) > 0 {
		d := &xmlDownloads{}
		for _, dl := range m.Downloads {
			d.Downloads = append(d.Downloads, xmlDownload{
				FileName: dl.FileName, Type: dl.Type, Version: dl.Version, GameVersionID: dl.GameVersionID,
				SHA1: dl.SHA1, Repaired: dl.Repaired, PartNumber: dl.PartNumber, PartCount: dl.PartCount,
			})
		}
		xm.Downloads = d
	}
	if len(m.Screenshots) > 0 {
		s := &xmlScreenshots{}
		for _, sc := range m.Screenshots {
			s.Screenshots = append(s.Screenshots, xmlImage{
				FileName: sc.FileName, FileSize: sc.FileSize, Width: sc.Width, Height: sc.Height,
				SHA1: sc.SHA1, Subfolder: sc.Subfolder, Caption: sc.Caption, Type: sc.Type,
			})
		}
		xm.Screenshots = s
	}
	if len(m.Images) > 0 {
		im := &xmlImages{}
		for _, img := range m.Images {
			im.Images = append(im.Images, xmlImage{
				FileName: img.FileName, FileSize: img.FileSize, Width: img.Width, Height: img.Height,
				SHA1: img.SHA1, Subfolder: img.Subfolder, Caption: img.Caption, Type: img.Type,
			})
		}
		xm.Images = im
	}
	if len(m.Videos) > 0 {
		v := &xmlVideos{}
		for _, vid := range m.Videos {
			v.Videos = append(v.Videos, xmlVideo{URL: vid.URL, Title: vid.Title, Width: vid.Width, Height: vid.Height})
		}
		xm.Videos = v
	}
	if len(m.RelatedMods) > 0 {
		r := &xmlRelated{}
		for _, id := range m.RelatedMods {
			r.Mods = append(r.Mods, xmlRelatedMod{ID: id})
		}
		xm.Related = r
	}
	if len(m.Notes) > 0 {
		xm.Notes = &xmlNotes{Notes: m.Notes}
	}
	return xm
}

// ModFromXML parses a single <mod> element.
func ModFromXML(data []byte) (*Mod, *diagnostic.Collector) {
	c := &diagnostic.Collector{}
	var xm xmlMod
	if err := xml.Unmarshal(data, &xm); err != nil {
		c.Error("", "invalid XML: %v", err)
		return nil, c
	}
	m := xm.toMod(c)
	if c.HasErrors() {
		return nil, c
	}
	return m, c
}

func (xm xmlMod) toMod(c *diagnostic.Collector) *Mod {
	m := &Mod{
		ID:                 xm.ID,
		Name:               xm.Name,
		Type:               xm.Type,
		PreferredVersion:   xm.Version,
		DefaultVersionType: xm.VersionType,
		Website:            xm.Website,
	}
	if m.ID == "" {
		c.Error("id", "missing required attribute")
	}
	if m.Name == "" {
		c.Error("name", "missing required attribute")
	}
	if m.Type == "" {
		c.Error("type", "missing required attribute")
	}

	if xm.Team != nil {
		team := &ModTeam{Name: xm.Team.Name}
		for _, xmem := range xm.Team.Members {
			team.Members = append(team.Members, ModTeamMember{Name: xmem.Name, Alias: xmem.Alias, Website: xmem.Website, Email: xmem.Email})
		}
		m.Team = team
	}

	if xm.Files != nil {
		for vi, xv := range xm.Files.Versions {
			path := fmt.Sprintf("files/version[%d]", vi)
			v := ModVersion{Version: xv.Version, Repaired: xv.Repaired}
			if xv.ReleaseDate != "" {
				t, err := time.Parse(dateLayout, xv.ReleaseDate)
				if err != nil {
					c.Error(path+"/@release_date", "invalid date %q: %v", xv.ReleaseDate, err)
				} else {
					v.ReleaseDate = &t
				}
			}
			for _, xt := range xv.Types {
				t := ModVersionType{Type: xt.Type}
				for _, xgv := range xt.GameVersions {
					if xgv.GameVersionID == "" {
						c.Error(path+"/type/game_version/@id", "missing required attribute")
					}
					gv := ModGameVersion{GameVersionID: xgv.GameVersionID}
					for _, xf := range xgv.Files {
						if xf.FileName == "" {
							c.Error(path+"/type/game_version/file/@name", "missing required attribute")
							continue
						}
						gv.Files = append(gv.Files, ModFile{FileName: xf.FileName, Type: xf.Type, SHA1: xf.SHA1, Shared: xf.Shared})
					}
					t.GameVersions = append(t.GameVersions, gv)
				}
				v.Types = append(v.Types, t)
			}
			m.Versions = append(m.Versions, v)
		}
	}

	if xm.Downloads != nil {
		for _, xd := range xm.Downloads.Downloads {
			if xd.FileName == "" {
				c.Error("downloads/download/@file_name", "missing required attribute")
				continue
			}
			m.Downloads = append(m.Downloads, ModDownload{
				FileName: xd.FileName, Type: xd.Type, Version: xd.Version, GameVersionID: xd.GameVersionID,
				SHA1: xd.SHA1, Repaired: xd.Repaired, PartNumber: xd.PartNumber, PartCount: xd.PartCount,
			})
		}
	}
	if xm.Screenshots != nil {
		for _, xs := range xm.Screenshots.Screenshots {
			m.Screenshots = append(m.Screenshots, ModImage{
				FileName: xs.FileName, FileSize: xs.FileSize, Width: xs.Width, Height: xs.Height,
				SHA1: xs.SHA1, Subfolder: xs.Subfolder, Caption: xs.Caption, Type: xs.Type,
			})
		}
	}
	if xm.Images != nil {
		for _, xi := range xm.Images.Images {
			m.Images = append(m.Images, ModImage{
				FileName: xi.FileName, FileSize: xi.FileSize, Width: xi.Width, Height: xi.Height,
				SHA1: xi.SHA1, Subfolder: xi.Subfolder, Caption: xi.Caption, Type: xi.Type,
			})
		}
	}
	if xm.Videos != nil {
		for _, xv := range xm.Videos.Videos {
			if xv.URL == "" {
				c.Error("videos/video/@url", "missing required attribute")
				continue
			}
			m.Videos = append(m.Videos, ModVideo{URL: xv.URL, Title: xv.Title, Width: xv.Width, Height: xv.Height})
		}
	}
	if xm.Related != nil {
		for _, xr := range xm.Related.Mods {
			m.RelatedMods = append(m.RelatedMods, xr.ID)
		}
	}
	if xm.Notes != nil {
		m.Notes = xm.Notes.Notes
	}

	m.Relink()
	return m
}

// FileFromXML parses a whole <mods> catalog XML file.
func FileFromXML(data []byte) (*Collection, *diagnostic.Collector) {
	c := &diagnostic.Collector{}
	var root xmlModsRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		c.Error("", "invalid XML: %v", err)
		return nil, c
	}

	col := NewCollection()
	for i, xm := range root.Mods {
		path := fmt.Sprintf("mods[%d]", i)
		modC := &diagnostic.Collector{}
		m := xm.toMod(modC)
		c.Merge(path, modC)
		if modC.HasErrors() {
			continue
		}
		if vc := m.Validate(); vc.HasErrors() {
			c.Merge(path, vc)
			continue
		}
		if err := col.AddMod(m); err != nil {
			c.Error(path, "%v", err)
		}
	}
	if c.HasErrors() {
		return nil, c
	}
	return col, c
}

// ToXML serializes the whole collection to the catalog file wire format.
func (col *Collection) ToXML() ([]byte, error) {
	root := xmlModsRoot{}
	for _, m := range col.mods {
		root.Mods = append(root.Mods, m.toXMLMod())
	}
	return xml.MarshalIndent(root, "", "  ")
}
