package catalog

// Clone deep-copies a Mod and all its owned children, re-linking every
// back-pointer to the new tree (spec §3 "Lifecycles", invariant #9).
func (m *Mod) Clone() *Mod {
	if m == nil {
		return nil
	}
	out := &Mod{
		ID:                 m.ID,
		Name:               m.Name,
		Type:               m.Type,
		PreferredVersion:   m.PreferredVersion,
		DefaultVersionType: m.DefaultVersionType,
		Website:            m.Website,
		Notes:              append([]string(nil), m.Notes...),
		RelatedMods:        append([]string(nil), m.RelatedMods...),
	}

	out.Versions = make([]ModVersion, len(m.Versions))
	for i, v := range m.Versions {
		out.Versions[i] = v.clone()
	}
	out.Downloads = make([]ModDownload, len(m.Downloads))
	copy(out.Downloads, m.Downloads)
	for i := range out.Downloads {
		out.Downloads[i].parent = nil
	}
	out.Screenshots = append([]ModScreenshot(nil), m.Screenshots...)
	out.Images = append([]ModImage(nil), m.Images...)
	out.Videos = append([]ModVideo(nil), m.Videos...)
	if m.Team != nil {
		teamCopy := *m.Team
		teamCopy.Members = append([]ModTeamMember(nil), m.Team.Members...)
		out.Team = &teamCopy
	}

	out.Relink()
	return out
}

func (v *ModVersion) clone() ModVersion {
	out := ModVersion{
		Version:  v.Version,
		Repaired: v.Repaired,
	}
	if v.ReleaseDate != nil {
		d := *v.ReleaseDate
		out.ReleaseDate = &d
	}
	out.Types = make([]ModVersionType, len(v.Types))
	for i, t := range v.Types {
		out.Types[i] = t.clone()
	}
	return out
}

func (t *ModVersionType) clone() ModVersionType {
	out := ModVersionType{Type: t.Type}
	out.GameVersions = make([]ModGameVersion, len(t.GameVersions))
	for i, g := range t.GameVersions {
		out.GameVersions[i] = g.clone()
	}
	return out
}

func (g *ModGameVersion) clone() ModGameVersion {
	out := ModGameVersion{GameVersionID: g.GameVersionID}
	out.Files = append([]ModFile(nil), g.Files...)
	for i := range out.Files {
		out.Files[i].parent = nil
	}
	return out
}
