package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMod(t *testing.T) *Mod {
	t.Helper()
	m := &Mod{
		ID:   "duke-it-out",
		Name: "Duke It Out in D.C.",
		Type: "Total Conversion",
		Team: &ModTeam{
			Name:    "Sunstorm Interactive",
			Members: []ModTeamMember{{Name: "Nathan Williams"}},
		},
		Versions: []ModVersion{
			{
				Version: "",
				Types: []ModVersionType{
					{
						Type: "",
						GameVersions: []ModGameVersion{
							{GameVersionID: "atomic", Files: []ModFile{{FileName: "DCGAME.GRP", Type: "grp", SHA1: "a"}}},
						},
					},
				},
			},
		},
		Downloads: []ModDownload{
			{FileName: "duke-it-out-original.zip", Type: "Original Files", SHA1: "b"},
			{FileName: "duke-it-out-manager.zip", Type: "Mod Manager Files", GameVersionID: "atomic", SHA1: "c"},
		},
	}
	m.Relink()
	return m
}

func TestModValidate(t *testing.T) {
	m := sampleMod(t)
	vc := m.Validate()
	assert.False(t, vc.HasErrors(), "%v", vc.Items())
}

func TestJSONRoundTrip(t *testing.T) {
	m := sampleMod(t)
	data, err := m.ToJSON()
	require.NoError(t, err)

	got, diags := ModFromJSON(data)
	require.NotNil(t, got, "%v", diags.Items())
	assert.True(t, m.Equal(got))
}

func TestXMLRoundTrip(t *testing.T) {
	m := sampleMod(t)
	data, err := m.ToXML()
	require.NoError(t, err)

	got, diags := ModFromXML(data)
	require.NotNil(t, got, "%v", diags.Items())
	assert.True(t, m.Equal(got))
}

func TestCrossFormatParity(t *testing.T) {
	m := sampleMod(t)
	jsonData, err := m.ToJSON()
	require.NoError(t, err)
	fromJSON, diags := ModFromJSON(jsonData)
	require.NotNil(t, fromJSON, "%v", diags.Items())

	xmlData, err := fromJSON.ToXML()
	require.NoError(t, err)
	fromXML, diags2 := ModFromXML(xmlData)
	require.NotNil(t, fromXML, "%v", diags2.Items())

	assert.True(t, m.Equal(fromXML))
}

func TestSearchExactMatch(t *testing.T) {
	col := NewCollection()
	require.NoError(t, col.AddMod(sampleMod(t)))

	caribbean := &Mod{
		ID:   "duke-caribbean",
		Name: "Duke Caribbean",
		Type: "Total Conversion",
		Downloads: []ModDownload{
			{FileName: "duke-caribbean-original.zip", Type: "Original Files", SHA1: "b"},
			{FileName: "duke-caribbean-manager.zip", Type: "Mod Manager Files", SHA1: "c"},
		},
	}
	require.NoError(t, col.AddMod(caribbean))

	oc := NewOrganizedCollection(col, GroupByGameVersion)
	match, err := oc.Search("Duke It Out in D.C.")
	require.NoError(t, err)
	assert.Equal(t, 0, match.ModIndex)
	assert.Equal(t, 0, match.VersionIndex)
	assert.Equal(t, 0, match.TypeIndex)
}

func TestFavouritesPruning(t *testing.T) {
	col := NewCollection()
	require.NoError(t, col.AddMod(sampleMod(t)))

	fav := NewFavouriteModCollection()
	require.NoError(t, fav.Add(ModIdentifier{Name: "Duke It Out in D.C."}))
	require.NoError(t, fav.Add(ModIdentifier{Name: "Penguin"}))

	missing := fav.CheckForMissingFavouriteMods(col)
	require.Len(t, missing, 1)
	assert.Equal(t, "Penguin", missing[0].Identifier.Name)

	// collection itself is not modified by the check
	assert.Len(t, fav.Entries(), 2)
}

func TestFavouriteRemoveNotFoundReturnsFalse(t *testing.T) {
	fav := NewFavouriteModCollection()
	require.NoError(t, fav.Add(ModIdentifier{Name: "A"}))
	assert.False(t, fav.Remove(ModIdentifier{Name: "B"}))
	assert.True(t, fav.Remove(ModIdentifier{Name: "A"}))
}

func TestMultiPartDownloadCompleteness(t *testing.T) {
	c := &Mod{
		ID: "x", Name: "X", Type: "Mod",
		Downloads: []ModDownload{
			{FileName: "a.zip", Type: "Original Files", SHA1: "1"},
			{FileName: "b.zip", Type: "Mod Manager Files", SHA1: "2"},
			{FileName: "part1.zip", Type: "Mod Manager Files", SHA1: "3", PartNumber: 1, PartCount: 2},
			// part 2 missing
		},
	}
	c.Relink()
	vc := c.Validate()
	assert.True(t, vc.HasErrors())
}

func TestFileFromJSON_WarnsOnUnrecognizedModField(t *testing.T) {
	data := []byte(`{
		"fileType": "Mods",
		"fileFormatVersion": "1.0.0",
		"mods": [
			{"id": "x", "name": "X", "type": "Mod", "futureFlag": true}
		]
	}`)

	col, diags := FileFromJSON(data)
	require.NotNil(t, col, "%v", diags.Items())

	var found bool
	for _, d := range diags.Items() {
		if d.Path == "mods[0].futureFlag" {
			found = true
		}
	}
	assert.True(t, found, "%v", diags.Items())
}

func TestFileFromJSON_NoWarningsForKnownFields(t *testing.T) {
	m := sampleMod(t)
	data, err := m.ToJSON()
	require.NoError(t, err)
	wrapped := []byte(`{"fileType":"Mods","fileFormatVersion":"1.0.0","mods":[` + string(data) + `]}`)

	_, diags := FileFromJSON(wrapped)
	assert.Empty(t, diags.Items())
}

func TestCloneRelinksBackPointers(t *testing.T) {
	m := sampleMod(t)
	clone := m.Clone()
	for i := range clone.Versions {
		assert.Same(t, clone, clone.Versions[i].parent)
		for j := range clone.Versions[i].Types {
			assert.Same(t, &clone.Versions[i], clone.Versions[i].Types[j].parent)
		}
	}
	assert.True(t, m.Equal(clone))
	assert.NotSame(t, m, clone)
}
