package views_test

import (
	"testing"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleModFor(t *testing.T, id, name, gameVersionID string) *catalog.Mod {
	t.Helper()
	m := &catalog.Mod{
		ID:   id,
		Name: name,
		Type: "Total Conversion",
		Versions: []catalog.ModVersion{
			{
				Version: "",
				Types: []catalog.ModVersionType{
					{
						Type: "",
						GameVersions: []catalog.ModGameVersion{
							{GameVersionID: gameVersionID, Files: []catalog.ModFile{{FileName: "GAME.GRP", Type: "grp"}}},
						},
					},
				},
			},
		},
		Downloads: []catalog.ModDownload{
			{FileName: name + "-original.zip", Type: "Original Files"},
			{FileName: name + "-manager.zip", Type: "Mod Manager Files", GameVersionID: gameVersionID},
		},
	}
	m.Relink()
	return m
}

func browserOver(t *testing.T, mods ...*catalog.Mod) views.ModBrowser {
	t.Helper()
	col := catalog.NewCollection()
	for _, m := range mods {
		require.NoError(t, col.AddMod(m))
	}
	organized := catalog.NewOrganizedCollection(col, catalog.GroupByGameVersion)
	return views.NewModBrowser(organized, "eduke32")
}

func TestModBrowser_InitialState(t *testing.T) {
	model := browserOver(t, sampleModFor(t, "skyui", "SkyUI", "eduke32"))

	assert.Equal(t, "", model.SearchQuery())
	assert.True(t, model.IsSearchFocused())
	assert.NotEmpty(t, model.View())
	assert.Equal(t, 1, model.ResultCount())
}

func TestModBrowser_TypeInSearch(t *testing.T) {
	model := browserOver(t, sampleModFor(t, "skyui", "SkyUI", "eduke32"))

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	newModel, _ = newModel.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	newModel, _ = newModel.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	updated := newModel.(views.ModBrowser)
	assert.Equal(t, "sky", updated.SearchQuery())
}

func TestModBrowser_FilterNarrowsResults(t *testing.T) {
	model := browserOver(t,
		sampleModFor(t, "skyui", "SkyUI", "eduke32"),
		sampleModFor(t, "skse", "SKSE", "eduke32"),
	)
	assert.Equal(t, 2, model.ResultCount())

	var updated views.ModBrowser
	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'U'}})
	updated = newModel.(views.ModBrowser)
	newModel, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'I'}})
	updated = newModel.(views.ModBrowser)

	assert.Equal(t, 1, updated.ResultCount())
}

func TestModBrowser_GroupScoping(t *testing.T) {
	model := browserOver(t,
		sampleModFor(t, "a", "ModA", "eduke32"),
		sampleModFor(t, "b", "ModB", "rednukem"),
	)

	assert.Equal(t, 1, model.ResultCount())
}

func TestModBrowser_NavigateResults(t *testing.T) {
	model := browserOver(t,
		sampleModFor(t, "skyui", "SkyUI", "eduke32"),
		sampleModFor(t, "skse", "SKSE", "eduke32"),
	)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := newModel.(views.ModBrowser)
	assert.False(t, updated.IsSearchFocused())

	newModel, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated = newModel.(views.ModBrowser)

	assert.Equal(t, 1, updated.Selected())
}

func TestModBrowser_EnterToLaunch(t *testing.T) {
	model := browserOver(t, sampleModFor(t, "skyui", "SkyUI", "eduke32"))

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	_, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		msg := cmd()
		selectedMsg, ok := msg.(views.ModSelectedMsg)
		assert.True(t, ok)
		assert.Equal(t, "skyui", selectedMsg.Mod.ID)
	}
}

func TestModBrowser_SlashFocusesSearch(t *testing.T) {
	model := browserOver(t, sampleModFor(t, "skyui", "SkyUI", "eduke32"))

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := newModel.(views.ModBrowser)
	assert.False(t, updated.IsSearchFocused())

	newModel, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	updated = newModel.(views.ModBrowser)
	assert.True(t, updated.IsSearchFocused())
}
