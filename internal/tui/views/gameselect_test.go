package views_test

import (
	"testing"

	"duke3dmm/internal/gameversion"
	"duke3dmm/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func twoConfiguredVersions() []*gameversion.GameVersion {
	return []*gameversion.GameVersion{
		{ID: "eduke32", LongName: "eDuke32", GamePath: "/games/eduke32"},
		{ID: "rednukem", LongName: "RedNukem", GamePath: "/games/rednukem"},
	}
}

func TestGameSelect_InitialState(t *testing.T) {
	model := views.NewGameSelect(twoConfiguredVersions())

	assert.Equal(t, 0, model.Selected())
	assert.NotEmpty(t, model.View())
}

func TestGameSelect_OmitsUnconfiguredVersions(t *testing.T) {
	versions := append(twoConfiguredVersions(), &gameversion.GameVersion{ID: "raze", LongName: "Raze"})
	model := views.NewGameSelect(versions)

	assert.NotContains(t, model.View(), "Raze")
}

func TestGameSelect_NavigateDown(t *testing.T) {
	model := views.NewGameSelect(twoConfiguredVersions())

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated := newModel.(views.GameSelect)

	assert.Equal(t, 1, updated.Selected())
}

func TestGameSelect_NavigateUp(t *testing.T) {
	model := views.NewGameSelect(twoConfiguredVersions())

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	newModel, _ = newModel.Update(tea.KeyMsg{Type: tea.KeyUp})
	updated := newModel.(views.GameSelect)

	assert.Equal(t, 0, updated.Selected())
}

func TestGameSelect_WrapAround(t *testing.T) {
	model := views.NewGameSelect(twoConfiguredVersions())

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyUp})
	updated := newModel.(views.GameSelect)

	assert.Equal(t, 1, updated.Selected())
}

func TestGameSelect_EnterSelectsGameVersion(t *testing.T) {
	model := views.NewGameSelect(twoConfiguredVersions())

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		msg := cmd()
		selectedMsg, ok := msg.(views.GameVersionSelectedMsg)
		assert.True(t, ok)
		assert.Equal(t, "eduke32", selectedMsg.GameVersion.ID)
	}
}

func TestGameSelect_EmptyList(t *testing.T) {
	model := views.NewGameSelect(nil)

	view := model.View()
	assert.Contains(t, view, "No game versions are configured")
}
