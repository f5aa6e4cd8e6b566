package views

import (
	"fmt"

	"duke3dmm/internal/gameversion"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GameVersionSelectedMsg is sent when the user confirms a host engine.
type GameVersionSelectedMsg struct {
	GameVersion *gameversion.GameVersion
}

// GameSelect lets the user pick which installed engine build to launch
// (spec §4.3, §6 "-v <gameVersion>"). Only registry entries with a
// configured GamePath are offered; an unconfigured engine can't host a
// launch regardless of compatibility.
type GameSelect struct {
	versions []*gameversion.GameVersion
	selected int
	width    int
	height   int
}

// NewGameSelect builds a view over the configured subset of all.
func NewGameSelect(all []*gameversion.GameVersion) GameSelect {
	var configured []*gameversion.GameVersion
	for _, gv := range all {
		if gv.GamePath != "" {
			configured = append(configured, gv)
		}
	}
	return GameSelect{versions: configured, width: 80, height: 24}
}

// Selected returns the currently highlighted index.
func (g GameSelect) Selected() int { return g.selected }

// SelectedGameVersion returns the currently highlighted entry, or nil.
func (g GameSelect) SelectedGameVersion() *gameversion.GameVersion {
	if len(g.versions) == 0 || g.selected >= len(g.versions) {
		return nil
	}
	return g.versions[g.selected]
}

// Init implements tea.Model.
func (g GameSelect) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (g GameSelect) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return g.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
		return g, nil
	}
	return g, nil
}

func (g GameSelect) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(g.versions) == 0 {
		return g, nil
	}

	switch msg.String() {
	case "up", "k":
		g.selected--
		if g.selected < 0 {
			g.selected = len(g.versions) - 1
		}
		return g, nil

	case "down", "j":
		g.selected++
		if g.selected >= len(g.versions) {
			g.selected = 0
		}
		return g, nil

	case "enter", " ":
		gv := g.SelectedGameVersion()
		if gv != nil {
			return g, func() tea.Msg {
				return GameVersionSelectedMsg{GameVersion: gv}
			}
		}
		return g, nil

	case "home", "g":
		g.selected = 0
		return g, nil

	case "end", "G":
		g.selected = len(g.versions) - 1
		return g, nil
	}

	return g, nil
}

// View implements tea.Model.
func (g GameSelect) View() string {
	if len(g.versions) == 0 {
		return g.renderEmpty()
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")).MarginBottom(1)
	itemStyle := lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle := lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("205")).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(4)

	output := titleStyle.Render("Select a Game Version") + "\n\n"

	for i, gv := range g.versions {
		cursor := "  "
		style := itemStyle
		if i == g.selected {
			cursor = "▸ "
			style = selectedStyle
		}

		output += style.Render(fmt.Sprintf("%s%s", cursor, gv.LongName)) + "\n"

		if i == g.selected {
			output += detailStyle.Render(fmt.Sprintf("ID: %s", gv.ID)) + "\n"
			output += detailStyle.Render(fmt.Sprintf("Path: %s", gv.GamePath)) + "\n"
			if gv.RequiresDOSBox {
				output += detailStyle.Render("Requires DOSBox") + "\n"
			}
			if gv.LastPlayedTimePoint != nil {
				output += detailStyle.Render(fmt.Sprintf("Last played: %s", gv.LastPlayedTimePoint.Format("2006-01-02 15:04"))) + "\n"
			}
			output += "\n"
		}
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	output += helpStyle.Render("↑/↓: navigate  enter: select")

	return output
}

func (g GameSelect) renderEmpty() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return style.Render(`No game versions are configured with an install path yet.

Run 'duke3dmm game detect' to scan Steam libraries, or 'duke3dmm game list'
to see the full registry and its ids.`)
}
