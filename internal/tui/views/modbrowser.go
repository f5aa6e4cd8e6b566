package views

import (
	"fmt"
	"strings"

	"duke3dmm/internal/catalog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ModSelectedMsg is sent when the user confirms a mod to launch.
type ModSelectedMsg struct {
	Mod *catalog.Mod
}

// ModBrowser lets the user filter and pick a mod from the catalog, scoped to
// the mods compatible with a chosen host game version (spec §5 catalog
// browsing, feeding the -s/-r selection the CLI performs non-interactively).
type ModBrowser struct {
	organized     *catalog.OrganizedCollection
	groupKey      string
	searchInput   textinput.Model
	searchFocused bool
	filtered      []*catalog.Mod
	selected      int
	width         int
	height        int
}

// NewModBrowser builds a browser over organized, restricted to groupKey (a
// game version id when organized groups by GroupByGameVersion).
func NewModBrowser(organized *catalog.OrganizedCollection, groupKey string) ModBrowser {
	ti := textinput.New()
	ti.Placeholder = "Filter mods..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	m := ModBrowser{
		organized:     organized,
		groupKey:      groupKey,
		searchInput:   ti,
		searchFocused: true,
		width:         80,
		height:        24,
	}
	m.refilter()
	return m
}

// refilter recomputes the visible mod list from the current search text.
// Unlike OrganizedCollection.Search (used by the CLI for a single exact
// pick), this does a live substring match so every candidate stays visible
// while typing.
func (m *ModBrowser) refilter() {
	all := m.organized.ModsInGroup(m.groupKey)
	query := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))
	if query == "" {
		m.filtered = all
		m.selected = 0
		return
	}
	var out []*catalog.Mod
	for _, mod := range all {
		if strings.Contains(strings.ToLower(mod.Name), query) {
			out = append(out, mod)
		}
	}
	m.filtered = out
	m.selected = 0
}

// SearchQuery returns the current filter text.
func (m ModBrowser) SearchQuery() string { return m.searchInput.Value() }

// IsSearchFocused returns whether the filter box has focus.
func (m ModBrowser) IsSearchFocused() bool { return m.searchFocused }

// ResultCount returns the number of mods currently visible.
func (m ModBrowser) ResultCount() int { return len(m.filtered) }

// Selected returns the index of the highlighted mod.
func (m ModBrowser) Selected() int { return m.selected }

// SelectedMod returns the highlighted mod, or nil if the list is empty.
func (m ModBrowser) SelectedMod() *catalog.Mod {
	if len(m.filtered) == 0 || m.selected >= len(m.filtered) {
		return nil
	}
	return m.filtered[m.selected]
}

// Init implements tea.Model.
func (m ModBrowser) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m ModBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.searchFocused {
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.refilter()
		return m, cmd
	}

	return m, nil
}

func (m ModBrowser) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.Type {
		case tea.KeyEsc:
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil

		case tea.KeyEnter:
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil

		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.refilter()
			return m, cmd
		}
	}

	switch msg.String() {
	case "/":
		m.searchFocused = true
		m.searchInput.Focus()
		return m, nil

	case "up", "k":
		if len(m.filtered) > 0 {
			m.selected--
			if m.selected < 0 {
				m.selected = len(m.filtered) - 1
			}
		}
		return m, nil

	case "down", "j":
		if len(m.filtered) > 0 {
			m.selected++
			if m.selected >= len(m.filtered) {
				m.selected = 0
			}
		}
		return m, nil

	case "enter", " ":
		mod := m.SelectedMod()
		if mod != nil {
			return m, func() tea.Msg {
				return ModSelectedMsg{Mod: mod}
			}
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m ModBrowser) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")).MarginBottom(1)
	itemStyle := lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle := lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("205")).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(4)

	output := titleStyle.Render("Browse Mods") + "\n\n"

	searchLabel := "Filter: "
	if m.searchFocused {
		searchLabel = "Filter (enter/esc to exit): "
	}
	output += searchLabel + m.searchInput.View() + "\n\n"

	if len(m.filtered) == 0 {
		if m.SearchQuery() != "" {
			output += itemStyle.Render("No mods match that filter.") + "\n"
		} else {
			output += itemStyle.Render("No mods in the catalog for this game version.") + "\n"
		}
	} else {
		output += fmt.Sprintf("%d mod(s):\n\n", len(m.filtered))

		for i, mod := range m.filtered {
			cursor := "  "
			style := itemStyle
			if i == m.selected {
				cursor = "▸ "
				style = selectedStyle
			}

			output += style.Render(fmt.Sprintf("%s%s", cursor, mod.Name)) + "\n"

			if i == m.selected {
				if mod.Team != nil && mod.Team.Name != "" {
					output += detailStyle.Render(fmt.Sprintf("by %s", mod.Team.Name)) + "\n"
				}
				if len(mod.Notes) > 0 {
					output += detailStyle.Render(mod.Notes[0]) + "\n"
				}
				output += detailStyle.Render(fmt.Sprintf("Versions: %d", len(mod.Versions))) + "\n"
				output += "\n"
			}
		}
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	if m.searchFocused {
		output += helpStyle.Render("enter/esc: exit filter")
	} else {
		output += helpStyle.Render("/: filter  ↑/↓: navigate  enter: launch")
	}

	return output
}
