package tui

import (
	"fmt"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/gameversion"
	"duke3dmm/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewType represents different screens in the TUI
type ViewType int

const (
	ViewGameSelect ViewType = iota
	ViewModBrowser
)

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// LaunchFunc performs the actual launch once a host and (optionally) a mod
// have been chosen interactively. A nil mod means "no mod" (spec §6 -n).
type LaunchFunc func(host *gameversion.GameVersion, mod *catalog.Mod) error

// App is the main TUI application model: pick a host game version, then
// browse its compatible mods and launch one.
type App struct {
	registry *gameversion.Collection
	catalog  *catalog.OrganizedCollection
	launch   LaunchFunc
	keys     *KeyMap

	currentView ViewType
	host        *gameversion.GameVersion
	width       int
	height      int
	err         error
	quitting    bool

	gameSelect views.GameSelect
	modBrowser *views.ModBrowser
}

// NewApp creates a new TUI application over registry and catalog, invoking
// launch when the user confirms a selection. keyMode selects the footer's
// keybinding hint ("vim" or "standard"; see config.Settings.KeyMode).
func NewApp(registry *gameversion.Collection, col *catalog.Collection, launch LaunchFunc, keyMode string) App {
	organized := catalog.NewOrganizedCollection(col, catalog.GroupByGameVersion)
	return App{
		registry:    registry,
		catalog:     organized,
		launch:      launch,
		keys:        NewKeyMap(keyMode),
		currentView: ViewGameSelect,
		gameSelect:  views.NewGameSelect(registry.All()),
		width:       80,
		height:      24,
	}
}

// CurrentView returns the current view type
func (a App) CurrentView() ViewType {
	return a.currentView
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case views.GameVersionSelectedMsg:
		a.host = msg.GameVersion
		browser := views.NewModBrowser(a.catalog, a.host.ID)
		a.modBrowser = &browser
		a.currentView = ViewModBrowser
		a.err = nil
		return a, nil

	case views.ModSelectedMsg:
		if err := a.launch(a.host, msg.Mod); err != nil {
			a.err = err
			return a, nil
		}
		a.quitting = true
		return a, tea.Quit

	case ErrorMsg:
		a.err = msg.Err
		return a, nil
	}

	return a.updateCurrentView(msg)
}

func (a App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit

	case "q":
		if a.currentView == ViewModBrowser && a.modBrowser != nil && a.modBrowser.IsSearchFocused() {
			break
		}
		a.quitting = true
		return a, tea.Quit

	case "esc":
		if a.currentView == ViewModBrowser && a.modBrowser != nil && a.modBrowser.IsSearchFocused() {
			break
		}
		if a.currentView == ViewModBrowser {
			a.currentView = ViewGameSelect
			a.modBrowser = nil
			return a, nil
		}
	}

	return a.updateCurrentView(msg)
}

func (a App) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var model tea.Model

	switch a.currentView {
	case ViewGameSelect:
		model, cmd = a.gameSelect.Update(msg)
		a.gameSelect = model.(views.GameSelect)

	case ViewModBrowser:
		if a.modBrowser != nil {
			model, cmd = a.modBrowser.Update(msg)
			browser := model.(views.ModBrowser)
			a.modBrowser = &browser
		}
	}

	return a, cmd
}

// View implements tea.Model
func (a App) View() string {
	if a.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	header := titleStyle.Render("duke3dmm")

	tabs := []string{"Game", "Mods"}
	tabBar := ""
	for i, tab := range tabs {
		if ViewType(i) == a.currentView {
			tabBar += activeTabStyle.Render(tab) + "  "
		} else {
			tabBar += tabStyle.Render(tab) + "  "
		}
	}

	content := a.renderCurrentView()
	if a.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).MarginTop(1)
		content += "\n" + errStyle.Render(fmt.Sprintf("Error: %v", a.err))
	}

	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	footer := footerStyle.Render(a.keys.NavigationHelp())

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", header, tabBar, content, footer)
}

func (a App) renderCurrentView() string {
	switch a.currentView {
	case ViewGameSelect:
		return a.gameSelect.View()
	case ViewModBrowser:
		if a.modBrowser != nil {
			return a.modBrowser.View()
		}
		return "Select a game version first."
	default:
		return "Unknown view"
	}
}

// Run starts the TUI application.
func Run(registry *gameversion.Collection, col *catalog.Collection, launch LaunchFunc, keyMode string) error {
	app := NewApp(registry, col, launch, keyMode)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
