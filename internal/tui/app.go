package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thisisthedave/tasknotes-sub010/internal/config"
	"github.com/thisisthedave/tasknotes-sub010/internal/vault"
)

// View identifies a top-level screen.
type View int

const (
	ViewList View = iota
	ViewForm
)

// NavigateMsg switches the active view. Form carries the form
// configuration when View is ViewForm.
type NavigateMsg struct {
	View View
	Form FormSpec
}

// App is the root model. It routes messages to the active view and owns
// the global keys that work everywhere.
type App struct {
	store    *vault.Store
	cfg      *config.Config
	keys     KeyMap
	view     View
	list     ListModel
	form     FormModel
	showHelp bool
	width    int
	height   int
}

// NewApp builds the root TUI model over an opened vault.
func NewApp(store *vault.Store, cfg *config.Config) App {
	return App{
		store: store,
		cfg:   cfg,
		keys:  DefaultKeyMap(),
		view:  ViewList,
		list:  NewListModel(store, cfg),
	}
}

func (a App) Init() tea.Cmd {
	return a.list.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Fall through to the active view so it can resize too.

	case NavigateMsg:
		return a.navigate(msg)

	case tea.KeyMsg:
		// Global keys. Text entry in the form takes precedence so typing
		// "q" into a title works.
		if a.view != ViewForm {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.Help):
				a.showHelp = !a.showHelp
				return a, nil
			}
		}
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case ViewForm:
		a.form, cmd = a.form.Update(msg)
	default:
		a.list, cmd = a.list.Update(msg)
	}
	return a, cmd
}

func (a App) navigate(msg NavigateMsg) (tea.Model, tea.Cmd) {
	a.view = msg.View
	switch msg.View {
	case ViewForm:
		a.form = NewFormModel(msg.Form, a.store, a.cfg.SuggestionLimit)
		return a, a.form.Init()
	default:
		return a, a.list.loadTasks
	}
}

func (a App) View() string {
	if a.showHelp {
		return renderHelp(a.keys)
	}
	switch a.view {
	case ViewForm:
		return a.form.View()
	default:
		return a.list.View()
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(store *vault.Store, cfg *config.Config) error {
	p := tea.NewProgram(NewApp(store, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
