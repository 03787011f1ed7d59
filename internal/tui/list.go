package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thisisthedave/tasknotes-sub010/internal/config"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
	"github.com/thisisthedave/tasknotes-sub010/internal/recurrence"
	"github.com/thisisthedave/tasknotes-sub010/internal/vault"
)

// taskItem adapts a task for the list widget.
type taskItem struct {
	task   *model.Task
	status string
}

func (i taskItem) Title() string {
	title := i.task.Title
	if i.task.IsRecurring() {
		title += "  " + MutedStyle.Render("("+recurrence.Summarize(i.task.Recurrence)+")")
	}
	return title
}

func (i taskItem) Description() string {
	parts := []string{i.status}
	if i.task.Priority != "" {
		parts = append(parts, i.task.Priority)
	}
	if i.task.Due != nil {
		parts = append(parts, "due "+i.task.Due.Format("2006-01-02"))
	}
	if len(i.task.Contexts) > 0 {
		parts = append(parts, "@"+strings.Join(i.task.Contexts, " @"))
	}
	return strings.Join(parts, " · ")
}

func (i taskItem) FilterValue() string { return i.task.Title }

// tasksLoadedMsg delivers the vault contents.
type tasksLoadedMsg struct {
	tasks []*model.Task
	err   error
}

// taskMutatedMsg signals a complete or delete finished; reload follows.
type taskMutatedMsg struct {
	err error
}

// ListModel is the main task list view.
type ListModel struct {
	store  *vault.Store
	cfg    *config.Config
	keys   KeyMap
	list   list.Model
	errMsg string
	width  int
	height int
}

// NewListModel builds the task list view over store.
func NewListModel(store *vault.Store, cfg *config.Config) ListModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(ColorPrimary).BorderForeground(ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(ColorSecondary).BorderForeground(ColorPrimary)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Tasks"
	l.Styles.Title = TitleStyle
	l.SetShowHelp(false)

	return ListModel{store: store, cfg: cfg, keys: DefaultKeyMap(), list: l}
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTasks
}

func (m ListModel) loadTasks() tea.Msg {
	tasks, err := m.store.List()
	return tasksLoadedMsg{tasks: tasks, err: err}
}

func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		items := make([]list.Item, 0, len(msg.tasks))
		for _, t := range msg.tasks {
			items = append(items, taskItem{task: t, status: model.StatusLabel(m.cfg.Statuses, t.Status)})
		}
		return m, m.list.SetItems(items)

	case taskMutatedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, m.loadTasks

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg {
				return NavigateMsg{View: ViewForm, Form: CreateFormSpec(m.store, m.defaults())}
			}

		case key.Matches(msg, m.keys.Edit):
			if uid := m.selectedUID(); uid != "" {
				return m, func() tea.Msg {
					return NavigateMsg{View: ViewForm, Form: EditFormSpec(m.store, uid)}
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Done):
			if uid := m.selectedUID(); uid != "" {
				return m, m.completeTask(uid)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if uid := m.selectedUID(); uid != "" {
				return m, m.deleteTask(uid)
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadTasks
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ListModel) selectedUID() string {
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return ""
	}
	return item.task.UID
}

func (m ListModel) defaults() catalogDefaults {
	return catalogDefaults{
		Status:   model.DefaultStatus(m.cfg.Statuses),
		Priority: model.DefaultPriority(m.cfg.Priorities),
	}
}

func (m ListModel) completeTask(uid string) tea.Cmd {
	done := m.doneStatus()
	store := m.store
	loc := m.cfg.Location()
	return func() tea.Msg {
		_, err := store.Complete(uid, done, loc)
		return taskMutatedMsg{err: err}
	}
}

func (m ListModel) deleteTask(uid string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return taskMutatedMsg{err: store.Delete(uid)}
	}
}

func (m ListModel) doneStatus() string {
	for _, s := range m.cfg.Statuses {
		if s.IsComplete {
			return s.Value
		}
	}
	return "done"
}

func (m ListModel) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.errMsg))
	}
	b.WriteString(HelpStyle.Render(fmt.Sprintf(
		"%d tasks • n: new • e: edit • d: done • x: delete • r: refresh • ?: help",
		len(m.list.Items()))))
	return lipgloss.NewStyle().Padding(1, 1).Render(b.String())
}
