package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thisisthedave/tasknotes-sub010/internal/model"
	"github.com/thisisthedave/tasknotes-sub010/internal/vault"
)

// FormState holds the editable field values of a task form, as the user
// typed them. Conversion to a model.Task happens on save.
type FormState struct {
	Title      string
	Due        string
	Scheduled  string
	Status     string
	Priority   string
	Contexts   string
	Tags       string
	Projects   string
	Recurrence string
	Estimate   string
}

// FormSpec configures a form instance. The same controller handles both
// creation and editing; only the spec differs.
type FormSpec struct {
	Title       string
	LoadInitial func() (FormState, error)
	OnSave      func(FormState) error
}

const (
	fieldTitle = iota
	fieldDue
	fieldScheduled
	fieldStatus
	fieldPriority
	fieldContexts
	fieldTags
	fieldProjects
	fieldRecurrence
	fieldEstimate
	fieldCount
)

// FormModel is the task create/edit view.
type FormModel struct {
	spec   FormSpec
	keys   KeyMap
	fields []fieldModel
	focus  int
	errMsg string
	width  int
	height int
}

// formLoadedMsg delivers the initial field values.
type formLoadedMsg struct {
	state FormState
	err   error
}

// formSavedMsg signals that OnSave ran.
type formSavedMsg struct {
	err error
}

// NewFormModel builds a form from spec. store supplies the suggestion
// corpora for the context, tag and project fields; suggestLimit caps how
// many suggestions each dropdown shows.
func NewFormModel(spec FormSpec, store *vault.Store, suggestLimit int) FormModel {
	fields := make([]fieldModel, fieldCount)
	fields[fieldTitle] = newField("title", "Title", "what needs doing")
	fields[fieldDue] = newField("due", "Due", "2006-01-02")
	fields[fieldScheduled] = newField("scheduled", "Scheduled", "2006-01-02")
	fields[fieldStatus] = newField("status", "Status", "open")
	fields[fieldPriority] = newField("priority", "Priority", "normal")
	fields[fieldContexts] = newSuggestField("contexts", "Contexts", "home, work", store.Contexts, suggestLimit)
	fields[fieldTags] = newSuggestField("tags", "Tags", "urgent, review", store.Tags, suggestLimit)
	fields[fieldProjects] = newSuggestField("projects", "Projects", "Project Name", store.ProjectNotes, suggestLimit)
	fields[fieldRecurrence] = newField("recurrence", "Repeat", "FREQ=WEEKLY;BYDAY=MO")
	fields[fieldEstimate] = newField("estimate", "Estimate", "1h30m")

	m := FormModel{spec: spec, keys: DefaultKeyMap(), fields: fields}
	m.fields[fieldTitle].input.Focus()
	return m
}

func (m FormModel) Init() tea.Cmd {
	load := m.spec.LoadInitial
	return tea.Batch(textinput.Blink, func() tea.Msg {
		if load == nil {
			return formLoadedMsg{}
		}
		state, err := load()
		return formLoadedMsg{state: state, err: err}
	})
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case formLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.setState(msg.state)
		return m, nil

	case formSavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return NavigateMsg{View: ViewList} }

	case suggestionsMsg:
		if msg.field >= 0 && msg.field < len(m.fields) {
			m.fields[msg.field].applySuggestions(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m FormModel) handleKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	f := &m.fields[m.focus]

	switch {
	case key.Matches(msg, m.keys.Save):
		state := m.state()
		save := m.spec.OnSave
		return m, func() tea.Msg {
			if save == nil {
				return formSavedMsg{}
			}
			return formSavedMsg{err: save(state)}
		}

	case key.Matches(msg, m.keys.Back):
		if f.open() {
			f.dismiss()
			return m, nil
		}
		return m, func() tea.Msg { return NavigateMsg{View: ViewList} }

	case key.Matches(msg, m.keys.Enter):
		if f.acceptSelected() {
			return m, nil
		}
		return m.focusNext()

	case key.Matches(msg, m.keys.Tab):
		return m.focusNext()

	case msg.String() == "shift+tab":
		return m.focusPrev()

	case msg.Type == tea.KeyUp:
		if f.open() {
			f.moveSelection(-1)
			return m, nil
		}
		return m.focusPrev()

	case msg.Type == tea.KeyDown:
		if f.open() {
			f.moveSelection(1)
			return m, nil
		}
		return m.focusNext()
	}

	return m.updateFocused(msg)
}

func (m FormModel) updateFocused(msg tea.Msg) (FormModel, tea.Cmd) {
	cmd := m.fields[m.focus].update(msg, m.focus)
	return m, cmd
}

func (m FormModel) focusNext() (FormModel, tea.Cmd) {
	return m.setFocus((m.focus + 1) % fieldCount)
}

func (m FormModel) focusPrev() (FormModel, tea.Cmd) {
	return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
}

func (m FormModel) setFocus(i int) (FormModel, tea.Cmd) {
	m.fields[m.focus].input.Blur()
	m.fields[m.focus].dismiss()
	m.focus = i
	cmd := m.fields[m.focus].input.Focus()
	return m, cmd
}

func (m *FormModel) setState(s FormState) {
	m.fields[fieldTitle].input.SetValue(s.Title)
	m.fields[fieldDue].input.SetValue(s.Due)
	m.fields[fieldScheduled].input.SetValue(s.Scheduled)
	m.fields[fieldStatus].input.SetValue(s.Status)
	m.fields[fieldPriority].input.SetValue(s.Priority)
	m.fields[fieldContexts].input.SetValue(s.Contexts)
	m.fields[fieldTags].input.SetValue(s.Tags)
	m.fields[fieldProjects].input.SetValue(s.Projects)
	m.fields[fieldRecurrence].input.SetValue(s.Recurrence)
	m.fields[fieldEstimate].input.SetValue(s.Estimate)
}

func (m FormModel) state() FormState {
	return FormState{
		Title:      m.fields[fieldTitle].input.Value(),
		Due:        m.fields[fieldDue].input.Value(),
		Scheduled:  m.fields[fieldScheduled].input.Value(),
		Status:     m.fields[fieldStatus].input.Value(),
		Priority:   m.fields[fieldPriority].input.Value(),
		Contexts:   m.fields[fieldContexts].input.Value(),
		Tags:       m.fields[fieldTags].input.Value(),
		Projects:   m.fields[fieldProjects].input.Value(),
		Recurrence: m.fields[fieldRecurrence].input.Value(),
		Estimate:   m.fields[fieldEstimate].input.Value(),
	}
}

func (m FormModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.spec.Title))
	b.WriteString("\n\n")
	for i := range m.fields {
		b.WriteString(m.fields[i].view(i == m.focus))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.errMsg))
	}
	b.WriteString(HelpStyle.Render("tab: next field • ctrl+s: save • esc: back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// CreateFormSpec returns the spec for a blank new-task form.
func CreateFormSpec(store *vault.Store, cfg catalogDefaults) FormSpec {
	return FormSpec{
		Title: "New Task",
		LoadInitial: func() (FormState, error) {
			return FormState{Status: cfg.Status, Priority: cfg.Priority}, nil
		},
		OnSave: func(s FormState) error {
			task, err := taskFromState(s, nil)
			if err != nil {
				return err
			}
			return store.Create(task)
		},
	}
}

// EditFormSpec returns the spec for editing an existing task.
func EditFormSpec(store *vault.Store, uid string) FormSpec {
	return FormSpec{
		Title: "Edit Task",
		LoadInitial: func() (FormState, error) {
			t, err := store.Get(uid)
			if err != nil {
				return FormState{}, err
			}
			return stateFromTask(t), nil
		},
		OnSave: func(s FormState) error {
			existing, err := store.Get(uid)
			if err != nil {
				return err
			}
			task, err := taskFromState(s, existing)
			if err != nil {
				return err
			}
			return store.Save(task)
		},
	}
}

// catalogDefaults carries the configured default status and priority values.
type catalogDefaults struct {
	Status   string
	Priority string
}

func stateFromTask(t *model.Task) FormState {
	s := FormState{
		Title:      t.Title,
		Status:     t.Status,
		Priority:   t.Priority,
		Contexts:   strings.Join(t.Contexts, ", "),
		Tags:       strings.Join(t.Tags, ", "),
		Projects:   strings.Join(stripLinks(t.Projects), ", "),
		Recurrence: t.Recurrence,
	}
	if t.Due != nil {
		s.Due = t.Due.Format("2006-01-02")
	}
	if t.Scheduled != nil {
		s.Scheduled = t.Scheduled.Format("2006-01-02")
	}
	if t.TimeEstimate > 0 {
		s.Estimate = fmt.Sprintf("%dm", t.TimeEstimate)
	}
	return s
}

func stripLinks(links []string) []string {
	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, vault.ParseLink(l))
	}
	return names
}

func taskFromState(s FormState, base *model.Task) (*model.Task, error) {
	t := &model.Task{}
	if base != nil {
		copied := *base
		t = &copied
	}
	t.Title = strings.TrimSpace(s.Title)
	t.Status = strings.TrimSpace(s.Status)
	t.Priority = strings.TrimSpace(s.Priority)
	t.Recurrence = strings.TrimSpace(s.Recurrence)
	t.Contexts = splitList(s.Contexts)
	t.Tags = splitList(s.Tags)
	t.Projects = vault.FormatLinks(splitList(s.Projects))

	var err error
	if t.Due, err = parseOptionalDate(s.Due); err != nil {
		return nil, fmt.Errorf("invalid due date: %w", err)
	}
	if t.Scheduled, err = parseOptionalDate(s.Scheduled); err != nil {
		return nil, fmt.Errorf("invalid scheduled date: %w", err)
	}
	if t.TimeEstimate, err = parseEstimate(s.Estimate); err != nil {
		return nil, fmt.Errorf("invalid estimate: %w", err)
	}
	return t, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseEstimate(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return int(d.Minutes()), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
