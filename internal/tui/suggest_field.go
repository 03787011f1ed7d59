package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thisisthedave/tasknotes-sub010/internal/suggest"
)

// corpusFunc supplies the known tokens for one field; may perform I/O.
type corpusFunc func(context.Context) ([]string, error)

// suggestionsMsg carries the result of one corpus lookup. seq ties the
// result back to the lookup that produced it so stale results are dropped.
type suggestionsMsg struct {
	field   int
	seq     uint64
	matches []string
}

// fieldModel is one form input. Fields with a corpus source get an
// autocomplete dropdown over the comma-separated buffer.
type fieldModel struct {
	name        string
	label       string
	input       textinput.Model
	source      corpusFunc
	limit       int
	tracker     suggest.Tracker
	suggestions []string
	selected    int
}

func newField(name, label, placeholder string) fieldModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	return fieldModel{name: name, label: label, input: ti, selected: -1}
}

func newSuggestField(name, label, placeholder string, source corpusFunc, limit int) fieldModel {
	f := newField(name, label, placeholder)
	f.source = source
	f.limit = limit
	return f
}

// update forwards msg to the underlying input and, when the buffer changed,
// kicks off a fresh corpus lookup tagged with a new sequence number.
func (f *fieldModel) update(msg tea.Msg, index int) tea.Cmd {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)

	if f.source == nil || f.input.Value() == before {
		return cmd
	}

	buffer := f.input.Value()
	if currentToken(buffer) == "" {
		f.dismiss()
		return cmd
	}

	seq := f.tracker.Next()
	source := f.source
	limit := f.limit
	fetch := func() tea.Msg {
		corpus, err := source(context.Background())
		if err != nil {
			// Suggestions are a non-critical enhancement; a failed
			// lookup just means an empty list.
			corpus = nil
		}
		return suggestionsMsg{field: index, seq: seq, matches: suggest.SuggestN(buffer, corpus, limit)}
	}
	return tea.Batch(cmd, fetch)
}

// applySuggestions installs a lookup result unless it has been superseded.
func (f *fieldModel) applySuggestions(msg suggestionsMsg) {
	if !f.tracker.Current(msg.seq) {
		return
	}
	f.suggestions = msg.matches
	if f.selected >= len(f.suggestions) {
		f.selected = len(f.suggestions) - 1
	}
}

// moveSelection shifts the highlighted suggestion by delta, clipped to
// [-1, len-1]. -1 means nothing highlighted.
func (f *fieldModel) moveSelection(delta int) {
	f.selected += delta
	if f.selected < -1 {
		f.selected = -1
	}
	if f.selected > len(f.suggestions)-1 {
		f.selected = len(f.suggestions) - 1
	}
}

// acceptSelected replaces the in-progress token with the highlighted
// suggestion. Reports whether an acceptance happened.
func (f *fieldModel) acceptSelected() bool {
	if f.selected < 0 || f.selected >= len(f.suggestions) {
		return false
	}
	f.input.SetValue(suggest.Accept(f.input.Value(), f.suggestions[f.selected]))
	f.input.CursorEnd()
	f.dismiss()
	return true
}

func (f *fieldModel) dismiss() {
	f.suggestions = nil
	f.selected = -1
}

func (f *fieldModel) open() bool {
	return len(f.suggestions) > 0
}

func (f *fieldModel) view(focused bool) string {
	label := LabelStyle.Render(f.label)
	if focused {
		label = FocusedLabelStyle.Render(f.label)
	}
	line := label + " " + f.input.View()
	if !focused || !f.open() {
		return line
	}

	var b strings.Builder
	b.WriteString(line)
	for i, s := range f.suggestions {
		b.WriteString("\n")
		if i == f.selected {
			b.WriteString(SelectedSuggestionStyle.Render("> " + s))
		} else {
			b.WriteString(SuggestionStyle.Render("  " + s))
		}
	}
	return b.String()
}

func currentToken(buffer string) string {
	parts := strings.Split(buffer, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}
