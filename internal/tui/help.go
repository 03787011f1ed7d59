package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// renderHelp draws the full-screen key reference.
func renderHelp(keys KeyMap) string {
	sections := []struct {
		title string
		binds []key.Binding
	}{
		{"Task list", []key.Binding{keys.New, keys.Edit, keys.Done, keys.Delete, keys.Refresh}},
		{"Form", []key.Binding{keys.Tab, keys.Enter, keys.Save, keys.Back}},
		{"General", []key.Binding{keys.Up, keys.Down, keys.Help, keys.Quit}},
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keyboard Reference"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.binds {
			h := bind.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
	}
	b.WriteString(HelpStyle.Render("press any key to close"))
	return b.String()
}
