package ui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func wrap(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return fmt.Sprintf("\033[%sm%s\033[0m", code, s)
}

// Red returns s wrapped in red ANSI color.
func Red(s string) string { return wrap("31", s) }

// Yellow returns s wrapped in yellow ANSI color.
func Yellow(s string) string { return wrap("33", s) }

// Green returns s wrapped in green ANSI color.
func Green(s string) string { return wrap("32", s) }

// Blue returns s wrapped in blue ANSI color.
func Blue(s string) string { return wrap("34", s) }

// Magenta returns s wrapped in magenta ANSI color.
func Magenta(s string) string { return wrap("35", s) }

// Gray returns s wrapped in bright-black ANSI color.
func Gray(s string) string { return wrap("90", s) }

// Bold returns s wrapped in bold ANSI style.
func Bold(s string) string { return wrap("1", s) }

// Colorize applies a catalog color name (as configured in status/priority
// catalogs) to s. Unknown names pass through unstyled.
func Colorize(name, s string) string {
	switch name {
	case "red":
		return Red(s)
	case "yellow":
		return Yellow(s)
	case "green":
		return Green(s)
	case "blue":
		return Blue(s)
	case "magenta", "purple":
		return Magenta(s)
	case "gray", "grey":
		return Gray(s)
	default:
		return s
	}
}
