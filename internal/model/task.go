package model

import (
	"fmt"
	"time"
)

// Task is a single task record backed by one vault file.
type Task struct {
	UID          string
	Title        string
	Status       string
	Priority     string
	Due          *time.Time
	Scheduled    *time.Time
	Contexts     []string
	Tags         []string
	Projects     []string
	Recurrence   string
	TimeEstimate int
	CompletedAt  *time.Time
	CreatedAt    time.Time
	ModifiedAt   time.Time
}

// StatusDef is one entry in the user-configurable status catalog.
type StatusDef struct {
	Value      string `toml:"value"`
	Label      string `toml:"label"`
	Color      string `toml:"color"`
	Order      int    `toml:"order"`
	IsComplete bool   `toml:"is_complete"`
}

// PriorityDef is one entry in the user-configurable priority catalog.
type PriorityDef struct {
	Value  string `toml:"value"`
	Label  string `toml:"label"`
	Color  string `toml:"color"`
	Weight int    `toml:"weight"`
}

// DefaultStatus resolves the default status from a catalog: lowest order wins.
// The catalog is passed explicitly so callers never depend on ambient settings.
func DefaultStatus(defs []StatusDef) string {
	if len(defs) == 0 {
		return ""
	}
	best := defs[0]
	for _, d := range defs[1:] {
		if d.Order < best.Order {
			best = d
		}
	}
	return best.Value
}

// DefaultPriority resolves the default priority from a catalog: lowest weight wins.
func DefaultPriority(defs []PriorityDef) string {
	if len(defs) == 0 {
		return ""
	}
	best := defs[0]
	for _, d := range defs[1:] {
		if d.Weight < best.Weight {
			best = d
		}
	}
	return best.Value
}

// StatusLabel returns the display label for a status value, falling back to
// the raw value when the catalog has no entry for it.
func StatusLabel(defs []StatusDef, value string) string {
	for _, d := range defs {
		if d.Value == value {
			return d.Label
		}
	}
	return value
}

// IsCompleteStatus reports whether value is marked as a completed status in the catalog.
func IsCompleteStatus(defs []StatusDef, value string) bool {
	for _, d := range defs {
		if d.Value == value {
			return d.IsComplete
		}
	}
	return false
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if t.TimeEstimate < 0 {
		return fmt.Errorf("time estimate must not be negative")
	}
	if t.Due != nil && t.Scheduled != nil && t.Due.Before(*t.Scheduled) {
		return fmt.Errorf("due date %s is before scheduled date %s",
			t.Due.Format("2006-01-02"), t.Scheduled.Format("2006-01-02"))
	}
	return nil
}

// AddProject appends a project reference, skipping duplicates.
func (t *Task) AddProject(ref string) {
	for _, p := range t.Projects {
		if p == ref {
			return
		}
	}
	t.Projects = append(t.Projects, ref)
}

// RemoveProject drops a project reference if present.
func (t *Task) RemoveProject(ref string) {
	out := t.Projects[:0]
	for _, p := range t.Projects {
		if p != ref {
			out = append(out, p)
		}
	}
	t.Projects = out
}

// IsRecurring reports whether the task carries a recurrence rule.
func (t *Task) IsRecurring() bool {
	return t.Recurrence != ""
}
