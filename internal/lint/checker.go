// Package lint checks vault tasks for problems the editing surfaces
// cannot prevent, like hand-edited frontmatter with unknown catalog
// values or malformed recurrence rules.
package lint

import (
	"fmt"

	"github.com/thisisthedave/tasknotes-sub010/internal/config"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
	"github.com/thisisthedave/tasknotes-sub010/internal/recurrence"
)

type Warning struct {
	TaskTitle string
	Field     string
	Reason    string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.TaskTitle, w.Field, w.Reason)
}

// Check validates tasks against the configured catalogs and field rules.
func Check(tasks []*model.Task, cfg *config.Config) []Warning {
	statuses := make(map[string]bool, len(cfg.Statuses))
	for _, s := range cfg.Statuses {
		statuses[s.Value] = true
	}
	priorities := make(map[string]bool, len(cfg.Priorities))
	for _, p := range cfg.Priorities {
		priorities[p.Value] = true
	}

	var warnings []Warning
	for _, t := range tasks {
		if t.Title == "" {
			warnings = append(warnings, Warning{
				TaskTitle: t.UID,
				Field:     "title",
				Reason:    "task has no title",
			})
		}

		if t.Status != "" && !statuses[t.Status] {
			warnings = append(warnings, Warning{
				TaskTitle: t.Title,
				Field:     "status",
				Reason:    fmt.Sprintf("status '%s' is not in the configured catalog", t.Status),
			})
		}

		if t.Priority != "" && !priorities[t.Priority] {
			warnings = append(warnings, Warning{
				TaskTitle: t.Title,
				Field:     "priority",
				Reason:    fmt.Sprintf("priority '%s' is not in the configured catalog", t.Priority),
			})
		}

		if t.IsRecurring() {
			if err := recurrence.Validate(t.Recurrence); err != nil {
				warnings = append(warnings, Warning{
					TaskTitle: t.Title,
					Field:     "recurrence",
					Reason:    fmt.Sprintf("rule '%s' does not parse: %v", t.Recurrence, err),
				})
			}
		}

		if t.Due != nil && t.Scheduled != nil && t.Due.Before(*t.Scheduled) {
			warnings = append(warnings, Warning{
				TaskTitle: t.Title,
				Field:     "due",
				Reason:    "due date is before the scheduled date",
			})
		}

		if t.TimeEstimate < 0 {
			warnings = append(warnings, Warning{
				TaskTitle: t.Title,
				Field:     "time_estimate",
				Reason:    "negative time estimate",
			})
		}
	}

	return warnings
}
