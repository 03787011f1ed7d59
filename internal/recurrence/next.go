package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// NextAfter computes the first occurrence of rule strictly after the given
// time. Unlike Summarize, a malformed rule is an error here: advancing a
// completed recurring task needs a rule that actually parses.
func NextAfter(rule string, after time.Time) (time.Time, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return time.Time{}, fmt.Errorf("empty recurrence rule")
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	opt.Dtstart = after.Truncate(time.Second)

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}

	next := r.After(after, false)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("recurrence rule %q has no occurrence after %s", rule, after.Format("2006-01-02"))
	}
	return next, nil
}

// Validate reports whether rule parses as an RRULE. Empty rules are valid:
// they mean the task does not recur.
func Validate(rule string) error {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return nil
	}
	if _, err := rrule.StrToROption(rule); err != nil {
		return fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	return nil
}
