package vault

import (
	"time"

	taskerr "github.com/thisisthedave/tasknotes-sub010/internal/errors"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
	"github.com/thisisthedave/tasknotes-sub010/internal/recurrence"
)

// Complete finishes a task. A recurring task rolls forward: its due date
// moves to the next occurrence of the rule, as a calendar day in loc, and
// it stays open. A one-off task gets doneStatus and a completion stamp.
// A nil loc means UTC. Returns the updated task.
func (s *Store) Complete(uid, doneStatus string, loc *time.Location) (*model.Task, error) {
	if loc == nil {
		loc = time.UTC
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, body, path, err := s.locate(uid)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if t.IsRecurring() {
		anchor := now
		if t.Due != nil && t.Due.After(now) {
			anchor = *t.Due
		}
		next, err := recurrence.NextAfter(t.Recurrence, anchor)
		if err != nil {
			return nil, &taskerr.ValidationError{Field: "recurrence", Message: err.Error(), Err: err}
		}
		n := next.In(loc)
		day := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
		t.Due = &day
	} else {
		t.Status = doneStatus
		t.CompletedAt = &now
	}

	t.ModifiedAt = now
	if err := s.replace(t, body, path); err != nil {
		return nil, err
	}
	return t, nil
}
