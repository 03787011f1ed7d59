// Package ics exchanges vault tasks with other tools as iCalendar VTODO
// components.
package ics

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

// Non-standard properties carrying fields VTODO has no slot for.
const (
	propStatus   = "X-TASKNOTES-STATUS"
	propPriority = "X-TASKNOTES-PRIORITY"
	propContexts = "X-TASKNOTES-CONTEXTS"
	propProjects = "X-TASKNOTES-PROJECTS"
	propEstimate = "ESTIMATED-DURATION"
)

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteFile(ctx context.Context, tasks []*model.Task, filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create ICS file: %w", err)
	}
	defer f.Close()

	return w.Write(ctx, tasks, f)
}

func (w *Writer) Write(ctx context.Context, tasks []*model.Task, writer io.Writer) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//thisisthedave//tasknotes//EN")

	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		cal.Children = append(cal.Children, w.writeTodo(t))
	}

	enc := ical.NewEncoder(writer)
	return enc.Encode(cal)
}

func (w *Writer) writeTodo(t *model.Task) *ical.Component {
	todo := ical.NewComponent(ical.CompToDo)

	todo.Props.SetText("UID", t.UID)
	todo.Props.SetText("SUMMARY", t.Title)
	todo.Props.SetDateTime("DTSTAMP", time.Now().UTC())

	if t.Due != nil {
		setDate(todo.Props, "DUE", *t.Due)
	}
	if t.Scheduled != nil {
		setDate(todo.Props, "DTSTART", *t.Scheduled)
	}

	if t.CompletedAt != nil {
		todo.Props.SetText("STATUS", "COMPLETED")
		todo.Props.SetDateTime("COMPLETED", t.CompletedAt.UTC())
		todo.Props.SetText("PERCENT-COMPLETE", "100")
	} else {
		todo.Props.SetText("STATUS", "NEEDS-ACTION")
	}

	if t.Status != "" {
		todo.Props.SetText(propStatus, t.Status)
	}
	if t.Priority != "" {
		todo.Props.SetText(propPriority, t.Priority)
	}
	if len(t.Tags) > 0 {
		todo.Props.SetText("CATEGORIES", strings.Join(t.Tags, ","))
	}
	if len(t.Contexts) > 0 {
		todo.Props.SetText(propContexts, strings.Join(t.Contexts, ","))
	}
	if len(t.Projects) > 0 {
		todo.Props.SetText(propProjects, strings.Join(t.Projects, ","))
	}
	if t.Recurrence != "" {
		todo.Props.SetText("RRULE", t.Recurrence)
	}
	if t.TimeEstimate > 0 {
		todo.Props.SetText(propEstimate, formatMinutes(t.TimeEstimate))
	}
	if !t.CreatedAt.IsZero() {
		todo.Props.SetDateTime("CREATED", t.CreatedAt.UTC())
	}
	if !t.ModifiedAt.IsZero() {
		todo.Props.SetDateTime("LAST-MODIFIED", t.ModifiedAt.UTC())
	}

	return todo
}

func setDate(props ical.Props, name string, d time.Time) {
	props.SetText(name, d.Format("20060102"))
	props.Get(name).Params["VALUE"] = []string{"DATE"}
}

// formatMinutes renders a minute count as an ISO 8601 duration (PT1H30M).
func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("PT%dH%dM", h, m)
	case h > 0:
		return fmt.Sprintf("PT%dH", h)
	default:
		return fmt.Sprintf("PT%dM", m)
	}
}
