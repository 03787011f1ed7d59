package registry

import (
	"context"
	"io"

	"github.com/thisisthedave/tasknotes-sub010/internal/csvio"
	"github.com/thisisthedave/tasknotes-sub010/internal/ics"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

func init() {
	Register(&FormatEntry{
		Name:       "ics",
		Extensions: []string{".ics", ".ical", ".icalendar"},
		NewParser:  func() Parser { return ics.NewParser() },
		NewWriter:  func() Writer { return icsWriter{ics.NewWriter()} },
	})
	Register(&FormatEntry{
		Name:       "csv",
		Extensions: []string{".csv"},
		NewParser:  func() Parser { return csvio.NewParser() },
		NewWriter:  func() Writer { return csvio.NewWriter() },
	})
}

// icsWriter drops the context the iCalendar writer threads through.
type icsWriter struct {
	w *ics.Writer
}

func (w icsWriter) Write(tasks []*model.Task, writer io.Writer) error {
	return w.w.Write(context.Background(), tasks, writer)
}

func (w icsWriter) WriteFile(tasks []*model.Task, filePath string) error {
	return w.w.WriteFile(context.Background(), tasks, filePath)
}
