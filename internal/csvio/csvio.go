// Package csvio reads and writes tasks as flat CSV, one row per task.
// Lossier than the iCalendar codec: notes bodies are not carried.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thisisthedave/tasknotes-sub010/internal/ics"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

var header = []string{
	"UID", "TITLE", "STATUS", "PRIORITY", "DUE", "SCHEDULED",
	"CONTEXTS", "TAGS", "PROJECTS", "RECURRENCE", "ESTIMATE_MINUTES", "COMPLETED_AT",
}

const listSep = ";"

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) ParseFile(filePath string) ([]*model.Task, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	return p.Parse(f, filePath)
}

func (p *Parser) Parse(r io.Reader, sourcePath string) ([]*model.Task, error) {
	tr, _, err := ics.TranscodeToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("charset detection failed: %w", err)
	}
	csvReader := csv.NewReader(tr)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	head, err := csvReader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range head {
		colMap[strings.ToUpper(strings.TrimSpace(col))] = i
	}

	var tasks []*model.Task
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		tasks = append(tasks, parseRow(row, colMap))
	}
	return tasks, nil
}

func parseRow(row []string, colMap map[string]int) *model.Task {
	get := func(col string) string {
		idx, ok := colMap[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	t := &model.Task{
		UID:        get("UID"),
		Title:      get("TITLE"),
		Status:     get("STATUS"),
		Priority:   get("PRIORITY"),
		Recurrence: get("RECURRENCE"),
		Contexts:   splitField(get("CONTEXTS")),
		Tags:       splitField(get("TAGS")),
		Projects:   splitField(get("PROJECTS")),
	}

	if v := get("DUE"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			t.Due = &d
		}
	}
	if v := get("SCHEDULED"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			t.Scheduled = &d
		}
	}
	if v := get("ESTIMATE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			t.TimeEstimate = n
		}
	}
	if v := get("COMPLETED_AT"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			t.CompletedAt = &ts
		}
	}
	return t
}

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteFile(tasks []*model.Task, filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV: %w", err)
	}
	defer f.Close()

	return w.Write(tasks, f)
}

func (w *Writer) Write(tasks []*model.Task, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := csvWriter.Write(taskRow(t)); err != nil {
			return err
		}
	}
	return csvWriter.Error()
}

func taskRow(t *model.Task) []string {
	row := make([]string, len(header))
	row[0] = t.UID
	row[1] = t.Title
	row[2] = t.Status
	row[3] = t.Priority
	if t.Due != nil {
		row[4] = t.Due.Format("2006-01-02")
	}
	if t.Scheduled != nil {
		row[5] = t.Scheduled.Format("2006-01-02")
	}
	row[6] = strings.Join(t.Contexts, listSep)
	row[7] = strings.Join(t.Tags, listSep)
	row[8] = strings.Join(t.Projects, listSep)
	row[9] = t.Recurrence
	if t.TimeEstimate > 0 {
		row[10] = strconv.Itoa(t.TimeEstimate)
	}
	if t.CompletedAt != nil {
		row[11] = t.CompletedAt.UTC().Format(time.RFC3339)
	}
	return row
}

func splitField(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, listSep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
