package vault

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	taskerr "github.com/thisisthedave/tasknotes-sub010/internal/errors"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

const (
	frontmatterDelim = "---"
	dateLayout       = "2006-01-02"
	stampLayout      = time.RFC3339
)

// frontmatter is the YAML shape stored at the top of each task file.
type frontmatter struct {
	UID          string   `yaml:"uid"`
	Title        string   `yaml:"title"`
	Status       string   `yaml:"status,omitempty"`
	Priority     string   `yaml:"priority,omitempty"`
	Due          string   `yaml:"due,omitempty"`
	Scheduled    string   `yaml:"scheduled,omitempty"`
	Contexts     []string `yaml:"contexts,omitempty"`
	Tags         []string `yaml:"tags,omitempty"`
	Projects     []string `yaml:"projects,omitempty"`
	Recurrence   string   `yaml:"recurrence,omitempty"`
	TimeEstimate int      `yaml:"time_estimate,omitempty"`
	CompletedAt  string   `yaml:"completed_at,omitempty"`
	CreatedAt    string   `yaml:"created_at,omitempty"`
	ModifiedAt   string   `yaml:"modified_at,omitempty"`
}

// EncodeTask renders a task as a markdown document with YAML frontmatter.
// Body is free-form note text kept verbatim below the frontmatter block.
func EncodeTask(t *model.Task, body string) ([]byte, error) {
	fm := frontmatter{
		UID:          t.UID,
		Title:        t.Title,
		Status:       t.Status,
		Priority:     t.Priority,
		Contexts:     t.Contexts,
		Tags:         t.Tags,
		Projects:     t.Projects,
		Recurrence:   t.Recurrence,
		TimeEstimate: t.TimeEstimate,
	}
	if t.Due != nil {
		fm.Due = t.Due.Format(dateLayout)
	}
	if t.Scheduled != nil {
		fm.Scheduled = t.Scheduled.Format(dateLayout)
	}
	if t.CompletedAt != nil {
		fm.CompletedAt = t.CompletedAt.Format(stampLayout)
	}
	if !t.CreatedAt.IsZero() {
		fm.CreatedAt = t.CreatedAt.Format(stampLayout)
	}
	if !t.ModifiedAt.IsZero() {
		fm.ModifiedAt = t.ModifiedAt.Format(stampLayout)
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelim + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&fm); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	buf.WriteString(frontmatterDelim + "\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// DecodeTask parses a markdown document with YAML frontmatter back into a
// task and its note body. file is used for error reporting only.
func DecodeTask(data []byte, file string) (*model.Task, string, error) {
	text := string(data)
	if !strings.HasPrefix(text, frontmatterDelim+"\n") {
		return nil, "", &taskerr.ParseError{File: file, Line: 1, Message: "missing frontmatter block"}
	}
	rest := text[len(frontmatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end < 0 {
		return nil, "", &taskerr.ParseError{File: file, Message: "unterminated frontmatter block"}
	}
	yamlPart := rest[:end+1]
	body := rest[end+1+len(frontmatterDelim):]
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\n")

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(yamlPart), &fm); err != nil {
		return nil, "", &taskerr.ParseError{File: file, Message: "invalid frontmatter YAML", Err: err}
	}

	t := &model.Task{
		UID:          fm.UID,
		Title:        fm.Title,
		Status:       fm.Status,
		Priority:     fm.Priority,
		Contexts:     fm.Contexts,
		Tags:         fm.Tags,
		Projects:     fm.Projects,
		Recurrence:   fm.Recurrence,
		TimeEstimate: fm.TimeEstimate,
	}

	var err error
	if t.Due, err = parseDate(fm.Due, file, "due"); err != nil {
		return nil, "", err
	}
	if t.Scheduled, err = parseDate(fm.Scheduled, file, "scheduled"); err != nil {
		return nil, "", err
	}
	if t.CompletedAt, err = parseStamp(fm.CompletedAt, file, "completed_at"); err != nil {
		return nil, "", err
	}
	if fm.CreatedAt != "" {
		ts, err := parseStamp(fm.CreatedAt, file, "created_at")
		if err != nil {
			return nil, "", err
		}
		t.CreatedAt = *ts
	}
	if fm.ModifiedAt != "" {
		ts, err := parseStamp(fm.ModifiedAt, file, "modified_at")
		if err != nil {
			return nil, "", err
		}
		t.ModifiedAt = *ts
	}

	return t, body, nil
}

func parseDate(s, file, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, &taskerr.ParseError{File: file, Message: fmt.Sprintf("invalid %s date %q", field, s), Err: err}
	}
	return &d, nil
}

func parseStamp(s, file, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	ts, err := time.Parse(stampLayout, s)
	if err != nil {
		return nil, &taskerr.ParseError{File: file, Message: fmt.Sprintf("invalid %s timestamp %q", field, s), Err: err}
	}
	return &ts, nil
}
