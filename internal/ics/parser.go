package ics

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	taskerr "github.com/thisisthedave/tasknotes-sub010/internal/errors"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) ParseFile(filePath string) ([]*model.Task, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ICS file: %w", err)
	}
	defer f.Close()

	// Exports from older tools arrive in UTF-16 or Windows-1252 often enough
	// that decoding must not assume UTF-8.
	r, _, err := TranscodeToUTF8(f)
	if err != nil {
		return nil, err
	}
	return p.Parse(r, filePath)
}

func (p *Parser) Parse(r io.Reader, sourcePath string) ([]*model.Task, error) {
	dec := ical.NewDecoder(r)

	var tasks []*model.Task
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &taskerr.ParseError{File: sourcePath, Message: "failed to decode ICS", Err: err}
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompToDo {
				continue
			}
			t, err := p.parseTodo(comp, sourcePath)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, t)
		}
	}

	return tasks, nil
}

func (p *Parser) parseTodo(comp *ical.Component, sourcePath string) (*model.Task, error) {
	t := &model.Task{}

	if uid, err := comp.Props.Text("UID"); err == nil {
		t.UID = uid
	}
	if summary, err := comp.Props.Text("SUMMARY"); err == nil {
		t.Title = summary
	}
	if t.Title == "" {
		return nil, &taskerr.ParseError{File: sourcePath, Message: "VTODO without SUMMARY"}
	}

	if due := comp.Props.Get("DUE"); due != nil {
		d, err := parseDateProp(due, sourcePath)
		if err != nil {
			return nil, err
		}
		t.Due = d
	}
	if start := comp.Props.Get("DTSTART"); start != nil {
		d, err := parseDateProp(start, sourcePath)
		if err != nil {
			return nil, err
		}
		t.Scheduled = d
	}

	if status, err := comp.Props.Text(propStatus); err == nil && status != "" {
		t.Status = status
	}
	if priority, err := comp.Props.Text(propPriority); err == nil && priority != "" {
		t.Priority = priority
	}
	if cats, err := comp.Props.Text("CATEGORIES"); err == nil && cats != "" {
		t.Tags = splitProp(cats)
	}
	if contexts, err := comp.Props.Text(propContexts); err == nil && contexts != "" {
		t.Contexts = splitProp(contexts)
	}
	if projects, err := comp.Props.Text(propProjects); err == nil && projects != "" {
		t.Projects = splitProp(projects)
	}
	if rrule := comp.Props.Get("RRULE"); rrule != nil {
		t.Recurrence = rrule.Value
	}
	if est, err := comp.Props.Text(propEstimate); err == nil && est != "" {
		minutes, err := parseISODuration(est)
		if err != nil {
			return nil, &taskerr.ParseError{File: sourcePath, Message: "invalid " + propEstimate, Err: err}
		}
		t.TimeEstimate = minutes
	}

	if completed := comp.Props.Get("COMPLETED"); completed != nil {
		ts, err := parseStampProp(completed, sourcePath)
		if err != nil {
			return nil, err
		}
		t.CompletedAt = ts
	}
	if created := comp.Props.Get("CREATED"); created != nil {
		ts, err := parseStampProp(created, sourcePath)
		if err != nil {
			return nil, err
		}
		if ts != nil {
			t.CreatedAt = *ts
		}
	}
	if modified := comp.Props.Get("LAST-MODIFIED"); modified != nil {
		ts, err := parseStampProp(modified, sourcePath)
		if err != nil {
			return nil, err
		}
		if ts != nil {
			t.ModifiedAt = *ts
		}
	}

	return t, nil
}

func parseDateProp(prop *ical.Prop, sourcePath string) (*time.Time, error) {
	value := strings.TrimSpace(prop.Value)
	for _, layout := range []string{"20060102", "20060102T150405Z", "20060102T150405"} {
		if d, err := time.Parse(layout, value); err == nil {
			day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
			return &day, nil
		}
	}
	return nil, &taskerr.ParseError{File: sourcePath, Message: fmt.Sprintf("invalid %s value %q", prop.Name, value)}
}

func parseStampProp(prop *ical.Prop, sourcePath string) (*time.Time, error) {
	value := strings.TrimSpace(prop.Value)
	for _, layout := range []string{"20060102T150405Z", "20060102T150405", "20060102"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts, nil
		}
	}
	return nil, &taskerr.ParseError{File: sourcePath, Message: fmt.Sprintf("invalid %s value %q", prop.Name, value)}
}

// parseISODuration reads the PT#H#M durations produced by formatMinutes.
func parseISODuration(s string) (int, error) {
	orig := s
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "P")
	s = strings.TrimPrefix(s, "T")

	minutes := 0
	num := 0
	haveNum := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
			haveNum = true
		case r == 'T':
			// date/time separator inside the duration
		case r == 'D':
			minutes += num * 24 * 60
			num, haveNum = 0, false
		case r == 'H':
			minutes += num * 60
			num, haveNum = 0, false
		case r == 'M':
			minutes += num
			num, haveNum = 0, false
		case r == 'S':
			num, haveNum = 0, false
		default:
			return 0, fmt.Errorf("unexpected %q in duration %q", r, orig)
		}
	}
	if haveNum {
		return 0, fmt.Errorf("trailing number in duration %q", orig)
	}
	return minutes, nil
}

func splitProp(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
