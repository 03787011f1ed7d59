package ics

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	dt := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &dt
}

func TestWriteParseRoundTrip(t *testing.T) {
	completed := time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC)
	tasks := []*model.Task{
		{
			UID:          "uid-1",
			Title:        "Quarterly report",
			Status:       "in-progress",
			Priority:     "high",
			Due:          datePtr(2025, 7, 1),
			Scheduled:    datePtr(2025, 6, 15),
			Contexts:     []string{"work", "office"},
			Tags:         []string{"quarterly", "finance"},
			Projects:     []string{"[[Reports]]"},
			Recurrence:   "FREQ=MONTHLY;BYMONTHDAY=1",
			TimeEstimate: 90,
		},
		{
			UID:         "uid-2",
			Title:       "Water plants",
			Status:      "done",
			CompletedAt: &completed,
		},
	}

	var buf bytes.Buffer
	if err := NewWriter().Write(context.Background(), tasks, &buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewParser().Parse(&buf, "roundtrip.ics")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}

	first := got[0]
	if first.UID != "uid-1" || first.Title != "Quarterly report" {
		t.Errorf("identity mismatch: %+v", first)
	}
	if first.Status != "in-progress" || first.Priority != "high" {
		t.Errorf("status/priority mismatch: %q %q", first.Status, first.Priority)
	}
	if first.Due == nil || !first.Due.Equal(*tasks[0].Due) {
		t.Errorf("due mismatch: %v", first.Due)
	}
	if first.Scheduled == nil || !first.Scheduled.Equal(*tasks[0].Scheduled) {
		t.Errorf("scheduled mismatch: %v", first.Scheduled)
	}
	if strings.Join(first.Contexts, ",") != "work,office" {
		t.Errorf("contexts mismatch: %v", first.Contexts)
	}
	if strings.Join(first.Tags, ",") != "quarterly,finance" {
		t.Errorf("tags mismatch: %v", first.Tags)
	}
	if len(first.Projects) != 1 || first.Projects[0] != "[[Reports]]" {
		t.Errorf("projects mismatch: %v", first.Projects)
	}
	if first.Recurrence != "FREQ=MONTHLY;BYMONTHDAY=1" {
		t.Errorf("recurrence mismatch: %q", first.Recurrence)
	}
	if first.TimeEstimate != 90 {
		t.Errorf("estimate mismatch: %d", first.TimeEstimate)
	}

	second := got[1]
	if second.CompletedAt == nil || !second.CompletedAt.Equal(completed) {
		t.Errorf("completed mismatch: %v", second.CompletedAt)
	}
}

func TestParseSkipsNonTodos(t *testing.T) {
	input := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
		"BEGIN:VEVENT",
		"UID:ev-1",
		"SUMMARY:A meeting",
		"DTSTAMP:20250101T000000Z",
		"DTSTART:20250101T000000Z",
		"END:VEVENT",
		"BEGIN:VTODO",
		"UID:td-1",
		"SUMMARY:A task",
		"DTSTAMP:20250101T000000Z",
		"END:VTODO",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	got, err := NewParser().Parse(strings.NewReader(input), "mixed.ics")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 1 || got[0].Title != "A task" {
		t.Fatalf("expected only the VTODO, got %+v", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{90, "PT1H30M"},
		{60, "PT1H"},
		{45, "PT45M"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.minutes); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"PT1H30M", 90, false},
		{"PT45M", 45, false},
		{"P1DT2H", 26 * 60, false},
		{"PT30S", 0, false},
		{"nonsense", 0, true},
	}
	for _, tt := range tests {
		got, err := parseISODuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseISODuration(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Encoding
	}{
		{"plain ascii", []byte("BEGIN:VCALENDAR"), EncodingUTF8},
		{"utf16 le bom", []byte{0xFF, 0xFE, 'B', 0}, EncodingUTF16LE},
		{"utf16 be bom", []byte{0xFE, 0xFF, 0, 'B'}, EncodingUTF16BE},
		{"cp1252 smart quote", []byte{'a', 0x93, 'b'}, EncodingCP1252},
		{"latin1 accent", []byte{'a', 0xE9, 'b', 0xFF}, EncodingLatin1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectEncoding(tt.data); got != tt.want {
				t.Errorf("DetectEncoding = %v, want %v", got, tt.want)
			}
		})
	}
}
