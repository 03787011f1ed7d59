package vault

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	taskerr "github.com/thisisthedave/tasknotes-sub010/internal/errors"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return s
}

func datePtr(y int, m time.Month, d int) *time.Time {
	dt := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &dt
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)

	task := &model.Task{
		Title:        "Write report",
		Status:       "open",
		Priority:     "high",
		Due:          datePtr(2025, 7, 1),
		Contexts:     []string{"work"},
		Tags:         []string{"quarterly"},
		Projects:     []string{"Reports", "Reports"},
		Recurrence:   "FREQ=MONTHLY;BYMONTHDAY=1",
		TimeEstimate: 90,
	}
	if err := s.Create(task); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.UID == "" {
		t.Fatal("expected UID to be assigned")
	}

	got, err := s.Get(task.UID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Write report" || got.Status != "open" || got.Priority != "high" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Due == nil || !got.Due.Equal(*task.Due) {
		t.Errorf("due date mismatch: %v", got.Due)
	}
	if got.TimeEstimate != 90 {
		t.Errorf("estimate mismatch: %d", got.TimeEstimate)
	}
	if got.Recurrence != "FREQ=MONTHLY;BYMONTHDAY=1" {
		t.Errorf("recurrence mismatch: %q", got.Recurrence)
	}
	// duplicate project refs collapse into one wiki link
	if !reflect.DeepEqual(got.Projects, []string{"[[Reports]]"}) {
		t.Errorf("projects = %v, want [[[Reports]]]", got.Projects)
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	err := s.Create(&model.Task{})
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	var ve *taskerr.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("no-such-uid")
	var nf *taskerr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestFilenameCollision(t *testing.T) {
	s := newTestStore(t)
	a := &model.Task{Title: "Same Title"}
	b := &model.Task{Title: "Same Title"}
	if err := s.Create(a); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := s.Create(b); err != nil {
		t.Fatalf("create b: %v", err)
	}

	tasks, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].UID == tasks[1].UID {
		t.Error("expected distinct UIDs")
	}
}

func TestUpdateProperty(t *testing.T) {
	s := newTestStore(t)
	task := &model.Task{Title: "Plan trip", Status: "open"}
	if err := s.Create(task); err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		property string
		value    string
		check    func(*model.Task) bool
	}{
		{"status", "done", func(x *model.Task) bool { return x.Status == "done" }},
		{"due", "2025-09-15", func(x *model.Task) bool { return x.Due != nil && x.Due.Day() == 15 }},
		{"due", "", func(x *model.Task) bool { return x.Due == nil }},
		{"estimate", "1h30m", func(x *model.Task) bool { return x.TimeEstimate == 90 }},
		{"contexts", "home, errands", func(x *model.Task) bool {
			return reflect.DeepEqual(x.Contexts, []string{"home", "errands"})
		}},
		{"projects", "Travel, [[Travel]]", func(x *model.Task) bool {
			return reflect.DeepEqual(x.Projects, []string{"[[Travel]]"})
		}},
	}
	for _, tt := range tests {
		if err := s.UpdateProperty(task.UID, tt.property, tt.value); err != nil {
			t.Fatalf("UpdateProperty(%s, %q): %v", tt.property, tt.value, err)
		}
		got, err := s.Get(task.UID)
		if err != nil {
			t.Fatalf("get after update: %v", err)
		}
		if !tt.check(got) {
			t.Errorf("property %s=%q not applied: %+v", tt.property, tt.value, got)
		}
	}

	if err := s.UpdateProperty(task.UID, "color", "blue"); err == nil {
		t.Error("expected error for unknown property")
	}
	if err := s.UpdateProperty(task.UID, "due", "tomorrow"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestSaveRenameKeepsSingleFile(t *testing.T) {
	s := newTestStore(t)
	task := &model.Task{Title: "Draft email", Status: "open"}
	if err := s.Create(task); err != nil {
		t.Fatalf("create: %v", err)
	}

	task.Title = "Send email"
	if err := s.Save(task); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get(task.UID)
	if err != nil {
		t.Fatalf("get after rename: %v", err)
	}
	if got.Title != "Send email" {
		t.Errorf("title = %q, want %q", got.Title, "Send email")
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".md") {
			files = append(files, e.Name())
		}
	}
	if len(files) != 1 || files[0] != "send-email.md" {
		t.Errorf("vault files = %v, want just send-email.md", files)
	}
}

func TestSaveUnparsableTaskKeepsOriginal(t *testing.T) {
	s := newTestStore(t)
	task := &model.Task{Title: "Keep me", Status: "open"}
	if err := s.Create(task); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A task that fails validation must not disturb the stored file.
	bad := *task
	bad.Title = ""
	if err := s.Save(&bad); err == nil {
		t.Fatal("expected validation error")
	}

	got, err := s.Get(task.UID)
	if err != nil {
		t.Fatalf("original task lost: %v", err)
	}
	if got.Title != "Keep me" {
		t.Errorf("title = %q, want %q", got.Title, "Keep me")
	}
}

func TestCorpusCollection(t *testing.T) {
	s := newTestStore(t)
	seed := []*model.Task{
		{Title: "One", Contexts: []string{"work", "office"}, Tags: []string{"urgent"}},
		{Title: "Two", Contexts: []string{"Work"}, Tags: []string{"urgent", "later"}},
		{Title: "Three", Projects: []string{"Apollo"}},
	}
	for _, task := range seed {
		if err := s.Create(task); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	ctx := context.Background()
	contexts, err := s.Contexts(ctx)
	if err != nil {
		t.Fatalf("contexts: %v", err)
	}
	// case-insensitive de-dup, first-seen spelling kept
	if !reflect.DeepEqual(contexts, []string{"work", "office"}) {
		t.Errorf("contexts = %v", contexts)
	}

	tags, err := s.Tags(ctx)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"urgent", "later"}) {
		t.Errorf("tags = %v", tags)
	}

	notes, err := s.ProjectNotes(ctx)
	if err != nil {
		t.Fatalf("project notes: %v", err)
	}
	if !reflect.DeepEqual(notes, []string{"Apollo"}) {
		t.Errorf("project notes = %v", notes)
	}
}

func TestEncodeDecodeBody(t *testing.T) {
	task := &model.Task{UID: "u1", Title: "With notes"}
	data, err := EncodeTask(task, "Some notes here.\n\nMore notes.")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, body, err := DecodeTask(data, "with-notes.md")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "With notes" {
		t.Errorf("title mismatch: %q", got.Title)
	}
	if strings.TrimSpace(body) != "Some notes here.\n\nMore notes." {
		t.Errorf("body mismatch: %q", body)
	}
}

func TestDecodeRejectsMissingFrontmatter(t *testing.T) {
	_, _, err := DecodeTask([]byte("just a note\n"), "note.md")
	var pe *taskerr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Write Report", "write-report"},
		{"  Hello,  World!  ", "hello-world"},
		{"重要", "task"},
		{"a--b", "a-b"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
