// Package vault stores tasks as markdown files with YAML frontmatter, one
// file per task, in a flat directory. It also serves as the suggestion
// corpus source: known contexts and tags are whatever the stored tasks use.
package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	taskerr "github.com/thisisthedave/tasknotes-sub010/internal/errors"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

type Store struct {
	dir string
	mu  sync.RWMutex
}

// Open creates the vault directory if needed and returns a store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the vault directory path.
func (s *Store) Dir() string { return s.dir }

// Create validates, stamps, and writes a new task. A missing UID is
// assigned; created/modified stamps are set.
func (s *Store) Create(t *model.Task) error {
	if err := t.Validate(); err != nil {
		return &taskerr.ValidationError{Field: "task", Message: err.Error(), Err: err}
	}
	if t.UID == "" {
		t.UID = uuid.New().String()
	}
	now := time.Now()
	t.CreatedAt = now
	t.ModifiedAt = now
	t.Projects = FormatLinks(t.Projects)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.write(t, "")
	return err
}

// Save rewrites an existing task, bumping its modified stamp.
func (s *Store) Save(t *model.Task) error {
	if err := t.Validate(); err != nil {
		return &taskerr.ValidationError{Field: "task", Message: err.Error(), Err: err}
	}
	t.ModifiedAt = time.Now()
	t.Projects = FormatLinks(t.Projects)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, body, path, err := s.locate(t.UID)
	if err != nil {
		return err
	}
	return s.replace(t, body, path)
}

// Get loads a task by UID.
func (s *Store) Get(uid string) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, _, _, err := s.locate(uid)
	return t, err
}

// List loads every task in the vault, sorted by creation time then title.
// Files that fail to parse are skipped.
func (s *Store) List() ([]*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault directory: %w", err)
	}

	var tasks []*model.Task
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		t, _, err := DecodeTask(data, e.Name())
		if err != nil {
			continue
		}
		tasks = append(tasks, t)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].Title < tasks[j].Title
	})
	return tasks, nil
}

// Delete removes a task file by UID.
func (s *Store) Delete(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _, path, err := s.locate(uid)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// UpdateProperty edits a single field of a stored task: the path used when a
// value (say, a due date) is changed in isolation rather than through the
// full form. Recognized properties: title, status, priority, due, scheduled,
// recurrence, estimate, contexts, tags, projects.
func (s *Store) UpdateProperty(uid, property, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, body, path, err := s.locate(uid)
	if err != nil {
		return err
	}

	switch property {
	case "title":
		t.Title = value
	case "status":
		t.Status = value
	case "priority":
		t.Priority = value
	case "due":
		d, err := parseOptionalDate(value)
		if err != nil {
			return &taskerr.ValidationError{Field: "due", Message: err.Error(), Err: err}
		}
		t.Due = d
	case "scheduled":
		d, err := parseOptionalDate(value)
		if err != nil {
			return &taskerr.ValidationError{Field: "scheduled", Message: err.Error(), Err: err}
		}
		t.Scheduled = d
	case "recurrence":
		t.Recurrence = value
	case "estimate":
		n, err := parseEstimate(value)
		if err != nil {
			return &taskerr.ValidationError{Field: "estimate", Message: err.Error(), Err: err}
		}
		t.TimeEstimate = n
	case "contexts":
		t.Contexts = splitList(value)
	case "tags":
		t.Tags = splitList(value)
	case "projects":
		t.Projects = FormatLinks(splitList(value))
	default:
		return &taskerr.ValidationError{Field: property, Message: "unknown property"}
	}

	if err := t.Validate(); err != nil {
		return &taskerr.ValidationError{Field: property, Message: err.Error(), Err: err}
	}

	t.ModifiedAt = time.Now()
	return s.replace(t, body, path)
}

// Contexts implements suggest.Source: every distinct context used by stored
// tasks, first-seen order, case-insensitive de-dup.
func (s *Store) Contexts(ctx context.Context) ([]string, error) {
	return s.collect(ctx, func(t *model.Task) []string { return t.Contexts })
}

// Tags implements suggest.Source.
func (s *Store) Tags(ctx context.Context) ([]string, error) {
	return s.collect(ctx, func(t *model.Task) []string { return t.Tags })
}

// ProjectNotes returns the distinct project note names referenced by tasks,
// unwrapped from their link syntax.
func (s *Store) ProjectNotes(ctx context.Context) ([]string, error) {
	return s.collect(ctx, func(t *model.Task) []string {
		names := make([]string, len(t.Projects))
		for i, p := range t.Projects {
			names[i] = ParseLink(p)
		}
		return names
	})
}

func (s *Store) collect(ctx context.Context, pick func(*model.Task) []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tasks, err := s.List()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, t := range tasks {
		for _, v := range pick(t) {
			v = strings.TrimSpace(v)
			key := strings.ToLower(v)
			if v == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}
	return out, nil
}

// write stores t under a slug derived from its title, adding a numeric
// suffix on collision, and returns the path written. Caller holds the lock.
func (s *Store) write(t *model.Task, body string) (string, error) {
	data, err := EncodeTask(t, body)
	if err != nil {
		return "", err
	}

	base := Slug(t.Title)
	name := base + ".md"
	for i := 2; ; i++ {
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, os.WriteFile(path, data, 0644)
		}
		// A file may already hold this task (same UID) — overwrite it.
		if existing, _, derr := readTaskFile(path); derr == nil && existing.UID == t.UID {
			return path, os.WriteFile(path, data, 0644)
		}
		name = fmt.Sprintf("%s-%d.md", base, i)
	}
}

// replace writes the updated task before touching the file it used to
// occupy, so a failed encode or write never loses the original. The old
// file only goes away when the task moved to a new slug.
func (s *Store) replace(t *model.Task, body, oldPath string) error {
	newPath, err := s.write(t, body)
	if err != nil {
		return err
	}
	if newPath != oldPath {
		if err := os.Remove(oldPath); err != nil {
			return fmt.Errorf("failed to remove old task file: %w", err)
		}
	}
	return nil
}

// locate finds the file holding uid. Caller holds at least a read lock.
func (s *Store) locate(uid string) (*model.Task, string, string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read vault directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		t, body, err := readTaskFile(path)
		if err != nil {
			continue
		}
		if t.UID == uid {
			return t, body, path, nil
		}
	}
	return nil, "", "", &taskerr.NotFoundError{Kind: "task", ID: uid}
}

func readTaskFile(path string) (*model.Task, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return DecodeTask(data, filepath.Base(path))
}

// Slug converts a title into a safe lowercase filename stem.
func Slug(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "task"
	}
	return out
}

func parseOptionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD, got %q", value)
	}
	return &d, nil
}

func parseEstimate(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("expected a duration like 1h30m, got %q", value)
	}
	if d < 0 {
		return 0, fmt.Errorf("estimate must not be negative")
	}
	return int(d.Minutes()), nil
}

func splitList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
