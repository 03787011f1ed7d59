package commands

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/internal/config"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
	"github.com/thisisthedave/tasknotes-sub010/internal/vault"
)

// setupEnv points the commands at a scratch vault and an absent config
// file so defaults apply.
func setupEnv(t *testing.T) *vault.Store {
	t.Helper()
	dir := t.TempDir()
	SetVaultOverride(dir)
	config.SetOverridePath(filepath.Join(t.TempDir(), "config.toml"))
	t.Cleanup(func() {
		SetVaultOverride("")
		config.SetOverridePath("")
	})
	store, err := vault.Open(dir)
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	return store
}

func run(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	return cmd.Execute()
}

func TestAddCreatesTask(t *testing.T) {
	store := setupEnv(t)

	err := run(t, NewAddCmd(), "Buy", "groceries",
		"--context", "errands", "--tag", "shopping",
		"--project", "Household", "--due", "2026-09-15")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	tasks, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Title != "Buy groceries" {
		t.Errorf("title = %q", task.Title)
	}
	if task.Status != "open" {
		t.Errorf("status = %q, want default open", task.Status)
	}
	if len(task.Projects) != 1 || task.Projects[0] != "[[Household]]" {
		t.Errorf("projects = %v", task.Projects)
	}
	if task.Due == nil || task.Due.Format("2006-01-02") != "2026-09-15" {
		t.Errorf("due = %v", task.Due)
	}
}

func TestAddRejectsBadRecurrence(t *testing.T) {
	setupEnv(t)
	if err := run(t, NewAddCmd(), "Broken", "--repeat", "FREQ=SOMETIMES"); err == nil {
		t.Error("expected error for malformed rule")
	}
}

func TestEditUpdatesProperty(t *testing.T) {
	store := setupEnv(t)
	task := &model.Task{Title: "Draft report", Status: "open"}
	if err := store.Create(task); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := run(t, NewEditCmd(), task.UID, "status", "in-progress"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, err := store.Get(task.UID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != "in-progress" {
		t.Errorf("status = %q", got.Status)
	}
}

func TestEditMissingTask(t *testing.T) {
	setupEnv(t)
	if err := run(t, NewEditCmd(), "no-such-uid", "status", "done"); err == nil {
		t.Error("expected not-found error")
	}
}

func TestDoneCompletesTask(t *testing.T) {
	store := setupEnv(t)
	task := &model.Task{Title: "One off", Status: "open"}
	if err := store.Create(task); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := run(t, NewDoneCmd(), task.UID); err != nil {
		t.Fatalf("done: %v", err)
	}
	got, err := store.Get(task.UID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != "done" {
		t.Errorf("status = %q, want done", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("expected completion stamp")
	}
}

func TestDeleteRemovesTask(t *testing.T) {
	store := setupEnv(t)
	task := &model.Task{Title: "Ephemeral", Status: "open"}
	if err := store.Create(task); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := run(t, NewDeleteCmd(), task.UID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(task.UID); err == nil {
		t.Error("task should be gone")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	store := setupEnv(t)
	task := &model.Task{Title: "Travel prep", Status: "open", Contexts: []string{"home"}}
	if err := store.Create(task); err != nil {
		t.Fatalf("create: %v", err)
	}

	icsPath := filepath.Join(t.TempDir(), "out.ics")
	if err := run(t, NewExportCmd(), icsPath, "--quiet"); err != nil {
		t.Fatalf("export: %v", err)
	}

	// Import into a fresh vault.
	fresh := setupEnv(t)
	if err := run(t, NewImportCmd(), icsPath, "--quiet"); err != nil {
		t.Fatalf("import: %v", err)
	}
	tasks, err := fresh.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Travel prep" {
		t.Errorf("round trip lost the task: %+v", tasks)
	}
}

func TestImportSkipDuplicates(t *testing.T) {
	store := setupEnv(t)
	task := &model.Task{Title: "Already here", Status: "open"}
	if err := store.Create(task); err != nil {
		t.Fatalf("create: %v", err)
	}

	icsPath := filepath.Join(t.TempDir(), "dup.ics")
	if err := run(t, NewExportCmd(), icsPath, "--quiet"); err != nil {
		t.Fatalf("export: %v", err)
	}

	if err := run(t, NewImportCmd(), icsPath, "--quiet", "--skip-duplicates"); err != nil {
		t.Fatalf("import: %v", err)
	}
	tasks, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("duplicate was imported anyway, %d tasks", len(tasks))
	}
}

func TestExportCSVByExtension(t *testing.T) {
	store := setupEnv(t)
	if err := store.Create(&model.Task{Title: "Spreadsheet bound", Status: "open"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	csvPath := filepath.Join(t.TempDir(), "tasks.csv")
	if err := run(t, NewExportCmd(), csvPath, "--quiet"); err != nil {
		t.Fatalf("export: %v", err)
	}

	fresh := setupEnv(t)
	if err := run(t, NewImportCmd(), csvPath, "--quiet"); err != nil {
		t.Fatalf("import: %v", err)
	}
	tasks, err := fresh.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Spreadsheet bound" {
		t.Errorf("csv round trip lost the task: %+v", tasks)
	}
}

func TestCheckFlagsBadStatus(t *testing.T) {
	store := setupEnv(t)
	if err := store.Create(&model.Task{Title: "Drifted", Status: "someday"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := run(t, NewCheckCmd()); err == nil {
		t.Error("expected check to fail on unknown status")
	}
}
