package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/planner"
	"github.com/nhle/daily-planner/internal/store"
)

// writeConfig points the CLI at a throwaway config, database and log.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()

	dir := t.TempDir()
	cfg := fmt.Sprintf(`storage:
  db_path: %s
log:
  file: %s
  level: debug
display:
  demo_data: false
%s`, filepath.Join(dir, "data", "planner.db"), filepath.Join(dir, "planner.log"), extra)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	prevPath, prevLookup := configPath, lookupSecret
	configPath = path
	lookupSecret = func(string) (string, bool, error) { return "", false, nil }
	t.Cleanup(func() {
		configPath, lookupSecret = prevPath, prevLookup
	})

	return filepath.Join(dir, "data", "planner.db")
}

func seed(t *testing.T, dbPath string, tasks ...model.Task) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		t.Fatal(err)
	}
	db, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer db.Close()

	p := planner.New("")
	p.SetTasks(tasks)
	if err := db.SaveSnapshot(context.Background(), p.Snapshot()); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
}

func TestTasksOfflineListsStoredTasks(t *testing.T) {
	dbPath := writeConfig(t, "")
	seed(t, dbPath,
		model.Task{ID: "a", Title: "Draft case study", ScheduledDate: "2024-03-05", EstimatedMinutes: model.IntPtr(45), Status: model.TaskStatusComplete, Source: model.TaskSourceManual},
		model.Task{ID: "b", Title: "Other day", ScheduledDate: "2024-03-06", Status: model.TaskStatusPending, Source: model.TaskSourceManual},
	)

	var out bytes.Buffer
	tasksCmd.SetOut(&out)
	t.Cleanup(func() { tasksCmd.SetOut(nil) })
	if err := tasksCmd.Flags().Set("date", "2024-03-05"); err != nil {
		t.Fatal(err)
	}

	if err := runTasks(tasksCmd, nil); err != nil {
		t.Fatalf("runTasks: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "[x] Draft case study (45 min)") {
		t.Fatalf("expected completed task in output, got:\n%s", got)
	}
	if strings.Contains(got, "Other day") {
		t.Fatalf("expected only 2024-03-05 tasks, got:\n%s", got)
	}
}

func TestUploadRequiresUser(t *testing.T) {
	writeConfig(t, "")

	err := runUpload(uploadCmd, []string{"plan.pdf"})
	if err == nil || !strings.Contains(err.Error(), "no user configured") {
		t.Fatalf("expected missing user error, got %v", err)
	}
}

func TestDateFlagRejectsBadDates(t *testing.T) {
	writeConfig(t, "")
	if err := briefCmd.Flags().Set("date", "03/05/2024"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { briefCmd.Flags().Set("date", "") })

	if err := runBrief(briefCmd, nil); err == nil {
		t.Fatal("expected invalid date error")
	}
}

func TestApplyUserConfigOverridesProfile(t *testing.T) {
	p := planner.New("")
	p.SetEmail("old@example.com")

	applyUserConfig(p, model.UserConfig{ID: "u-1", Email: "new@example.com", Timezone: "Europe/Berlin"})

	if p.UserID() != "u-1" {
		t.Fatalf("expected user id u-1, got %q", p.UserID())
	}
	prof := p.Profile()
	if prof.Email != "new@example.com" || prof.Timezone != "Europe/Berlin" {
		t.Fatalf("unexpected profile %+v", prof)
	}
}

func TestSetupAppliesAPITimeoutToGateway(t *testing.T) {
	writeConfig(t, "api:\n  timeout_sec: 120\n")

	e, err := setup(nil)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer e.close()

	if got := e.gateway.Timeout(); got != 2*time.Minute {
		t.Fatalf("expected 2m gateway timeout, got %v", got)
	}
}
