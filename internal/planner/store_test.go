package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/nhle/daily-planner/internal/model"
)

// newTestStore returns a store with deterministic ids and a fixed clock.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	n := 0
	return New("user-1",
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithClock(func() time.Time {
			return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		}),
	)
}

func task(id, date string) model.Task {
	return model.Task{
		ID:            id,
		Title:         "task " + id,
		ScheduledDate: date,
		Status:        model.TaskStatusPending,
		Source:        model.TaskSourceManual,
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddTaskAppendsPendingManual(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{task("a", "2024-01-01")})

	got := s.AddTask(model.TaskInput{Title: "Write cover letter", ScheduledDate: "2024-01-02", Notes: "short"})

	if got.ID != "id-1" {
		t.Fatalf("expected generated id id-1, got %q", got.ID)
	}
	if got.Status != model.TaskStatusPending || got.Source != model.TaskSourceManual {
		t.Fatalf("expected pending/manual, got %s/%s", got.Status, got.Source)
	}
	if got.Notes != "short" {
		t.Fatalf("expected notes to be kept, got %q", got.Notes)
	}
	if want := []string{"a", "id-1"}; !equalIDs(ids(s.Tasks()), want) {
		t.Fatalf("expected order %v, got %v", want, ids(s.Tasks()))
	}
	if s.IsConfirmed(got.ID) {
		t.Fatal("locally added task must not be confirmed")
	}
}

func TestToggleTaskStatus(t *testing.T) {
	tests := []struct {
		name string
		from model.TaskStatus
		want model.TaskStatus
	}{
		{"pending to complete", model.TaskStatusPending, model.TaskStatusComplete},
		{"complete to pending", model.TaskStatusComplete, model.TaskStatusPending},
		{"deferred to complete", model.TaskStatusDeferred, model.TaskStatusComplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			tk := task("a", "2024-01-01")
			tk.Status = tt.from
			s.SetTasks([]model.Task{tk})

			s.ToggleTaskStatus("a")

			got, _ := s.Task("a")
			if got.Status != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got.Status)
			}
		})
	}
}

func TestToggleTwiceRestoresStatus(t *testing.T) {
	for _, status := range []model.TaskStatus{model.TaskStatusPending, model.TaskStatusComplete} {
		s := newTestStore(t)
		tk := task("a", "2024-01-01")
		tk.Status = status
		s.SetTasks([]model.Task{tk})

		s.ToggleTaskStatus("a")
		s.ToggleTaskStatus("a")

		got, _ := s.Task("a")
		if got.Status != status {
			t.Fatalf("expected %s after two toggles, got %s", status, got.Status)
		}
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{task("a", "2024-01-01")})
	before := s.Tasks()

	s.ToggleTaskStatus("missing")

	after := s.Tasks()
	if len(after) != 1 || after[0] != before[0] {
		t.Fatalf("expected store unchanged, got %+v", after)
	}
}

func TestAddToggleDeleteByDate(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{task("other", "2024-01-05")})

	added := s.AddTask(model.TaskInput{Title: "Prep portfolio", ScheduledDate: "2024-01-01"})
	s.ToggleTaskStatus(added.ID)

	day := s.TasksForDate("2024-01-01")
	if len(day) != 1 || day[0].Status != model.TaskStatusComplete {
		t.Fatalf("expected one complete task, got %+v", day)
	}

	if !s.RemoveTask(added.ID) {
		t.Fatal("expected RemoveTask to find the task")
	}
	if n := len(s.TasksForDate("2024-01-01")); n != 0 {
		t.Fatalf("expected no tasks for date, got %d", n)
	}
	if n := len(s.Tasks()); n != 1 {
		t.Fatalf("expected other task to survive, got %d tasks", n)
	}
}

func TestUpdateProfileMergesProvidedFields(t *testing.T) {
	s := newTestStore(t)
	s.UpdateProfile(model.ProfileUpdate{
		FullName: model.StringPtr("Ada"),
		Timezone: model.StringPtr("Europe/London"),
	})

	s.UpdateProfile(model.ProfileUpdate{FullName: model.StringPtr("Ada L.")})

	p := s.Profile()
	if p.FullName != "Ada L." {
		t.Fatalf("expected full name to update, got %q", p.FullName)
	}
	if p.Timezone != "Europe/London" {
		t.Fatalf("expected timezone to be untouched, got %q", p.Timezone)
	}
}

func TestUpdateGoalReplacesWholesale(t *testing.T) {
	s := newTestStore(t)
	s.UpdateGoal(model.Goal{PrimaryGoal: "first", Industry: "fintech"})
	s.UpdateGoal(model.Goal{PrimaryGoal: "second"})

	g := s.Goal()
	if g.PrimaryGoal != "second" || g.Industry != "" {
		t.Fatalf("expected full replacement, got %+v", g)
	}
}

func TestUpdateAvailabilityUsesToday(t *testing.T) {
	s := newTestStore(t)
	a := s.UpdateAvailability(900)

	if a.Date != "2024-01-01" {
		t.Fatalf("expected today's date, got %q", a.Date)
	}
	if a.MinutesAvailable != 900 {
		t.Fatalf("store must not clamp minutes, got %d", a.MinutesAvailable)
	}
	got, ok := s.Availability()
	if !ok || got != a {
		t.Fatalf("expected stored availability %+v, got %+v", a, got)
	}
}

func TestReorderTasksDropsUnknownIDs(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{task("a", "d"), task("b", "d"), task("c", "d")})

	s.ReorderTasks([]string{"c", "ghost", "a", "b", "a"})

	if want := []string{"c", "a", "b"}; !equalIDs(ids(s.Tasks()), want) {
		t.Fatalf("expected %v, got %v", want, ids(s.Tasks()))
	}
}

func TestMoveTaskWithinDate(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{
		task("a", "2024-01-01"),
		task("x", "2024-01-02"),
		task("b", "2024-01-01"),
		task("c", "2024-01-01"),
	})

	if !s.MoveTask("2024-01-01", "c", -1) {
		t.Fatal("expected move to succeed")
	}
	if want := []string{"a", "x", "c", "b"}; !equalIDs(ids(s.Tasks()), want) {
		t.Fatalf("expected %v, got %v", want, ids(s.Tasks()))
	}

	if s.MoveTask("2024-01-01", "a", -1) {
		t.Fatal("expected moving the first task up to be rejected")
	}
	if s.MoveTask("2024-01-01", "x", 1) {
		t.Fatal("expected moving a task from another date to be rejected")
	}
}

func TestPatchAndReplaceTask(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{task("a", "d"), task("b", "d")})

	if !s.PatchTaskStatus("b", model.TaskStatusDeferred) {
		t.Fatal("expected patch to find b")
	}
	if s.PatchTaskStatus("zzz", model.TaskStatusComplete) {
		t.Fatal("expected patch of unknown id to report false")
	}

	updated := task("a", "e")
	updated.Title = "renamed"
	s.ReplaceTask(updated)

	got := s.Tasks()
	if got[0].Title != "renamed" || got[0].ScheduledDate != "e" {
		t.Fatalf("expected a replaced in place, got %+v", got[0])
	}
	if got[1].Status != model.TaskStatusDeferred {
		t.Fatalf("expected b deferred, got %s", got[1].Status)
	}
}

func TestBriefSumsEstimates(t *testing.T) {
	s := newTestStore(t)
	s.BootstrapDemo("2024-01-01")

	b := s.Brief("2024-01-01")
	if b.TotalTaskMinutes != 75 {
		t.Fatalf("expected 75 minutes, got %d", b.TotalTaskMinutes)
	}
	if len(b.Tasks) != 2 {
		t.Fatalf("expected two tasks today, got %d", len(b.Tasks))
	}

	s.SetRecommendations(model.RecommendationSet{
		ScheduledDate: "2024-01-01",
		Todos:         []model.RecommendationTodo{{Title: "Skill drill"}},
	})
	if got := s.Brief("2024-01-01").Suggestions; len(got) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(got))
	}
	if got := s.Brief("2024-01-02").Suggestions; len(got) != 0 {
		t.Fatalf("expected no suggestions for another date, got %d", len(got))
	}

	remaining, ok := s.RemainingMinutes("2024-01-01")
	if !ok || remaining != 240-75 {
		t.Fatalf("expected %d remaining, got %d (ok=%v)", 240-75, remaining, ok)
	}
}

func TestAppendChatIsOrdered(t *testing.T) {
	s := newTestStore(t)
	s.AppendChat(model.ChatRoleUser, "hi")
	s.AppendChat(model.ChatRoleAssistant, "hello")

	chat := s.Chat()
	if len(chat) != 2 || chat[0].Role != model.ChatRoleUser || chat[1].Content != "hello" {
		t.Fatalf("unexpected transcript %+v", chat)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := newTestStore(t)
	s.BootstrapDemo("2024-01-01")
	s.AppendTask(task("srv", "2024-01-01"))
	s.AppendChat(model.ChatRoleUser, "hi")

	snap := s.Snapshot()

	restored := New("")
	restored.Restore(snap)

	if restored.UserID() != "user-1" {
		t.Fatalf("expected user id from snapshot, got %q", restored.UserID())
	}
	if !equalIDs(ids(restored.Tasks()), ids(s.Tasks())) {
		t.Fatalf("expected tasks %v, got %v", ids(s.Tasks()), ids(restored.Tasks()))
	}
	if !restored.IsConfirmed("srv") || restored.IsConfirmed("t-1") {
		t.Fatal("expected confirmation state to survive restore")
	}
	if restored.Goal().PrimaryGoal != s.Goal().PrimaryGoal {
		t.Fatal("expected goal to survive restore")
	}
	if len(restored.Chat()) != 1 {
		t.Fatal("expected chat to survive restore")
	}
}

func TestRestoreCopiesRecommendations(t *testing.T) {
	snap := Snapshot{
		Recommendations: &model.RecommendationSet{
			ScheduledDate: "2024-01-01",
			Todos:         []model.RecommendationTodo{{Title: "Skill drill"}},
		},
	}

	s := New("")
	s.Restore(snap)
	snap.Recommendations.Todos[0].Title = "changed"

	set, ok := s.Recommendations()
	if !ok || set.Todos[0].Title != "Skill drill" {
		t.Fatalf("expected restored todos to be independent, got %+v", set.Todos)
	}
}

func TestAppendTaskReplacesSameID(t *testing.T) {
	s := newTestStore(t)
	s.ReconcileFetched("2024-01-01", []model.Task{task("srv", "2024-01-01")})

	echoed := task("srv", "2024-01-01")
	echoed.Title = "from create"
	s.AppendTask(echoed)

	if got := ids(s.Tasks()); !equalIDs(got, []string{"srv"}) {
		t.Fatalf("expected a single srv task, got %v", got)
	}
	if got, _ := s.Task("srv"); got.Title != "from create" {
		t.Fatalf("expected replaced title, got %q", got.Title)
	}
}
