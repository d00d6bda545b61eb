package planner

import (
	"reflect"
	"testing"

	"github.com/nhle/daily-planner/internal/model"
)

func TestReconcileExampleScenario(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{task("a", "2024-01-01"), task("b", "2024-01-02")})

	changed := s.ReconcileFetched("2024-01-01", []model.Task{task("c", "2024-01-01")})

	if !changed {
		t.Fatal("expected non-empty fetch to apply")
	}
	if want := []string{"b", "c"}; !equalIDs(ids(s.Tasks()), want) {
		t.Fatalf("expected %v, got %v", want, ids(s.Tasks()))
	}
}

func TestReconcileKeepsOtherDates(t *testing.T) {
	s := newTestStore(t)
	d2a := task("d2a", "2024-01-02")
	d2a.Notes = "keep me"
	d2b := task("d2b", "2024-01-02")
	s.SetTasks([]model.Task{task("d1", "2024-01-01"), d2a, d2b})

	s.ReconcileFetched("2024-01-01", []model.Task{task("n1", "2024-01-01"), task("d1", "2024-01-01")})

	got := s.TasksForDate("2024-01-02")
	if !reflect.DeepEqual(got, []model.Task{d2a, d2b}) {
		t.Fatalf("expected other-date tasks unchanged, got %+v", got)
	}
}

func TestReconcileKeepsUnconfirmedLocalTasks(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{task("srv", "2024-01-01")})
	local := s.AddTask(model.TaskInput{Title: "in flight", ScheduledDate: "2024-01-01"})

	s.ReconcileFetched("2024-01-01", []model.Task{task("srv", "2024-01-01")})

	if want := []string{local.ID, "srv"}; !equalIDs(ids(s.Tasks()), want) {
		t.Fatalf("expected %v, got %v", want, ids(s.Tasks()))
	}
}

func TestReconcileEmptyFetchIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{task("a", "2024-01-01"), task("b", "2024-01-02")})
	s.AddTask(model.TaskInput{Title: "local", ScheduledDate: "2024-01-01"})
	before := s.Tasks()

	if s.ReconcileFetched("2024-01-01", nil) {
		t.Fatal("expected empty fetch to report no change")
	}
	if !reflect.DeepEqual(s.Tasks(), before) {
		t.Fatalf("expected store unchanged, got %+v", s.Tasks())
	}
}

func TestReconcileServerVersionWins(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{task("a", "2024-01-01")})

	fresh := task("a", "2024-01-01")
	fresh.Status = model.TaskStatusComplete
	s.ReconcileFetched("2024-01-01", []model.Task{fresh})

	got, _ := s.Task("a")
	if got.Status != model.TaskStatusComplete {
		t.Fatalf("expected fetched status, got %s", got.Status)
	}
	if len(s.Tasks()) != 1 {
		t.Fatalf("expected no duplicates, got %d tasks", len(s.Tasks()))
	}
}

func TestReconcilePure(t *testing.T) {
	current := []model.Task{task("a", "x"), task("b", "y")}
	fetched := []model.Task{task("c", "x")}

	merged, ok := Reconcile(current, fetched, "x", nil)

	if !ok {
		t.Fatal("expected merge")
	}
	if want := []string{"a", "b", "c"}; !equalIDs(ids(merged), want) {
		t.Fatalf("expected unconfirmed a kept: %v, got %v", want, ids(merged))
	}
}

func TestReconcileDropsRepeatedFetchedIDs(t *testing.T) {
	first := task("a", "2024-01-01")
	first.Title = "first"
	second := task("a", "2024-01-01")
	second.Title = "second"

	merged, ok := Reconcile(nil, []model.Task{first, task("b", "2024-01-01"), second}, "2024-01-01", nil)

	if !ok {
		t.Fatal("expected fetch to apply")
	}
	if want := []string{"a", "b"}; !equalIDs(ids(merged), want) {
		t.Fatalf("expected %v, got %v", want, ids(merged))
	}
	if merged[0].Title != "first" {
		t.Fatalf("expected first occurrence kept, got %q", merged[0].Title)
	}
}
