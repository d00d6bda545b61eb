package planner

import (
	"math/rand"
	"testing"

	"github.com/nhle/daily-planner/internal/model"
)

func TestMergeFilteredOrderExample(t *testing.T) {
	tasks := []model.Task{task("a", "x"), task("b", "y"), task("c", "x"), task("d", "y")}

	got := MergeFilteredOrder(tasks, OnDate("y"), []string{"d", "b"})

	if want := []string{"a", "d", "c", "b"}; !equalIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMergeFilteredOrderIdentity(t *testing.T) {
	tasks := []model.Task{task("a", "x"), task("b", "y"), task("c", "y"), task("d", "x")}

	got := MergeFilteredOrder(tasks, OnDate("y"), []string{"b", "c"})

	if !equalIDs(got, ids(tasks)) {
		t.Fatalf("expected identity reorder to keep %v, got %v", ids(tasks), got)
	}
}

func TestMergeFilteredOrderPreservesNonMatching(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dates := []string{"x", "y"}

	for round := 0; round < 200; round++ {
		n := rng.Intn(12)
		tasks := make([]model.Task, n)
		var matching, rest []string
		for i := range tasks {
			tasks[i] = task(string(rune('a'+i)), dates[rng.Intn(2)])
			if tasks[i].ScheduledDate == "y" {
				matching = append(matching, tasks[i].ID)
			} else {
				rest = append(rest, tasks[i].ID)
			}
		}
		perm := append([]string(nil), matching...)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		got := MergeFilteredOrder(tasks, OnDate("y"), perm)
		if len(got) != n {
			t.Fatalf("round %d: expected length %d, got %d", round, n, len(got))
		}

		var gotMatching, gotRest []string
		for i, id := range got {
			if tasks[i].ScheduledDate == "y" {
				gotMatching = append(gotMatching, id)
			} else {
				if id != tasks[i].ID {
					t.Fatalf("round %d: non-matching position %d moved", round, i)
				}
				gotRest = append(gotRest, id)
			}
		}
		if !equalIDs(gotMatching, perm) {
			t.Fatalf("round %d: expected matching %v, got %v", round, perm, gotMatching)
		}
		if !equalIDs(gotRest, rest) {
			t.Fatalf("round %d: expected non-matching %v, got %v", round, rest, gotRest)
		}
	}
}

func TestMergeFilteredOrderThroughStore(t *testing.T) {
	s := newTestStore(t)
	s.SetTasks([]model.Task{task("a", "x"), task("b", "y"), task("c", "x"), task("d", "y")})

	s.ReorderTasks(MergeFilteredOrder(s.Tasks(), OnDate("y"), []string{"d", "b"}))

	if want := []string{"a", "d", "c", "b"}; !equalIDs(ids(s.Tasks()), want) {
		t.Fatalf("expected %v, got %v", want, ids(s.Tasks()))
	}
}

func TestMoveID(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"down", 0, 2, []string{"b", "c", "a", "d"}},
		{"up", 3, 1, []string{"a", "d", "b", "c"}},
		{"same", 1, 1, []string{"a", "b", "c", "d"}},
		{"out of range", 0, 9, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []string{"a", "b", "c", "d"}
			got := MoveID(in, tt.from, tt.to)
			if !equalIDs(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if !equalIDs(in, []string{"a", "b", "c", "d"}) {
				t.Fatal("MoveID must not modify its input")
			}
		})
	}
}
