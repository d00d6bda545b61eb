package planner

import "github.com/nhle/daily-planner/internal/model"

// OnDate matches tasks scheduled for date.
func OnDate(date string) func(model.Task) bool {
	return func(t model.Task) bool { return t.ScheduledDate == date }
}

// MergeFilteredOrder applies a reorder of a filtered view back onto the
// full list. Walking tasks in order, every task that matches takes the
// next id from reordered; every other task keeps its id and position.
//
// reordered must be a permutation of the matching ids. When it is short,
// the surplus matching positions are left out of the result.
func MergeFilteredOrder(
	tasks []model.Task,
	match func(model.Task) bool,
	reordered []string,
) []string {
	out := make([]string, 0, len(tasks))
	next := 0
	for _, t := range tasks {
		if !match(t) {
			out = append(out, t.ID)
			continue
		}
		if next < len(reordered) {
			out = append(out, reordered[next])
			next++
		}
	}
	return out
}

// MoveID returns a copy of ids with the element at from moved to to,
// shifting the elements in between. Out-of-range indices return an
// unchanged copy.
func MoveID(ids []string, from, to int) []string {
	out := append([]string(nil), ids...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}

	id := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = id
	return out
}
