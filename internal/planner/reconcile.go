package planner

import "github.com/nhle/daily-planner/internal/model"

// Reconcile merges the planning service's tasks for date into current.
//
// Tasks absent from fetched are kept, in their current order, ahead of
// the fetched tasks, which follow in service order. The one exception is a
// task scheduled for date that the service had confirmed earlier and no
// longer returns: it was removed remotely and is dropped. Tasks created
// locally and not yet echoed back are never dropped.
//
// A fetched id that repeats keeps only its first occurrence. An empty
// fetch is not applied; ok is false and current is returned as is.
func Reconcile(
	current, fetched []model.Task,
	date string,
	confirmed func(id string) bool,
) (merged []model.Task, ok bool) {
	if len(fetched) == 0 {
		return current, false
	}

	serverIDs := make(map[string]struct{}, len(fetched))
	unique := make([]model.Task, 0, len(fetched))
	for _, t := range fetched {
		if _, dup := serverIDs[t.ID]; dup {
			continue
		}
		serverIDs[t.ID] = struct{}{}
		unique = append(unique, t)
	}

	merged = make([]model.Task, 0, len(current)+len(unique))
	for _, t := range current {
		if _, known := serverIDs[t.ID]; known {
			continue
		}
		if t.ScheduledDate == date && confirmed != nil && confirmed(t.ID) {
			continue
		}
		merged = append(merged, t)
	}
	merged = append(merged, unique...)

	return merged, true
}
