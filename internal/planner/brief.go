package planner

import "github.com/nhle/daily-planner/internal/model"

// Brief summarizes the tasks scheduled for date. Suggestions come from the
// recommendation set when it was generated for the same date.
func (s *Store) Brief(date string) model.DailyBrief {
	tasks := s.TasksForDate(date)

	total := 0
	for _, t := range tasks {
		total += t.Minutes()
	}

	brief := model.DailyBrief{
		Date:             date,
		TotalTaskMinutes: total,
		Tasks:            tasks,
	}
	if s.recommendations != nil && s.recommendations.ScheduledDate == date {
		brief.Suggestions = append(brief.Suggestions, s.recommendations.Todos...)
	}
	return brief
}

// RemainingMinutes is availability minus the estimated minutes of the
// pending tasks for date. It is negative when the plan is over budget.
func (s *Store) RemainingMinutes(date string) (int, bool) {
	if s.availability == nil {
		return 0, false
	}
	used := 0
	for _, t := range s.TasksForDate(date) {
		if !t.IsComplete() {
			used += t.Minutes()
		}
	}
	return s.availability.MinutesAvailable - used, true
}
