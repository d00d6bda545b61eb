package planner

import "github.com/nhle/daily-planner/internal/model"

// Snapshot is a point-in-time copy of store state for persistence.
type Snapshot struct {
	UserID          string
	Profile         model.Profile
	Goal            model.Goal
	Tasks           []model.Task
	Confirmed       map[string]bool
	Availability    *model.Availability
	Recommendations *model.RecommendationSet
	Chat            []model.ChatMessage
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		UserID:    s.userID,
		Profile:   s.profile,
		Goal:      s.goal,
		Tasks:     s.Tasks(),
		Confirmed: make(map[string]bool, len(s.confirmed)),
		Chat:      s.Chat(),
	}
	for id, ok := range s.confirmed {
		if ok {
			snap.Confirmed[id] = true
		}
	}
	if s.availability != nil {
		a := *s.availability
		snap.Availability = &a
	}
	if s.recommendations != nil {
		r := *s.recommendations
		r.Todos = append([]model.RecommendationTodo(nil), r.Todos...)
		snap.Recommendations = &r
	}
	return snap
}

// Restore replaces the store state with snap. The user id is only taken
// from the snapshot when the store has none.
func (s *Store) Restore(snap Snapshot) {
	if s.userID == "" {
		s.userID = snap.UserID
	}
	s.profile = snap.Profile
	s.goal = snap.Goal
	s.tasks = append([]model.Task(nil), snap.Tasks...)
	s.confirmed = make(map[string]bool, len(snap.Confirmed))
	for id, ok := range snap.Confirmed {
		if ok {
			s.confirmed[id] = true
		}
	}
	s.availability = nil
	if snap.Availability != nil {
		a := *snap.Availability
		s.availability = &a
	}
	s.recommendations = nil
	if snap.Recommendations != nil {
		r := *snap.Recommendations
		r.Todos = append([]model.RecommendationTodo(nil), r.Todos...)
		s.recommendations = &r
	}
	s.chat = append([]model.ChatMessage(nil), snap.Chat...)
}
