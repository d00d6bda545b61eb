// Package planner holds the client-side planner state and the pure
// algorithms that mutate it: reconciliation of fetched tasks and
// reordering of a filtered view.
package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/nhle/daily-planner/internal/model"
)

// Store is the single source of truth for the planner: goal, tasks,
// availability, profile, chat transcript and the latest recommendation set.
//
// A Store is not safe for concurrent use. The TUI mutates it only from its
// update loop; network results are applied there too.
type Store struct {
	userID string

	profile         model.Profile
	goal            model.Goal
	tasks           []model.Task
	confirmed       map[string]bool
	availability    *model.Availability
	recommendations *model.RecommendationSet
	chat            []model.ChatMessage

	newID func() string
	now   func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithIDFunc replaces the task/message id generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces the time source used for "today" and chat timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// New creates an empty store scoped to userID.
func New(userID string, opts ...Option) *Store {
	s := &Store{
		userID:    userID,
		confirmed: make(map[string]bool),
		newID:     func() string { return uuid.New().String() },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserID returns the identifier that scopes all remote calls.
func (s *Store) UserID() string { return s.userID }

// SetUserID changes the remote scope, e.g. after onboarding.
func (s *Store) SetUserID(id string) { s.userID = id }

// Today returns the current date in the profile's timezone.
func (s *Store) Today() string {
	now := s.now()
	if s.profile.Timezone != "" {
		if loc, err := time.LoadLocation(s.profile.Timezone); err == nil {
			now = now.In(loc)
		}
	}
	return now.Format(model.DateLayout)
}

// AddTask appends a new pending manual task and returns it. It performs no
// I/O; callers decide whether to mirror the task remotely.
func (s *Store) AddTask(in model.TaskInput) model.Task {
	task := model.Task{
		ID:            s.newID(),
		Title:         in.Title,
		Notes:         in.Notes,
		ScheduledDate: in.ScheduledDate,
		Status:        model.TaskStatusPending,
		Source:        model.TaskSourceManual,
	}
	s.tasks = append(s.tasks, task)
	return task
}

// ToggleTaskStatus flips a task between complete and pending. Deferred
// tasks toggle to complete. Unknown ids are ignored.
func (s *Store) ToggleTaskStatus(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.tasks[i].Status = NextStatus(s.tasks[i].Status)
}

// NextStatus returns the status a toggle moves to.
func NextStatus(status model.TaskStatus) model.TaskStatus {
	if status == model.TaskStatusComplete {
		return model.TaskStatusPending
	}
	return model.TaskStatusComplete
}

// UpdateGoal replaces the goal.
func (s *Store) UpdateGoal(goal model.Goal) {
	s.goal = goal
}

// UpdateProfile merges the provided fields into the profile.
func (s *Store) UpdateProfile(update model.ProfileUpdate) {
	if update.FullName != nil {
		s.profile.FullName = *update.FullName
	}
	if update.Timezone != nil {
		s.profile.Timezone = *update.Timezone
	}
}

// SetEmail records the account email used for onboarding.
func (s *Store) SetEmail(email string) {
	s.profile.Email = email
}

// UpdateAvailability replaces availability with today's budget. Bounds
// are a form concern and are not checked here.
func (s *Store) UpdateAvailability(minutes int) model.Availability {
	a := model.Availability{Date: s.Today(), MinutesAvailable: minutes}
	s.availability = &a
	return a
}

// SetTasks replaces the task list, keeping the caller's order. The tasks
// are treated as known to the planning service.
func (s *Store) SetTasks(tasks []model.Task) {
	s.tasks = append([]model.Task(nil), tasks...)
	s.confirmed = make(map[string]bool, len(tasks))
	for _, t := range tasks {
		s.confirmed[t.ID] = true
	}
}

// ReorderTasks lays tasks out in the order of orderedIDs. Ids that do not
// name a task are dropped, as are repeats of an id already placed.
func (s *Store) ReorderTasks(orderedIDs []string) {
	byID := make(map[string]model.Task, len(s.tasks))
	for _, t := range s.tasks {
		byID[t.ID] = t
	}

	reordered := make([]model.Task, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		t, ok := byID[id]
		if !ok {
			continue
		}
		reordered = append(reordered, t)
		delete(byID, id)
	}
	for id := range byID {
		delete(s.confirmed, id)
	}
	s.tasks = reordered
}

// MoveTask moves a task up (delta < 0) or down (delta > 0) within the
// tasks scheduled for date, leaving every other task where it is. It
// reports whether anything moved.
func (s *Store) MoveTask(date, id string, delta int) bool {
	filtered := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ScheduledDate == date {
			filtered = append(filtered, t.ID)
		}
	}

	from := -1
	for i, fid := range filtered {
		if fid == id {
			from = i
			break
		}
	}
	to := from + delta
	if from < 0 || to < 0 || to >= len(filtered) || to == from {
		return false
	}

	reordered := MoveID(filtered, from, to)
	s.ReorderTasks(MergeFilteredOrder(s.tasks, OnDate(date), reordered))
	return true
}

// AppendTask adds a task the planning service has confirmed. A task
// already held under the same id is replaced in place.
func (s *Store) AppendTask(task model.Task) {
	if i := s.indexOf(task.ID); i >= 0 {
		s.tasks[i] = task
	} else {
		s.tasks = append(s.tasks, task)
	}
	s.confirmed[task.ID] = true
}

// PatchTaskStatus sets a single task's status in place. It reports
// whether the task was found.
func (s *Store) PatchTaskStatus(id string, status model.TaskStatus) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Status = status
	return true
}

// ReplaceTask swaps in an updated copy of a task, keeping its position.
func (s *Store) ReplaceTask(task model.Task) bool {
	i := s.indexOf(task.ID)
	if i < 0 {
		return false
	}
	s.tasks[i] = task
	s.confirmed[task.ID] = true
	return true
}

// RemoveTask deletes a task, preserving the order of the rest.
func (s *Store) RemoveTask(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	delete(s.confirmed, id)
	return true
}

// ReconcileFetched merges a fetch of date's tasks into the store. An empty
// fetch leaves the store unchanged. It reports whether the store changed.
func (s *Store) ReconcileFetched(date string, fetched []model.Task) bool {
	merged, ok := Reconcile(s.tasks, fetched, date, s.IsConfirmed)
	if !ok {
		return false
	}
	s.tasks = merged
	for _, t := range fetched {
		s.confirmed[t.ID] = true
	}
	return true
}

// IsConfirmed reports whether the planning service is known to hold id.
func (s *Store) IsConfirmed(id string) bool {
	return s.confirmed[id]
}

// Tasks returns a copy of all tasks in display order.
func (s *Store) Tasks() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

// TasksForDate returns the tasks scheduled for date in display order.
func (s *Store) TasksForDate(date string) []model.Task {
	var out []model.Task
	for _, t := range s.tasks {
		if t.ScheduledDate == date {
			out = append(out, t)
		}
	}
	return out
}

// Task looks up a task by id.
func (s *Store) Task(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) Goal() model.Goal       { return s.goal }
func (s *Store) Profile() model.Profile { return s.profile }

// Availability returns the current availability, if any has been set.
func (s *Store) Availability() (model.Availability, bool) {
	if s.availability == nil {
		return model.Availability{}, false
	}
	return *s.availability, true
}

// SetRecommendations replaces the recommendation set.
func (s *Store) SetRecommendations(set model.RecommendationSet) {
	s.recommendations = &set
}

// Recommendations returns the current recommendation set, if any.
func (s *Store) Recommendations() (model.RecommendationSet, bool) {
	if s.recommendations == nil {
		return model.RecommendationSet{}, false
	}
	return *s.recommendations, true
}

// AppendChat adds a message to the transcript and returns it.
func (s *Store) AppendChat(role model.ChatRole, content string) model.ChatMessage {
	msg := model.ChatMessage{
		ID:        s.newID(),
		Role:      role,
		Content:   content,
		Timestamp: s.now().UTC(),
	}
	s.chat = append(s.chat, msg)
	return msg
}

// Chat returns a copy of the transcript.
func (s *Store) Chat() []model.ChatMessage {
	return append([]model.ChatMessage(nil), s.chat...)
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
