package sync

import (
	"github.com/nhle/daily-planner/internal/api"
	"github.com/nhle/daily-planner/internal/model"
)

// TasksFetchedMsg carries the result of a task fetch for one date.
type TasksFetchedMsg struct {
	Seq   uint64
	Date  string
	Tasks []model.Task
	Err   error

	// Background is set for fetches started by the Refresher.
	Background bool
}

// UploadedMsg carries the result of a PDF upload. Ref is set by callers
// that need to match the result to their own request; manual uploads
// leave it empty.
type UploadedMsg struct {
	Date     string
	Filename string
	Ref      string
	Result   api.UploadResult
	Err      error
}

// CarriedForwardMsg carries the result of a carry-forward request.
type CarriedForwardMsg struct {
	FromDate string
	ToDate   string
	Moved    []model.Task
	Err      error
}

// TaskCreatedMsg carries the service's copy of a newly created task.
type TaskCreatedMsg struct {
	Input model.TaskInput
	Task  model.Task
	Err   error
}

// TaskStatusMsg carries the result of a status update.
type TaskStatusMsg struct {
	ID     string
	Status model.TaskStatus
	Task   model.Task
	Err    error
}

// TaskDeletedMsg carries the result of a delete.
type TaskDeletedMsg struct {
	ID  string
	Err error
}

// RecommendationsMsg carries a fresh recommendation set.
type RecommendationsMsg struct {
	Date string
	Set  model.RecommendationSet
	Err  error
}

// AvailabilitySavedMsg reports whether availability reached the service.
type AvailabilitySavedMsg struct {
	Availability model.Availability
	Err          error
}

// GoalSavedMsg carries the result of onboarding the profile and goal.
type GoalSavedMsg struct {
	User api.User
	Err  error
}
