package model

// TaskStatus is the lifecycle state of a planner task.
type TaskStatus string

const (
	TaskStatusPending  TaskStatus = "pending"
	TaskStatusComplete TaskStatus = "complete"
	TaskStatusDeferred TaskStatus = "deferred"
)

// TaskSource records how a task entered the planner. It never changes
// after creation.
type TaskSource string

const (
	TaskSourceManual TaskSource = "manual"
	TaskSourcePDF    TaskSource = "pdf"
)

// Task is a single dated item on the user's plan.
type Task struct {
	// ID is unique within a store snapshot. Locally created tasks carry a
	// client-generated id; fetched tasks carry the service's id.
	ID string `json:"id"`

	Title string `json:"title"`
	Notes string `json:"notes,omitempty"`

	// ScheduledDate is a calendar date in DateLayout form.
	ScheduledDate string `json:"scheduledDate"`

	EstimatedMinutes *int       `json:"estimatedMinutes,omitempty"`
	Status           TaskStatus `json:"status"`
	Source           TaskSource `json:"source"`

	// PDFIngestionID links a task to the upload that produced it.
	PDFIngestionID *string `json:"pdfIngestionId,omitempty"`
}

// IsComplete reports whether the task has been marked done.
func (t Task) IsComplete() bool {
	return t.Status == TaskStatusComplete
}

// Minutes returns the estimate, treating a missing estimate as zero.
func (t Task) Minutes() int {
	if t.EstimatedMinutes == nil {
		return 0
	}
	return *t.EstimatedMinutes
}

// TaskInput is the user-supplied part of a new task.
type TaskInput struct {
	Title         string
	ScheduledDate string
	Notes         string
}

// TaskPatch is a partial update of a task. Nil fields are left unchanged.
type TaskPatch struct {
	Status           *TaskStatus
	ScheduledDate    *string
	Notes            *string
	EstimatedMinutes *int
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }
