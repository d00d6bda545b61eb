package api

// Wire shapes exchanged with the planning service. Field names follow the
// service's snake_case JSON; conversion to model types lives in mapping.go.

type taskDTO struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id,omitempty"`
	Title            string  `json:"title"`
	Notes            *string `json:"notes,omitempty"`
	ScheduledDate    string  `json:"scheduled_date"`
	EstimatedMinutes *int    `json:"estimated_minutes,omitempty"`
	Status           string  `json:"status"`
	Source           string  `json:"source"`
	PDFIngestionID   *string `json:"pdf_ingestion_id,omitempty"`
}

type createTaskRequest struct {
	UserID           string  `json:"user_id"`
	Title            string  `json:"title"`
	ScheduledDate    string  `json:"scheduled_date"`
	Source           string  `json:"source"`
	Notes            *string `json:"notes,omitempty"`
	EstimatedMinutes *int    `json:"estimated_minutes,omitempty"`
}

type taskPatchDTO struct {
	Status           *string `json:"status,omitempty"`
	ScheduledDate    *string `json:"scheduled_date,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	EstimatedMinutes *int    `json:"estimated_minutes,omitempty"`
}

type carryForwardRequest struct {
	UserID   string  `json:"user_id"`
	FromDate string  `json:"from_date"`
	ToDate   *string `json:"to_date,omitempty"`
}

type uploadDTO struct {
	ID               string   `json:"id"`
	UserID           string   `json:"user_id"`
	OriginalFilename string   `json:"original_filename"`
	Status           string   `json:"status"`
	ParsedTaskCount  int      `json:"parsed_task_count"`
	ErrorMessage     *string  `json:"error_message"`
	TasksCreated     []string `json:"tasks_created"`
}

type recommendationRequest struct {
	UserID         string  `json:"user_id"`
	ScheduledDate  string  `json:"scheduled_date"`
	PrimaryGoal    *string `json:"primary_goal,omitempty"`
	SecondaryGoals *string `json:"secondary_goals,omitempty"`
	SkillsFocus    *string `json:"skills_focus,omitempty"`
}

type recommendedTodoDTO struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	ResourceURL      *string `json:"resource_url,omitempty"`
}

type recommendationsDTO struct {
	UserID           string               `json:"user_id"`
	ScheduledDate    string               `json:"scheduled_date"`
	GoalStatement    string               `json:"goal_statement"`
	RecommendedTodos []recommendedTodoDTO `json:"recommended_todos"`
}

type availabilityDTO struct {
	UserID           string `json:"user_id"`
	Day              string `json:"day"`
	MinutesAvailable int    `json:"minutes_available"`
	Source           string `json:"source"`
}

type goalDTO struct {
	GoalStatement          string  `json:"goal_statement"`
	SecondaryGoals         *string `json:"secondary_goals,omitempty"`
	Industry               *string `json:"industry,omitempty"`
	SkillsFocus            *string `json:"skills_focus,omitempty"`
	DefaultLearningMinutes *int    `json:"default_learning_minutes,omitempty"`
}

type onboardingRequest struct {
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
	Goal     goalDTO `json:"goal"`
}

type userDTO struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName *string  `json:"full_name"`
	Timezone *string  `json:"timezone"`
	Goal     *goalDTO `json:"goal"`
}
