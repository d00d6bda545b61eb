package model

// RecommendationTodo is one suggestion produced by the planning service.
type RecommendationTodo struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
	ResourceURL      string `json:"resourceUrl,omitempty"`
}

// RecommendationSet is the read-only result of a recommendations request.
// A refresh replaces it entirely.
type RecommendationSet struct {
	ScheduledDate string               `json:"scheduledDate"`
	GoalStatement string               `json:"goalStatement"`
	Todos         []RecommendationTodo `json:"recommendedTodos"`
}

// DailyBrief summarizes the plan for one date.
type DailyBrief struct {
	Date             string               `json:"date"`
	TotalTaskMinutes int                  `json:"totalTaskMinutes"`
	Tasks            []Task               `json:"tasks"`
	Suggestions      []RecommendationTodo `json:"learningSuggestions"`
}
