package api

import (
	"strings"

	"github.com/nhle/daily-planner/internal/model"
)

// fieldMap pairs a model field (camelCase JSON name) with its wire name.
type fieldMap []struct{ Model, Wire string }

// Field tables, one per resource. mapping_test.go checks them against the
// struct tags and runs every converter over a fully populated value,
// comparing each listed field on both sides.
var (
	taskFields = fieldMap{
		{"id", "id"},
		{"title", "title"},
		{"notes", "notes"},
		{"scheduledDate", "scheduled_date"},
		{"estimatedMinutes", "estimated_minutes"},
		{"status", "status"},
		{"source", "source"},
		{"pdfIngestionId", "pdf_ingestion_id"},
	}

	taskPatchFields = fieldMap{
		{"status", "status"},
		{"scheduledDate", "scheduled_date"},
		{"notes", "notes"},
		{"estimatedMinutes", "estimated_minutes"},
	}

	recommendationFields = fieldMap{
		{"scheduledDate", "scheduled_date"},
		{"goalStatement", "goal_statement"},
		{"recommendedTodos", "recommended_todos"},
	}

	recommendedTodoFields = fieldMap{
		{"title", "title"},
		{"description", "description"},
		{"category", "category"},
		{"estimatedMinutes", "estimated_minutes"},
		{"resourceUrl", "resource_url"},
	}

	availabilityFields = fieldMap{
		{"date", "day"},
		{"minutesAvailable", "minutes_available"},
	}

	goalFields = fieldMap{
		{"primaryGoal", "goal_statement"},
		{"secondaryGoals", "secondary_goals"},
		{"industry", "industry"},
		{"skillsFocus", "skills_focus"},
		{"defaultLearningMinutes", "default_learning_minutes"},
	}
)

func taskFromWire(d taskDTO) model.Task {
	return model.Task{
		ID:               d.ID,
		Title:            d.Title,
		Notes:            derefString(d.Notes),
		ScheduledDate:    normalizeDate(d.ScheduledDate),
		EstimatedMinutes: d.EstimatedMinutes,
		Status:           statusFromWire(d.Status),
		Source:           sourceFromWire(d.Source),
		PDFIngestionID:   d.PDFIngestionID,
	}
}

func tasksFromWire(ds []taskDTO) []model.Task {
	tasks := make([]model.Task, 0, len(ds))
	for _, d := range ds {
		tasks = append(tasks, taskFromWire(d))
	}
	return tasks
}

func taskPatchToWire(p model.TaskPatch) taskPatchDTO {
	var status *string
	if p.Status != nil {
		s := string(*p.Status)
		status = &s
	}
	return taskPatchDTO{
		Status:           status,
		ScheduledDate:    p.ScheduledDate,
		Notes:            p.Notes,
		EstimatedMinutes: p.EstimatedMinutes,
	}
}

func recommendationsFromWire(d recommendationsDTO) model.RecommendationSet {
	set := model.RecommendationSet{
		ScheduledDate: normalizeDate(d.ScheduledDate),
		GoalStatement: d.GoalStatement,
		Todos:         make([]model.RecommendationTodo, 0, len(d.RecommendedTodos)),
	}
	for _, td := range d.RecommendedTodos {
		set.Todos = append(set.Todos, model.RecommendationTodo{
			Title:            td.Title,
			Description:      td.Description,
			Category:         td.Category,
			EstimatedMinutes: td.EstimatedMinutes,
			ResourceURL:      derefString(td.ResourceURL),
		})
	}
	return set
}

func availabilityToWire(userID string, a model.Availability) availabilityDTO {
	return availabilityDTO{
		UserID:           userID,
		Day:              a.Date,
		MinutesAvailable: a.MinutesAvailable,
		Source:           string(model.TaskSourceManual),
	}
}

func availabilityFromWire(d availabilityDTO) model.Availability {
	return model.Availability{
		Date:             normalizeDate(d.Day),
		MinutesAvailable: d.MinutesAvailable,
	}
}

func goalToWire(g model.Goal) goalDTO {
	return goalDTO{
		GoalStatement:          g.PrimaryGoal,
		SecondaryGoals:         optionalString(g.SecondaryGoals),
		Industry:               optionalString(g.Industry),
		SkillsFocus:            optionalString(g.SkillsFocus),
		DefaultLearningMinutes: g.DefaultLearningMinutes,
	}
}

func goalFromWire(d goalDTO) model.Goal {
	return model.Goal{
		PrimaryGoal:            d.GoalStatement,
		SecondaryGoals:         derefString(d.SecondaryGoals),
		Industry:               derefString(d.Industry),
		SkillsFocus:            derefString(d.SkillsFocus),
		DefaultLearningMinutes: d.DefaultLearningMinutes,
	}
}

// statusFromWire maps the service's free-form status onto the known
// states. Anything else is treated as pending.
func statusFromWire(s string) model.TaskStatus {
	switch st := model.TaskStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case model.TaskStatusPending, model.TaskStatusComplete, model.TaskStatusDeferred:
		return st
	default:
		return model.TaskStatusPending
	}
}

// sourceFromWire maps an unknown source to manual.
func sourceFromWire(s string) model.TaskSource {
	if src := model.TaskSource(strings.ToLower(strings.TrimSpace(s))); src == model.TaskSourcePDF {
		return src
	}
	return model.TaskSourceManual
}

// normalizeDate trims a datetime the service may send down to its date.
func normalizeDate(s string) string {
	if len(s) > len(model.DateLayout) && strings.ContainsAny(s[len(model.DateLayout):], "T ") {
		return s[:len(model.DateLayout)]
	}
	return s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
