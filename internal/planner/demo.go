package planner

import "github.com/nhle/daily-planner/internal/model"

// BootstrapDemo seeds a sample goal, profile, availability and three tasks
// around today. It replaces any existing state except the chat transcript.
func (s *Store) BootstrapDemo(today string) {
	s.goal = model.Goal{
		PrimaryGoal:            "Land a Senior Product Manager role at a Series A startup",
		SecondaryGoals:         "Write weekly case studies, maintain networking cadence",
		Industry:               "AI Productivity",
		SkillsFocus:            "Storytelling, data case studies, networking cadence",
		DefaultLearningMinutes: model.IntPtr(120),
	}
	s.profile = model.Profile{
		Email:    "demo@planner.ai",
		FullName: "Demo Candidate",
		Timezone: "America/Los_Angeles",
	}
	s.availability = &model.Availability{Date: today, MinutesAvailable: 240}
	s.tasks = []model.Task{
		{
			ID:               "t-1",
			Title:            "Tailor resume for Nimbus Labs",
			ScheduledDate:    today,
			EstimatedMinutes: model.IntPtr(45),
			Status:           model.TaskStatusPending,
			Source:           model.TaskSourceManual,
		},
		{
			ID:               "t-2",
			Title:            "Reach out to 3 alumni on LinkedIn",
			ScheduledDate:    today,
			EstimatedMinutes: model.IntPtr(30),
			Status:           model.TaskStatusPending,
			Source:           model.TaskSourcePDF,
		},
		{
			ID:               "t-3",
			Title:            "Mock interview: product strategy",
			ScheduledDate:    model.AddDays(today, 1),
			EstimatedMinutes: model.IntPtr(60),
			Status:           model.TaskStatusDeferred,
			Source:           model.TaskSourceManual,
		},
	}
	s.confirmed = make(map[string]bool)
}
