package recommendations

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/nhle/daily-planner/internal/model"
)

// Markdown formats a recommendation set. selected marks one suggestion
// with a pointer; pass -1 for none.
func Markdown(set model.RecommendationSet, selected int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Recommendations for %s\n\n", set.ScheduledDate)
	if set.GoalStatement != "" {
		fmt.Fprintf(&b, "> %s\n\n", set.GoalStatement)
	}

	if len(set.Todos) == 0 {
		b.WriteString("_No suggestions for this date._\n")
		return b.String()
	}

	for i, td := range set.Todos {
		marker := ""
		if i == selected {
			marker = "▸ "
		}
		fmt.Fprintf(&b, "## %s%d. %s\n\n", marker, i+1, td.Title)

		var meta []string
		if td.Category != "" {
			meta = append(meta, "**"+td.Category+"**")
		}
		if td.EstimatedMinutes > 0 {
			meta = append(meta, fmt.Sprintf("%d min", td.EstimatedMinutes))
		}
		if len(meta) > 0 {
			b.WriteString(strings.Join(meta, " · ") + "\n\n")
		}
		if td.Description != "" {
			b.WriteString(td.Description + "\n\n")
		}
		if td.ResourceURL != "" {
			fmt.Fprintf(&b, "[Resource](%s)\n\n", td.ResourceURL)
		}
	}

	return b.String()
}

// BriefMarkdown formats the daily brief. remaining is shown when known.
func BriefMarkdown(brief model.DailyBrief, remaining int, hasRemaining bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Plan for %s\n\n", brief.Date)
	fmt.Fprintf(&b, "Estimated work: **%d min**", brief.TotalTaskMinutes)
	if hasRemaining {
		fmt.Fprintf(&b, " · Remaining budget: **%d min**", remaining)
	}
	b.WriteString("\n\n")

	if len(brief.Tasks) == 0 {
		b.WriteString("_No tasks scheduled._\n\n")
	}
	for _, t := range brief.Tasks {
		check := " "
		if t.IsComplete() {
			check = "x"
		}
		line := fmt.Sprintf("- [%s] %s", check, t.Title)
		if t.EstimatedMinutes != nil {
			line += fmt.Sprintf(" (%d min)", *t.EstimatedMinutes)
		}
		if t.Status == model.TaskStatusDeferred {
			line += " _deferred_"
		}
		b.WriteString(line + "\n")
	}

	if len(brief.Suggestions) > 0 {
		b.WriteString("\n## Learning suggestions\n\n")
		for _, s := range brief.Suggestions {
			fmt.Fprintf(&b, "- %s (%d min)\n", s.Title, s.EstimatedMinutes)
		}
	}

	return b.String()
}

// style is the glamour standard style used by Render.
var style = "dark"

// UseTheme picks the markdown style for a display theme. Only "light"
// differs from the default.
func UseTheme(name string) {
	if name == "light" {
		style = "light"
		return
	}
	style = "dark"
}

// Render turns markdown into styled terminal output wrapped at width.
// The raw markdown is returned if rendering fails.
func Render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
