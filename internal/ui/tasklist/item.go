package tasklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	parts := []string{string(i.Task.Status), string(i.Task.Source)}
	if i.Task.EstimatedMinutes != nil {
		parts = append(parts, fmt.Sprintf("%dm", *i.Task.EstimatedMinutes))
	}
	return strings.Join(parts, " | ")
}

// TaskDelegate implements list.ItemDelegate for rendering one task per line.
type TaskDelegate struct{}

// Height returns the number of lines each item takes.
func (d TaskDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d TaskDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderLine(ti.Task, index == m.Index()))
}

func renderLine(task model.Task, selected bool) string {
	check := theme.StatusStyle(task.Status).Render(checkbox(task.Status))

	title := task.Title
	if task.IsComplete() {
		title = theme.DimmedStyle.Render(title)
	}

	var extras []string
	if task.EstimatedMinutes != nil {
		extras = append(extras, theme.MutedStyle.Render(fmt.Sprintf("%dm", *task.EstimatedMinutes)))
	}
	if task.Source == model.TaskSourcePDF {
		extras = append(extras, theme.SourceLabelStyle(task.Source).Render("PDF"))
	}
	if task.Status == model.TaskStatusDeferred {
		extras = append(extras, theme.StatusStyle(task.Status).Render("deferred"))
	}

	line := check + " " + title
	if len(extras) > 0 {
		line += "  " + strings.Join(extras, " ")
	}

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

func checkbox(status model.TaskStatus) string {
	switch status {
	case model.TaskStatusComplete:
		return "[x]"
	case model.TaskStatusDeferred:
		return "[~]"
	default:
		return "[ ]"
	}
}
