package tasklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/daily-planner/internal/keys"
	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/theme"
)

// ToggleTaskMsg asks the parent to flip a task's status.
type ToggleTaskMsg struct {
	ID string
}

// DeleteTaskMsg asks the parent to delete a task.
type DeleteTaskMsg struct {
	ID string
}

// MoveTaskMsg asks the parent to move a task within the day's list.
// Delta is -1 for up and +1 for down.
type MoveTaskMsg struct {
	ID    string
	Delta int
}

// AskTaskMsg asks the parent to open the chat about a task.
type AskTaskMsg struct {
	Title string
}

// Model is the day's task list.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	date   string
	width  int
	height int
}

// New creates a new task list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, TaskDelegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetTasks replaces the rows with date's tasks, keeping the cursor on the
// previously selected task when it is still present.
func (m *Model) SetTasks(date string, tasks []model.Task) {
	selected, hadSelection := m.SelectedTask()
	sameDay := date == m.date
	m.date = date

	items := make([]list.Item, len(tasks))
	for i, task := range tasks {
		items[i] = TaskItem{Task: task}
	}
	m.list.SetItems(items)

	if hadSelection && sameDay {
		m.Select(selected.ID)
		return
	}
	m.list.Select(0)
}

// Select moves the cursor to the task with id.
func (m *Model) Select(id string) {
	for i, item := range m.list.Items() {
		if ti, ok := item.(TaskItem); ok && ti.Task.ID == id {
			m.list.Select(i)
			return
		}
	}
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	ti, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return ti.Task, true
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Update handles key input for the list. Only cursor movement reaches the
// underlying bubbles list; its other default bindings overlap app keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	task, hasTask := m.SelectedTask()

	switch {
	case key.Matches(keyMsg, m.keys.MoveUp):
		if hasTask {
			return m, emit(MoveTaskMsg{ID: task.ID, Delta: -1})
		}

	case key.Matches(keyMsg, m.keys.MoveDown):
		if hasTask {
			return m, emit(MoveTaskMsg{ID: task.ID, Delta: 1})
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if hasTask {
			return m, emit(ToggleTaskMsg{ID: task.ID})
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if hasTask {
			return m, emit(DeleteTaskMsg{ID: task.ID})
		}

	case key.Matches(keyMsg, m.keys.Ask):
		if hasTask {
			return m, emit(AskTaskMsg{Title: task.Title})
		}

	case key.Matches(keyMsg, m.keys.Up), key.Matches(keyMsg, m.keys.Down):
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the task list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when the day has no tasks.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render(
		"No tasks for " + m.date + ".\n\n" +
			"Press n to add one, u to upload a PDF, or f to carry tasks forward.",
	)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
