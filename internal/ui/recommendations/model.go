package recommendations

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/daily-planner/internal/keys"
	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/theme"
)

// BackMsg signals the parent to navigate back to the task list.
type BackMsg struct{}

// RefreshMsg asks the parent to request a new recommendation set.
type RefreshMsg struct{}

// AddSuggestionMsg asks the parent to add a suggestion as a task.
type AddSuggestionMsg struct {
	Todo model.RecommendationTodo
	Date string
}

// Model shows the current recommendation set and lets the user pick
// suggestions to add as tasks.
type Model struct {
	set      *model.RecommendationSet
	selected int
	loading  bool
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new recommendations view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// SetRecommendations replaces the displayed set.
func (m *Model) SetRecommendations(set model.RecommendationSet) {
	m.set = &set
	m.loading = false
	if m.selected >= len(set.Todos) {
		m.selected = 0
	}
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetLoading shows a placeholder until the next set arrives.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// Selected returns the index of the highlighted suggestion.
func (m Model) Selected() int {
	return m.selected
}

// Update handles messages for the recommendations view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(keyMsg, m.keys.Refresh):
		m.loading = true
		return m, func() tea.Msg { return RefreshMsg{} }

	case key.Matches(keyMsg, m.keys.Down):
		if m.set != nil && m.selected < len(m.set.Todos)-1 {
			m.selected++
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.AddSuggestion):
		if m.set == nil || m.selected >= len(m.set.Todos) {
			return m, nil
		}
		add := AddSuggestionMsg{Todo: m.set.Todos[m.selected], Date: m.set.ScheduledDate}
		return m, func() tea.Msg { return add }
	}

	// Page keys scroll the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the recommendations view.
func (m Model) View() string {
	placeholder := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.loading {
		return placeholder.Render("Fetching recommendations...")
	}
	if m.set == nil {
		return placeholder.Render("No recommendations yet.\n\nPress r to request some for this date.")
	}

	return m.viewport.View()
}

func (m Model) renderContent() string {
	if m.set == nil {
		return ""
	}
	return Render(Markdown(*m.set, m.selected), m.width-4)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.viewport.SetContent(m.renderContent())
}
