package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/theme"
)

// CloseMsg signals the parent to close the chat panel.
type CloseMsg struct{}

// SendMsg carries a prompt the user submitted.
type SendMsg struct {
	Prompt string
}

// Model is the chat panel: the transcript in a viewport above a prompt.
// The transcript itself lives in the planner store; the panel only
// renders what it is given.
type Model struct {
	input    textarea.Model
	viewport viewport.Model
	messages []model.ChatMessage
	thinking bool
	width    int
	height   int
}

// New creates a new chat panel model.
func New(width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask for help with your plan..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetWidth(width - 4)
	ta.SetHeight(3)
	ta.CharLimit = 2000
	ta.Focus()

	vp := viewport.New(width-4, viewportHeight(height))
	vp.Style = lipgloss.NewStyle()

	return Model{
		input:    ta,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

func viewportHeight(height int) int {
	h := height - 8 // input area + borders
	if h < 4 {
		h = 4
	}
	return h
}

// SetMessages replaces the rendered transcript. thinking shows a pending
// reply indicator.
func (m *Model) SetMessages(messages []model.ChatMessage, thinking bool) {
	m.messages = messages
	m.thinking = thinking
	m.refreshViewport()
}

// Update handles messages for the chat panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CloseMsg{} }

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			return m, func() tea.Msg { return SendMsg{Prompt: text} }

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmds []tea.Cmd

	var taCmd tea.Cmd
	m.input, taCmd = m.input.Update(msg)
	if taCmd != nil {
		cmds = append(cmds, taCmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// refreshViewport re-renders the conversation content and scrolls to bottom.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

// renderConversation builds the conversation display string.
func (m Model) renderConversation() string {
	if len(m.messages) == 0 && !m.thinking {
		return lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("Ask how to tackle today's plan, or press a on a task " +
				"in the list to ask about it.")
	}

	var sections []string

	roleStyle := lipgloss.NewStyle().Bold(true)
	userStyle := roleStyle.Foreground(theme.ColorBlue)
	assistantStyle := roleStyle.Foreground(theme.ColorGreen)
	timeStyle := theme.MutedStyle
	contentStyle := lipgloss.NewStyle().
		Foreground(theme.ColorWhite).
		Width(max(m.width-8, 20))

	for _, msg := range m.messages {
		label := userStyle.Render("You")
		if msg.Role == model.ChatRoleAssistant {
			label = assistantStyle.Render("Assistant")
		}
		if !msg.Timestamp.IsZero() {
			label += " " + timeStyle.Render(msg.Timestamp.Local().Format("15:04"))
		}

		sections = append(sections, label)
		sections = append(sections, contentStyle.Render(msg.Content))
		sections = append(sections, "")
	}

	if m.thinking {
		sections = append(sections, theme.HelpStyle.Render("Assistant is thinking..."))
	}

	return strings.Join(sections, "\n")
}

// View renders the chat panel.
func (m Model) View() string {
	title := theme.TitleStyle.Render("Assistant")

	separator := lipgloss.NewStyle().
		Foreground(theme.ColorSubtle).
		Render(strings.Repeat("─", max(min(m.width-6, 80), 0)))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.viewport.View(),
		separator,
		m.input.View(),
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the chat panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 4)
	m.viewport.Width = width - 4
	m.viewport.Height = viewportHeight(height)
	m.refreshViewport()
}

// Focus gives keyboard focus to the prompt.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// SetPrompt pre-fills the prompt.
func (m *Model) SetPrompt(s string) {
	m.input.SetValue(s)
}
