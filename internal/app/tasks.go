package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/daily-planner/internal/credential"
	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/planner"
	"github.com/nhle/daily-planner/internal/ui/command"
	"github.com/nhle/daily-planner/internal/ui/recommendations"
	"github.com/nhle/daily-planner/internal/ui/settings"
)

// online reports whether the store belongs to a signed-in user.
func (m *Model) online() bool {
	return m.planner.UserID() != ""
}

// createTask goes through the service when signed in and is otherwise
// added locally.
func (m *Model) createTask(in model.TaskInput) tea.Cmd {
	if in.ScheduledDate == "" {
		in.ScheduledDate = m.date
	}
	if m.online() {
		return m.gateway.CreateTask(m.planner.UserID(), in)
	}

	task := m.planner.AddTask(in)
	m.refreshTasks()
	m.taskList.Select(task.ID)
	m.setStatus("Added "+task.Title, false)
	return m.saveSnapshot()
}

// toggleTask cycles the task status. Tasks the service has not seen yet
// are toggled locally.
func (m *Model) toggleTask(id string) tea.Cmd {
	task, ok := m.planner.Task(id)
	if !ok {
		return nil
	}
	if m.online() && m.planner.IsConfirmed(id) {
		return m.gateway.SetTaskStatus(id, planner.NextStatus(task.Status))
	}

	m.planner.ToggleTaskStatus(id)
	m.refreshTasks()
	return m.saveSnapshot()
}

func (m *Model) deleteTask(id string) tea.Cmd {
	if m.online() && m.planner.IsConfirmed(id) {
		return m.gateway.DeleteTask(id)
	}
	if !m.planner.RemoveTask(id) {
		return nil
	}
	m.refreshTasks()
	return m.saveSnapshot()
}

// moveTask reorders locally; the service has no ordering endpoint.
func (m *Model) moveTask(id string, delta int) tea.Cmd {
	if !m.planner.MoveTask(m.date, id, delta) {
		return nil
	}
	m.refreshTasks()
	m.taskList.Select(id)
	return m.saveSnapshot()
}

// changeDate selects date and fetches it.
func (m *Model) changeDate(date string) tea.Cmd {
	m.date = date
	m.refreshTasks()
	if m.refresher != nil {
		m.refresher.SetTarget(m.planner.UserID(), date)
	}
	return m.fetchSelectedDate()
}

// fetchSelectedDate asks the service for the selected date. Offline it is
// a no-op.
func (m *Model) fetchSelectedDate() tea.Cmd {
	if !m.online() {
		return nil
	}
	return m.gateway.FetchTasks(m.planner.UserID(), m.date)
}

func (m *Model) carryForward(to string) tea.Cmd {
	if !m.online() {
		m.setStatus("Sign in from settings to carry tasks forward", true)
		return nil
	}
	return m.gateway.CarryForward(m.planner.UserID(), m.date, to)
}

func (m *Model) requestRecommendations() tea.Cmd {
	goal := m.planner.Goal()
	switch {
	case !m.online():
		m.setStatus("Sign in from settings to get recommendations", true)
		return nil
	case goal.IsZero():
		m.setStatus("Set a primary goal in settings first", true)
		return nil
	}
	m.recs.SetLoading(true)
	return m.gateway.FetchRecommendations(m.planner.UserID(), m.date, goal)
}

// addSuggestion turns a recommendation into a task on the set's date.
func (m *Model) addSuggestion(todo model.RecommendationTodo, date string) tea.Cmd {
	notes := todo.Description
	if todo.ResourceURL != "" {
		notes = strings.TrimSpace(notes + "\n" + todo.ResourceURL)
	}
	if date == "" {
		date = m.date
	}
	return m.createTask(model.TaskInput{Title: todo.Title, ScheduledDate: date, Notes: notes})
}

// uploadFile reads a PDF from disk and sends it for parsing.
func (m *Model) uploadFile(path string) tea.Cmd {
	if !m.online() {
		m.setStatus("Sign in from settings to upload PDFs", true)
		return nil
	}
	if path == "" {
		m.setStatus("usage: upload <path>", true)
		return nil
	}

	path = expandHome(path)
	content, err := os.ReadFile(path)
	if err != nil {
		m.setStatus(fmt.Sprintf("Reading %s: %v", path, err), true)
		return nil
	}
	m.setStatus("Uploading "+filepath.Base(path)+"...", false)
	return m.gateway.UploadPDF(m.planner.UserID(), m.date, filepath.Base(path), content)
}

func (m *Model) openSettings() tea.Cmd {
	minutes := 0
	if a, ok := m.planner.Availability(); ok {
		minutes = a.MinutesAvailable
	}
	m.currentView = ViewSettings
	return m.settings.Start(m.planner.Profile(), m.planner.Goal(), minutes)
}

func (m *Model) openBrief() {
	remaining, ok := m.planner.RemainingMinutes(m.date)
	md := recommendations.BriefMarkdown(m.planner.Brief(m.date), remaining, ok)
	width := m.layout.ContentWidth()
	if width <= 0 {
		width = 80
	}
	m.brief = recommendations.Render(md, width)
	m.currentView = ViewBrief
}

func (m *Model) sendChat(prompt string) tea.Cmd {
	if strings.TrimSpace(prompt) == "" {
		return nil
	}
	m.thinking++
	cmd := m.assistant.Send(m.planner, prompt)
	m.refreshChat()
	return tea.Batch(cmd, m.saveSnapshot())
}

// executeCommand runs a palette command.
func (m *Model) executeCommand(c command.CommandMsg) tea.Cmd {
	switch c.Name {
	case "today":
		return m.changeDate(m.planner.Today())
	case "date":
		if _, err := model.ParseDate(c.Arg); err != nil {
			m.setStatus("usage: date YYYY-MM-DD", true)
			return nil
		}
		return m.changeDate(c.Arg)
	case "refresh":
		return m.fetchSelectedDate()
	case "upload":
		return m.uploadFile(c.Arg)
	case "carry":
		to := ""
		if c.Arg != "" {
			if _, err := model.ParseDate(c.Arg); err != nil {
				m.setStatus("usage: carry [YYYY-MM-DD]", true)
				return nil
			}
			to = c.Arg
		}
		return m.carryForward(to)
	case "recommend":
		m.currentView = ViewRecommendations
		return m.requestRecommendations()
	case "brief":
		m.openBrief()
		return nil
	case "import-mail":
		return m.importMail()
	case "settings":
		return m.openSettings()
	case "chat":
		m.currentView = ViewChat
		return m.chat.Focus()
	case "quit", "q":
		return m.quit()
	}

	m.setStatus("Unknown command: "+c.Name, true)
	return nil
}

// saveSettings applies the form locally and then mirrors it to the
// service. The first save with an email onboards the user.
func (m *Model) saveSettings(saved settings.SavedMsg) tea.Cmd {
	var cmds []tea.Cmd

	if saved.Email != "" {
		m.planner.SetEmail(saved.Email)
	}
	m.planner.UpdateProfile(saved.Profile)
	m.planner.UpdateGoal(saved.Goal)
	availability := m.planner.UpdateAvailability(saved.AvailabilityMinutes)

	if saved.APIToken != "" {
		cmds = append(cmds, m.storeSecret(credential.APITokenKey, saved.APIToken))
	}
	if saved.MailPassword != "" && m.mailUser != "" {
		cmds = append(cmds, m.storeSecret(credential.MailPasswordKey(m.mailUser), saved.MailPassword))
	}

	if m.planner.Profile().Email != "" && !saved.Goal.IsZero() {
		cmds = append(cmds, m.gateway.SaveGoal(m.planner.Profile(), saved.Goal))
	}
	if m.online() {
		cmds = append(cmds, m.gateway.SaveAvailability(m.planner.UserID(), availability))
	}

	m.setStatus("Settings saved", false)
	return tea.Batch(append(cmds, m.saveSnapshot())...)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
