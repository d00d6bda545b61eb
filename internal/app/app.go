package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/daily-planner/internal/assistant"
	"github.com/nhle/daily-planner/internal/keys"
	"github.com/nhle/daily-planner/internal/mailbox"
	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/planner"
	"github.com/nhle/daily-planner/internal/store"
	appsync "github.com/nhle/daily-planner/internal/sync"
	"github.com/nhle/daily-planner/internal/ui"
	"github.com/nhle/daily-planner/internal/ui/chat"
	"github.com/nhle/daily-planner/internal/ui/command"
	"github.com/nhle/daily-planner/internal/ui/composer"
	helpview "github.com/nhle/daily-planner/internal/ui/help"
	"github.com/nhle/daily-planner/internal/ui/recommendations"
	"github.com/nhle/daily-planner/internal/ui/settings"
	"github.com/nhle/daily-planner/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDaily ViewState = iota
	ViewComposer
	ViewSettings
	ViewChat
	ViewRecommendations
	ViewBrief
	ViewHelp
	ViewCommand
)

// MailSource yields PDF attachments to import.
type MailSource interface {
	FetchPDFAttachments(ctx context.Context) ([]mailbox.Attachment, error)
}

// Deps are the collaborators the root model drives. Refresher, Persist,
// Mail and SaveSecret may be nil.
type Deps struct {
	Planner   *planner.Store
	Gateway   *appsync.Gateway
	Refresher *appsync.Refresher
	Assistant *assistant.Assistant
	Persist   store.Store
	Mail      MailSource
	MailUser  string
	Log       *zap.SugaredLogger

	// SaveSecret stores a credential, normally credential.Set.
	SaveSecret func(key, value string) error
}

// Model is the root Bubble Tea model. It owns view routing and is the
// only place the planner store is mutated while the TUI runs.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	ready        bool

	planner    *planner.Store
	gateway    *appsync.Gateway
	refresher  *appsync.Refresher
	assistant  *assistant.Assistant
	persist    store.Store
	writer     *snapshotWriter
	mail       MailSource
	mailUser   string
	log        *zap.SugaredLogger
	saveSecret func(key, value string) error

	date      string
	status    string
	statusErr bool
	thinking  int
	brief     string

	// pendingImports maps an upload ref to its mail attachment so a
	// successful upload can be recorded in the import log.
	pendingImports map[string]mailbox.Attachment

	taskList    tasklist.Model
	composer    composer.Model
	settings    settings.Model
	chat        chat.Model
	recs        recommendations.Model
	helpView    helpview.Model
	commandView command.Model
}

// New creates the root model showing today's tasks.
func New(d Deps) Model {
	k := keys.DefaultKeyMap()
	log := d.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	m := Model{
		currentView:    ViewDaily,
		keys:           k,
		planner:        d.Planner,
		gateway:        d.Gateway,
		refresher:      d.Refresher,
		assistant:      d.Assistant,
		persist:        d.Persist,
		mail:           d.Mail,
		mailUser:       d.MailUser,
		log:            log,
		saveSecret:     d.SaveSecret,
		date:           d.Planner.Today(),
		pendingImports: make(map[string]mailbox.Attachment),
		taskList:       tasklist.New(k, 80, 22),
		composer:       composer.New(80, 22),
		settings:       settings.New(d.MailUser, 80, 22),
		chat:           chat.New(80, 22),
		recs:           recommendations.New(k, 80, 22),
		helpView:       helpview.New(k, 80, 22),
		commandView:    command.New(80, 22),
	}

	if d.Persist != nil {
		m.writer = &snapshotWriter{store: d.Persist}
	}

	m.refreshTasks()
	m.refreshChat()
	if set, ok := d.Planner.Recommendations(); ok {
		m.recs.SetRecommendations(set)
	}

	return m
}

// Planner returns the store the model mutates, for saving on exit.
func (m Model) Planner() *planner.Store {
	return m.planner
}

// Date returns the selected date.
func (m Model) Date() string {
	return m.date
}

// Init fetches the selected date and starts the background refresher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchSelectedDate()}
	if m.refresher != nil {
		m.refresher.SetTarget(m.planner.UserID(), m.date)
		cmds = append(cmds, m.refresher.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if out, ok := m.gateway.Apply(m.planner, msg); ok {
		return m.afterApply(msg, out)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.taskList.SetSize(w, h)
		m.composer.SetSize(w, h)
		m.settings.SetSize(w, h)
		m.chat.SetSize(w, h)
		m.recs.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case assistant.ReplyMsg:
		assistant.Deliver(m.planner, msg)
		if m.thinking > 0 {
			m.thinking--
		}
		m.refreshChat()
		return m, m.saveSnapshot()

	case tasklist.ToggleTaskMsg:
		return m, m.toggleTask(msg.ID)

	case tasklist.DeleteTaskMsg:
		return m, m.deleteTask(msg.ID)

	case tasklist.MoveTaskMsg:
		return m, m.moveTask(msg.ID, msg.Delta)

	case tasklist.AskTaskMsg:
		m.currentView = ViewChat
		return m, tea.Batch(m.chat.Focus(), m.sendChat(assistant.AskAboutTask(msg.Title)))

	case composer.TaskComposedMsg:
		m.currentView = ViewDaily
		return m, m.createTask(msg.Input)

	case composer.CancelMsg, settings.CancelMsg:
		m.currentView = ViewDaily
		return m, nil

	case settings.SavedMsg:
		m.currentView = ViewDaily
		return m, m.saveSettings(msg)

	case chat.SendMsg:
		return m, m.sendChat(msg.Prompt)

	case chat.CloseMsg, recommendations.BackMsg:
		m.currentView = ViewDaily
		return m, nil

	case recommendations.RefreshMsg:
		return m, m.requestRecommendations()

	case recommendations.AddSuggestionMsg:
		return m, m.addSuggestion(msg.Todo, msg.Date)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg)

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case mailFetchedMsg:
		return m, m.uploadAttachments(msg)

	case snapshotSavedMsg:
		if msg.err != nil {
			m.log.Warnw("saving snapshot failed", "error", msg.err)
		}
		return m, nil

	case secretSavedMsg:
		if msg.err != nil {
			m.log.Warnw("saving credential failed", "key", msg.key, "error", msg.err)
			m.setStatus(fmt.Sprintf("Could not store %s: %v", msg.key, msg.err), true)
		}
		return m, nil

	case importRecordedMsg:
		if msg.err != nil {
			m.log.Warnw("recording mail import failed", "file", msg.filename, "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.currentView == ViewDaily || m.currentView == ViewBrief || m.currentView == ViewHelp {
			m.status = ""
			if next, cmd, handled := m.handleGlobalKey(msg); handled {
				return next, cmd
			}
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that switch views or act on the day.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch m.currentView {
	case ViewHelp:
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
		}
		return m, nil, true

	case ViewBrief:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Quit) {
			m.currentView = ViewDaily
		}
		return m, nil, true
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit(), true

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		return m, m.openCommand(""), true

	case key.Matches(msg, m.keys.Upload):
		return m, m.openCommand("upload "), true

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchSelectedDate(), true

	case key.Matches(msg, m.keys.PrevDay):
		return m, m.changeDate(model.AddDays(m.date, -1)), true

	case key.Matches(msg, m.keys.NextDay):
		return m, m.changeDate(model.AddDays(m.date, 1)), true

	case key.Matches(msg, m.keys.Today):
		return m, m.changeDate(m.planner.Today()), true

	case key.Matches(msg, m.keys.New):
		m.currentView = ViewComposer
		return m, m.composer.Start(m.date), true

	case key.Matches(msg, m.keys.Settings):
		return m, m.openSettings(), true

	case key.Matches(msg, m.keys.Chat):
		m.currentView = ViewChat
		return m, m.chat.Focus(), true

	case key.Matches(msg, m.keys.Recommendations):
		m.currentView = ViewRecommendations
		if _, ok := m.planner.Recommendations(); !ok {
			return m, m.requestRecommendations(), true
		}
		return m, nil, true

	case key.Matches(msg, m.keys.CarryForward):
		return m, m.carryForward(""), true

	case key.Matches(msg, m.keys.ImportMail):
		return m, m.importMail(), true
	}

	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDaily:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewComposer:
		m.composer, cmd = m.composer.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	case ViewChat:
		m.chat, cmd = m.chat.Update(msg)
	case ViewRecommendations:
		m.recs, cmd = m.recs.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// afterApply reacts to a gateway result that has been folded into the
// store.
func (m Model) afterApply(msg tea.Msg, out appsync.Outcome) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if out.Status != "" {
		m.setStatus(out.Status, out.IsError)
	}
	if out.Refresh != "" {
		cmds = append(cmds, m.gateway.FetchTasks(m.planner.UserID(), out.Refresh))
	}
	if out.Changed {
		m.refreshTasks()
		cmds = append(cmds, m.saveSnapshot())
	}

	switch msg := msg.(type) {
	case appsync.TaskCreatedMsg:
		if msg.Err == nil {
			m.taskList.Select(msg.Task.ID)
			m.setStatus("Added "+msg.Task.Title, false)
		}

	case appsync.TasksFetchedMsg:
		if msg.Background && m.refresher != nil {
			cmds = append(cmds, m.refresher.WaitForNextResult())
		}

	case appsync.UploadedMsg:
		if att, ok := m.pendingImports[msg.Ref]; ok && msg.Ref != "" {
			delete(m.pendingImports, msg.Ref)
			if msg.Err == nil {
				cmds = append(cmds, m.recordImport(att))
			}
		}

	case appsync.RecommendationsMsg:
		if set, ok := m.planner.Recommendations(); ok {
			m.recs.SetRecommendations(set)
		} else {
			m.recs.SetLoading(false)
		}

	case appsync.GoalSavedMsg:
		if out.Changed {
			cmds = append(cmds, m.fetchSelectedDate())
			if m.refresher != nil {
				m.refresher.SetTarget(m.planner.UserID(), m.date)
			}
			if a, ok := m.planner.Availability(); ok {
				cmds = append(cmds, m.gateway.SaveAvailability(m.planner.UserID(), a))
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Daily Planner", m.daySummary())
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.status, m.statusErr)

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDaily:
		return m.taskList.View()
	case ViewComposer:
		return m.composer.View()
	case ViewSettings:
		return m.settings.View()
	case ViewChat:
		return m.chat.View()
	case ViewRecommendations:
		return m.recs.View()
	case ViewBrief:
		return m.brief
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// daySummary describes the selected date for the header.
func (m Model) daySummary() string {
	summary := m.date
	if m.date == m.planner.Today() {
		summary += " (today)"
	}

	summary += fmt.Sprintf(" · %d tasks", m.taskList.Len())
	if remaining, ok := m.planner.RemainingMinutes(m.date); ok {
		summary += fmt.Sprintf(" · %d min left", remaining)
	}
	if m.planner.UserID() == "" {
		summary += " · offline"
	}
	return summary
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewComposer, ViewSettings:
		return "enter next | esc cancel"
	case ViewChat:
		return "enter send | pgup/pgdn scroll | esc close"
	case ViewRecommendations:
		return "j/k select | enter add as task | r refresh | esc back"
	case ViewBrief:
		return "esc back"
	default:
		return "q quit | ? help | n new | x toggle | h/l day | g ideas | c chat | s settings"
	}
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusErr = isError
}

// refreshTasks re-reads the selected date from the store.
func (m *Model) refreshTasks() {
	m.taskList.SetTasks(m.date, m.planner.TasksForDate(m.date))
}

// refreshChat re-reads the transcript from the store.
func (m *Model) refreshChat() {
	m.chat.SetMessages(m.planner.Chat(), m.thinking > 0)
}

func (m *Model) openCommand(prefix string) tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewCommand
	return m.commandView.Focus(prefix)
}

func (m *Model) quit() tea.Cmd {
	if m.refresher != nil {
		m.refresher.Stop()
	}
	return tea.Quit
}
