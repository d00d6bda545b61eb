// Package sync connects the planner store to the planning service. Each
// remote intent runs as a tea.Cmd; Apply folds the result message back into
// the store on the update goroutine.
package sync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/daily-planner/internal/api"
	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/planner"
)

// defaultRequestTimeout bounds a single call to the planning service unless
// WithTimeout sets another limit.
const defaultRequestTimeout = 30 * time.Second

// Client is the subset of the planning service API the gateway uses.
type Client interface {
	ListTasks(ctx context.Context, userID, date string) ([]model.Task, error)
	CreateTask(ctx context.Context, userID string, in model.TaskInput) (model.Task, error)
	UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	UploadPDF(ctx context.Context, userID, date, filename string, content io.Reader) (api.UploadResult, error)
	CarryForward(ctx context.Context, userID, fromDate, toDate string) ([]model.Task, error)
	Recommendations(ctx context.Context, userID, date string, goal model.Goal) (model.RecommendationSet, error)
	SaveAvailability(ctx context.Context, userID string, a model.Availability) (model.Availability, error)
	Onboard(ctx context.Context, profile model.Profile, goal model.Goal) (api.User, error)
}

// Outcome is what the UI should do after a result has been applied.
type Outcome struct {
	// Status is a one-line message for the status bar; empty means none.
	Status  string
	IsError bool

	// Refresh names a date whose tasks should be fetched again.
	Refresh string

	// Changed reports whether the store was mutated.
	Changed bool
}

// Gateway issues planning service calls and applies their results.
type Gateway struct {
	client       Client
	log          *zap.SugaredLogger
	discardStale bool
	timeout      time.Duration

	seq         atomic.Uint64
	lastApplied uint64
}

// New creates a gateway. With discardStale set, a task fetch that was
// issued before the most recently applied one is dropped on arrival.
func New(client Client, log *zap.SugaredLogger, discardStale bool) *Gateway {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Gateway{client: client, log: log, discardStale: discardStale, timeout: defaultRequestTimeout}
}

// WithTimeout sets the per-call deadline. Non-positive values keep the
// current one.
func (g *Gateway) WithTimeout(d time.Duration) *Gateway {
	if d > 0 {
		g.timeout = d
	}
	return g
}

// Timeout returns the per-call deadline.
func (g *Gateway) Timeout() time.Duration { return g.timeout }

// Message turns an error into user-facing text. Service errors carry the
// response body; anything else uses the error string.
func Message(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// FetchTasks fetches the user's tasks for date.
func (g *Gateway) FetchTasks(userID, date string) tea.Cmd {
	seq := g.seq.Add(1)
	return func() tea.Msg {
		return g.fetch(seq, userID, date, false)
	}
}

func (g *Gateway) fetch(seq uint64, userID, date string, background bool) TasksFetchedMsg {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	tasks, err := g.client.ListTasks(ctx, userID, date)
	return TasksFetchedMsg{Seq: seq, Date: date, Tasks: tasks, Err: err, Background: background}
}

// UploadPDF uploads content as filename for task extraction on date.
func (g *Gateway) UploadPDF(userID, date, filename string, content []byte) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()

		res, err := g.client.UploadPDF(ctx, userID, date, filename, bytes.NewReader(content))
		return UploadedMsg{Date: date, Filename: filename, Result: res, Err: err}
	}
}

// CarryForward moves incomplete tasks from fromDate to toDate. An empty
// toDate lets the service pick the next day.
func (g *Gateway) CarryForward(userID, fromDate, toDate string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()

		moved, err := g.client.CarryForward(ctx, userID, fromDate, toDate)
		return CarriedForwardMsg{FromDate: fromDate, ToDate: toDate, Moved: moved, Err: err}
	}
}

// CreateTask creates a task on the service. Nothing is added locally until
// the service confirms it.
func (g *Gateway) CreateTask(userID string, in model.TaskInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()

		task, err := g.client.CreateTask(ctx, userID, in)
		return TaskCreatedMsg{Input: in, Task: task, Err: err}
	}
}

// SetTaskStatus asks the service to change a task's status.
func (g *Gateway) SetTaskStatus(id string, status model.TaskStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()

		task, err := g.client.UpdateTask(ctx, id, model.TaskPatch{Status: &status})
		return TaskStatusMsg{ID: id, Status: status, Task: task, Err: err}
	}
}

// DeleteTask deletes a task on the service.
func (g *Gateway) DeleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()

		return TaskDeletedMsg{ID: id, Err: g.client.DeleteTask(ctx, id)}
	}
}

// FetchRecommendations requests suggestions for date based on goal.
func (g *Gateway) FetchRecommendations(userID, date string, goal model.Goal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()

		set, err := g.client.Recommendations(ctx, userID, date, goal)
		return RecommendationsMsg{Date: date, Set: set, Err: err}
	}
}

// SaveAvailability mirrors the local availability to the service.
func (g *Gateway) SaveAvailability(userID string, a model.Availability) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()

		saved, err := g.client.SaveAvailability(ctx, userID, a)
		return AvailabilitySavedMsg{Availability: saved, Err: err}
	}
}

// SaveGoal onboards the profile and goal, creating the user if needed.
func (g *Gateway) SaveGoal(profile model.Profile, goal model.Goal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()

		user, err := g.client.Onboard(ctx, profile, goal)
		return GoalSavedMsg{User: user, Err: err}
	}
}

// Apply folds a gateway result message into s. Messages the gateway does
// not own are ignored and report ok = false.
func (g *Gateway) Apply(s *planner.Store, msg tea.Msg) (out Outcome, ok bool) {
	switch msg := msg.(type) {
	case TasksFetchedMsg:
		return g.applyFetched(s, msg), true

	case UploadedMsg:
		if msg.Err != nil {
			g.log.Warnw("uploading pdf failed", "file", msg.Filename, "error", msg.Err)
			return Outcome{Status: Message(msg.Err), IsError: true}, true
		}
		return Outcome{
			Status:  fmt.Sprintf("Created %d tasks from %s", msg.Result.ParsedTaskCount, msg.Result.Filename),
			Refresh: msg.Date,
		}, true

	case CarriedForwardMsg:
		if msg.Err != nil {
			g.log.Warnw("carry forward failed", "from", msg.FromDate, "error", msg.Err)
			return Outcome{Status: Message(msg.Err), IsError: true}, true
		}
		return Outcome{
			Status:  fmt.Sprintf("Moved %d tasks", len(msg.Moved)),
			Refresh: carryTarget(msg),
		}, true

	case TaskCreatedMsg:
		if msg.Err != nil {
			g.log.Warnw("creating task failed", "title", msg.Input.Title, "error", msg.Err)
			return Outcome{}, true
		}
		s.AppendTask(msg.Task)
		return Outcome{Changed: true}, true

	case TaskStatusMsg:
		if msg.Err != nil {
			g.log.Warnw("updating task status failed", "task", msg.ID, "error", msg.Err)
			return Outcome{}, true
		}
		status := msg.Status
		if msg.Task.Status != "" {
			status = msg.Task.Status
		}
		return Outcome{Changed: s.PatchTaskStatus(msg.ID, status)}, true

	case TaskDeletedMsg:
		if msg.Err != nil {
			g.log.Warnw("deleting task failed", "task", msg.ID, "error", msg.Err)
			return Outcome{}, true
		}
		return Outcome{Changed: s.RemoveTask(msg.ID)}, true

	case RecommendationsMsg:
		if msg.Err != nil {
			g.log.Warnw("fetching recommendations failed", "date", msg.Date, "error", msg.Err)
			return Outcome{Status: Message(msg.Err), IsError: true}, true
		}
		s.SetRecommendations(msg.Set)
		return Outcome{Changed: true}, true

	case AvailabilitySavedMsg:
		if msg.Err != nil {
			g.log.Warnw("saving availability failed", "error", msg.Err)
		}
		return Outcome{}, true

	case GoalSavedMsg:
		if msg.Err != nil {
			g.log.Warnw("saving goal failed", "error", msg.Err)
			return Outcome{}, true
		}
		if s.UserID() == "" && msg.User.ID != "" {
			s.SetUserID(msg.User.ID)
			return Outcome{Status: "Signed in as " + msg.User.Profile.Email, Changed: true}, true
		}
		return Outcome{}, true
	}

	return Outcome{}, false
}

func (g *Gateway) applyFetched(s *planner.Store, msg TasksFetchedMsg) Outcome {
	if msg.Err != nil {
		g.log.Warnw("fetching tasks failed", "date", msg.Date, "error", msg.Err)
		return Outcome{}
	}
	if g.discardStale && msg.Seq < g.lastApplied {
		g.log.Debugw("discarding stale task fetch", "date", msg.Date, "seq", msg.Seq, "latest", g.lastApplied)
		return Outcome{}
	}
	if msg.Seq > g.lastApplied {
		g.lastApplied = msg.Seq
	}
	return Outcome{Changed: s.ReconcileFetched(msg.Date, msg.Tasks)}
}

// carryTarget is the date carried tasks landed on.
func carryTarget(msg CarriedForwardMsg) string {
	if msg.ToDate != "" {
		return msg.ToDate
	}
	if len(msg.Moved) > 0 {
		return msg.Moved[0].ScheduledDate
	}
	return model.AddDays(msg.FromDate, 1)
}
