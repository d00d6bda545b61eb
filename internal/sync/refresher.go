package sync

import (
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Refresher periodically re-fetches the tasks of the date the user is
// looking at. It never touches the store: results are delivered as
// TasksFetchedMsg with Background set and applied by Gateway.Apply.
type Refresher struct {
	gateway  *Gateway
	interval time.Duration

	resultCh  chan TasksFetchedMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      gosync.Mutex
	running bool
	userID  string
	date    string
}

// NewRefresher creates a refresher that fetches every interval.
func NewRefresher(g *Gateway, interval time.Duration) *Refresher {
	return &Refresher{
		gateway:   g,
		interval:  interval,
		resultCh:  make(chan TasksFetchedMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// SetTarget changes the user and date fetched on the next tick.
func (r *Refresher) SetTarget(userID, date string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.userID = userID
	r.date = date
}

// Start launches the refresh loop and returns a command that waits for
// the first result. A non-positive interval disables the refresher and
// Start returns nil.
func (r *Refresher) Start() tea.Cmd {
	if r.interval <= 0 {
		return nil
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.mu.Unlock()

	go r.loop()

	return r.WaitForNextResult()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	close(r.stopCh)
	r.running = false
}

// Trigger requests an immediate refresh without waiting for the ticker.
func (r *Refresher) Trigger() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
		// A refresh is already pending.
	}
}

func (r *Refresher) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.refresh()
		case <-r.triggerCh:
			r.refresh()
		}
	}
}

func (r *Refresher) refresh() {
	r.mu.Lock()
	userID, date := r.userID, r.date
	r.mu.Unlock()

	if userID == "" || date == "" {
		return
	}

	seq := r.gateway.seq.Add(1)
	msg := r.gateway.fetch(seq, userID, date, true)

	select {
	case r.resultCh <- msg:
	default:
		// Drop if the UI is not keeping up.
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next background
// fetch. Call it again after handling each background TasksFetchedMsg.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-r.resultCh:
			return msg
		case <-r.stopCh:
			return nil
		}
	}
}
