package app

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/daily-planner/internal/planner"
	"github.com/nhle/daily-planner/internal/store"
)

const persistTimeout = 5 * time.Second

// snapshotSavedMsg reports the outcome of a background save.
type snapshotSavedMsg struct{ err error }

// secretSavedMsg reports the outcome of storing a credential.
type secretSavedMsg struct {
	key string
	err error
}

// snapshotWriter serializes saves and drops snapshots older than the
// last one written, since save commands may finish out of order.
type snapshotWriter struct {
	mu      sync.Mutex
	store   store.Store
	next    uint64
	written uint64
}

func (w *snapshotWriter) ticket() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.next++
	return w.next
}

func (w *snapshotWriter) write(seq uint64, snap planner.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq <= w.written {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := w.store.SaveSnapshot(ctx, snap); err != nil {
		return err
	}
	w.written = seq
	return nil
}

// saveSnapshot captures the planner state now and writes it in the
// background. Without a persistent store it does nothing.
func (m *Model) saveSnapshot() tea.Cmd {
	if m.writer == nil {
		return nil
	}
	snap := m.planner.Snapshot()
	seq := m.writer.ticket()
	w := m.writer
	return func() tea.Msg {
		return snapshotSavedMsg{err: w.write(seq, snap)}
	}
}

func (m *Model) storeSecret(key, value string) tea.Cmd {
	if m.saveSecret == nil {
		return nil
	}
	save := m.saveSecret
	return func() tea.Msg {
		return secretSavedMsg{key: key, err: save(key, value)}
	}
}
