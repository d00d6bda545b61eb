package store

import (
	"context"

	"github.com/nhle/daily-planner/internal/planner"
)

// Store persists planner snapshots between runs.
type Store interface {
	// SaveSnapshot replaces the stored state with snap.
	SaveSnapshot(ctx context.Context, snap planner.Snapshot) error

	// LoadSnapshot returns the last saved state. found is false when
	// nothing has been saved yet.
	LoadSnapshot(ctx context.Context) (snap planner.Snapshot, found bool, err error)

	// HasImported reports whether a mail attachment was already uploaded.
	HasImported(ctx context.Context, messageID, filename string) (bool, error)

	// MarkImported records a mail attachment as uploaded.
	MarkImported(ctx context.Context, messageID, filename string) error

	Close() error
}
