package workspace

import (
	"context"
	"errors"
)

var ErrNotCached = errors.New("workspace not cached")

// Store keeps snapshots between requests of the same session.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	Save(ctx context.Context, s *Snapshot) error
	Delete(ctx context.Context, sessionID string) error

	// Generation is the store-wide write counter. A snapshot taken at an
	// older generation is stale for every session, not just the writer's.
	Generation(ctx context.Context) (int64, error)
	// Bump records a write and returns the new generation.
	Bump(ctx context.Context) (int64, error)
}
