package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/production-board/internal/ical"
)

var ErrImportNotFound = errors.New("staged import not found")

// StagedImport is a parsed calendar file waiting for the user's
// confirmation.
type StagedImport struct {
	ID      string       `json:"id"`
	UserID  string       `json:"user_id"`
	Events  []ical.Event `json:"events"`
	Skipped int          `json:"skipped"`
}

type ImportStager interface {
	StageImport(ctx context.Context, imp *StagedImport, ttl time.Duration) error

	// PeekImport returns the batch and leaves it staged.
	PeekImport(ctx context.Context, id string) (*StagedImport, error)

	// TakeImport returns the batch and forgets it, so a batch is inserted at
	// most once.
	TakeImport(ctx context.Context, id string) (*StagedImport, error)
}
