package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/production-board/internal/domain/access"
	"github.com/BruksfildServices01/production-board/internal/domain/appointment"
	"github.com/BruksfildServices01/production-board/internal/domain/workspace"
)

const (
	workspaceTTL = 24 * time.Hour

	prefixWorkspace = "board:ws:"
	prefixImport    = "board:import:"
	prefixRevoked   = "board:revoked:"

	keyGeneration = "board:generation"
)

var errMiss = errors.New("cache miss")

type backend interface {
	get(ctx context.Context, key string) ([]byte, error)
	set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	del(ctx context.Context, key string) error
	// take reads and deletes key in one step.
	take(ctx context.Context, key string) ([]byte, error)

	// counters never expire; a missing counter reads as zero.
	counter(ctx context.Context, key string) (int64, error)
	incr(ctx context.Context, key string) (int64, error)
}

// Store is the session-scoped state holder: workspace snapshots, staged
// calendar imports and revoked sessions.
type Store struct {
	b backend
}

func (s *Store) getJSON(ctx context.Context, key string, out any) error {
	raw, err := s.b.get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Store) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.b.set(ctx, key, raw, ttl)
}

// --------------------------------------------------
// Workspace snapshots
// --------------------------------------------------

func (s *Store) Load(ctx context.Context, sessionID string) (*workspace.Snapshot, error) {
	var snap workspace.Snapshot
	if err := s.getJSON(ctx, prefixWorkspace+sessionID, &snap); err != nil {
		if errors.Is(err, errMiss) {
			return nil, workspace.ErrNotCached
		}
		return nil, err
	}
	return &snap, nil
}

func (s *Store) Save(ctx context.Context, snap *workspace.Snapshot) error {
	return s.setJSON(ctx, prefixWorkspace+snap.SessionID, snap, workspaceTTL)
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.b.del(ctx, prefixWorkspace+sessionID)
}

func (s *Store) Generation(ctx context.Context) (int64, error) {
	return s.b.counter(ctx, keyGeneration)
}

func (s *Store) Bump(ctx context.Context) (int64, error) {
	return s.b.incr(ctx, keyGeneration)
}

// --------------------------------------------------
// Staged imports
// --------------------------------------------------

func (s *Store) StageImport(ctx context.Context, imp *appointment.StagedImport, ttl time.Duration) error {
	return s.setJSON(ctx, prefixImport+imp.ID, imp, ttl)
}

func (s *Store) PeekImport(ctx context.Context, id string) (*appointment.StagedImport, error) {
	var imp appointment.StagedImport
	if err := s.getJSON(ctx, prefixImport+id, &imp); err != nil {
		if errors.Is(err, errMiss) {
			return nil, appointment.ErrImportNotFound
		}
		return nil, err
	}
	return &imp, nil
}

// TakeImport is single-use: concurrent confirms of one preview see it once.
func (s *Store) TakeImport(ctx context.Context, id string) (*appointment.StagedImport, error) {
	raw, err := s.b.take(ctx, prefixImport+id)
	if err != nil {
		if errors.Is(err, errMiss) {
			return nil, appointment.ErrImportNotFound
		}
		return nil, err
	}

	var imp appointment.StagedImport
	if err := json.Unmarshal(raw, &imp); err != nil {
		return nil, fmt.Errorf("decode import %s: %w", id, err)
	}
	return &imp, nil
}

// --------------------------------------------------
// Revoked sessions
// --------------------------------------------------

func (s *Store) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.b.set(ctx, prefixRevoked+sessionID, []byte("1"), ttl)
}

func (s *Store) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	_, err := s.b.get(ctx, prefixRevoked+sessionID)
	if errors.Is(err, errMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var (
	_ workspace.Store          = (*Store)(nil)
	_ appointment.ImportStager = (*Store)(nil)
	_ access.Revoker           = (*Store)(nil)
)
