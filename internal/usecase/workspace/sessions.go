package workspace

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/production-board/internal/domain/appointment"
	"github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/domain/client"
	"github.com/BruksfildServices01/production-board/internal/domain/profile"
	domain "github.com/BruksfildServices01/production-board/internal/domain/workspace"
	"github.com/BruksfildServices01/production-board/internal/models"
)

// ======================================================
// DEPENDENCIES
// ======================================================

type Repositories struct {
	Boards       board.Repository
	Clients      client.Repository
	Profiles     profile.Repository
	Appointments appointment.Repository
}

// Sessions opens, caches and closes the per-session workspace snapshot.
type Sessions struct {
	repos Repositories
	store domain.Store
	now   func() time.Time
}

func NewSessions(repos Repositories, store domain.Store) *Sessions {
	return &Sessions{
		repos: repos,
		store: store,
		now:   time.Now,
	}
}

// ======================================================
// OPEN
// ======================================================

type OpenInput struct {
	SessionID string
	UserID    string

	// Refresh discards the cached snapshot and re-fetches everything.
	Refresh bool
}

// Open returns the session's snapshot. A cached one is reused only while no
// write has happened anywhere since it was taken.
func (s *Sessions) Open(ctx context.Context, in OpenInput) (*domain.Snapshot, error) {
	gen, err := s.store.Generation(ctx)
	if err != nil {
		log.Printf("workspace generation: %v", err)
		in.Refresh = true
	}

	if !in.Refresh {
		snap, err := s.store.Load(ctx, in.SessionID)
		switch {
		case err == nil && snap.UserID == in.UserID && snap.Generation == gen:
			return snap, nil
		case err != nil && !errors.Is(err, domain.ErrNotCached):
			log.Printf("workspace cache load: %v", err)
		}
	}

	// gen was read before the fetch: a write racing it only costs a refetch
	snap, err := s.fetch(ctx, in.SessionID, in.UserID)
	if err != nil {
		return nil, err
	}
	snap.Generation = gen

	s.save(ctx, snap)
	return snap, nil
}

func (s *Sessions) fetch(ctx context.Context, sessionID, userID string) (*domain.Snapshot, error) {
	var (
		columns      []models.Column
		projects     []models.Project
		clients      []models.Client
		users        []models.Profile
		appointments []models.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		columns, err = s.columns(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.repos.Boards.ListProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = s.repos.Clients.ListClients(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.repos.Profiles.ListProfiles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		appointments, err = s.repos.Appointments.ListAppointments(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		SessionID:    sessionID,
		UserID:       userID,
		Board:        board.Build(columns, projects),
		Projects:     projects,
		Clients:      clients,
		Users:        users,
		Appointments: appointments,
		LoadedAt:     s.now(),
	}, nil
}

// columns seeds the default stages the first time the table is read empty.
func (s *Sessions) columns(ctx context.Context) ([]models.Column, error) {
	cols, err := s.repos.Boards.ListColumns(ctx)
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		return cols, nil
	}

	cols = board.DefaultColumns()
	if err := s.repos.Boards.CreateColumns(ctx, cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// ======================================================
// RECONCILE
// ======================================================

// Reconcile re-reads columns and projects and rebuilds the board, dropping
// whatever optimistic state disagrees with the store.
func (s *Sessions) Reconcile(ctx context.Context, snap *domain.Snapshot) error {
	cols, err := s.repos.Boards.ListColumns(ctx)
	if err != nil {
		return err
	}
	projects, err := s.repos.Boards.ListProjects(ctx)
	if err != nil {
		return err
	}

	snap.Board = board.Build(cols, projects)
	snap.Projects = projects
	snap.LoadedAt = s.now()

	s.save(ctx, snap)
	return nil
}

// ======================================================
// MERGE / SAVE / CLOSE
// ======================================================

// Merge records a confirmed write, which makes every other session's
// snapshot stale, and folds the change into the writer's own snapshot. A
// session without a cached snapshot picks the change up on its next open.
func (s *Sessions) Merge(ctx context.Context, sessionID string, apply func(*domain.Snapshot)) {
	gen := s.Invalidate(ctx)
	if sessionID == "" {
		return
	}

	snap, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotCached) {
			log.Printf("workspace cache load: %v", err)
		}
		return
	}

	apply(snap)
	advance(snap, gen)
	s.save(ctx, snap)
}

// Commit records writes already applied to snap, as a board drag does.
func (s *Sessions) Commit(ctx context.Context, snap *domain.Snapshot) {
	advance(snap, s.Invalidate(ctx))
	s.save(ctx, snap)
}

// Invalidate bumps the store generation after a write that no snapshot
// merges. It returns the new generation, or zero when the counter is
// unreachable.
func (s *Sessions) Invalidate(ctx context.Context) int64 {
	gen, err := s.store.Bump(ctx)
	if err != nil {
		log.Printf("workspace generation bump: %v", err)
		return 0
	}
	return gen
}

// advance keeps snap current across its own write, unless another write
// slipped in since it was taken.
func advance(snap *domain.Snapshot, gen int64) {
	if gen > 0 && snap.Generation == gen-1 {
		snap.Generation = gen
	}
}

// Save stores an optimistic edit.
func (s *Sessions) Save(ctx context.Context, snap *domain.Snapshot) {
	s.save(ctx, snap)
}

func (s *Sessions) save(ctx context.Context, snap *domain.Snapshot) {
	if err := s.store.Save(ctx, snap); err != nil {
		log.Printf("workspace cache save: %v", err)
	}
}

// Close drops the snapshot on sign-out.
func (s *Sessions) Close(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}
