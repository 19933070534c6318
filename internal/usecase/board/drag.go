package board

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/domain/access"
	domain "github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/domain/visibility"
	domainWS "github.com/BruksfildServices01/production-board/internal/domain/workspace"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type DragInput struct {
	SessionID string
	Viewer    *models.Profile
	Drag      domain.Drag
}

type DragOutput struct {
	Board     domain.Board      `json:"board"`
	Mutations []domain.Mutation `json:"mutations"`

	// Reconciled is set when a write failed and the board was re-read from
	// the store.
	Reconciled bool `json:"reconciled"`
}

// ======================================================
// USE CASE
// ======================================================

type DragEnd struct {
	repo     domain.Repository
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewDragEnd(
	repo domain.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *DragEnd {
	return &DragEnd{
		repo:     repo,
		sessions: sessions,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *DragEnd) Execute(ctx context.Context, in DragInput) (*DragOutput, error) {

	// --------------------------------------------------
	// 1. Snapshot
	// --------------------------------------------------
	snap, err := uc.sessions.Open(ctx, workspace.OpenInput{
		SessionID: in.SessionID,
		UserID:    in.Viewer.ID,
	})
	if err != nil {
		return nil, err
	}

	if in.Drag.Type == domain.DragProject {
		if p, ok := snap.Project(in.Drag.DraggableID); ok && !access.CanEditProject(in.Viewer, &p) {
			return nil, httperr.ErrForbidden("project_not_visible")
		}
	}

	// --------------------------------------------------
	// 2. Optimistic apply
	// --------------------------------------------------
	res := domain.Apply(snap.Board, snap.Projects, in.Drag)
	if !res.Changed {
		return &DragOutput{Board: visibleBoard(snap, in.Viewer), Mutations: []domain.Mutation{}}, nil
	}

	snap.Board = res.Board
	snap.Projects = res.Projects
	uc.sessions.Save(ctx, snap)

	// --------------------------------------------------
	// 3. Persist
	// --------------------------------------------------
	muts := uc.persist(ctx, res.Mutations)
	if anyConfirmed(muts) {
		uc.sessions.Commit(ctx, snap)
	}

	out := &DragOutput{Mutations: muts}

	// --------------------------------------------------
	// 4. Reconcile on failure
	// --------------------------------------------------
	if anyFailed(muts) {
		if err := uc.sessions.Reconcile(ctx, snap); err != nil {
			log.Printf("board reconcile: %v", err)
		} else {
			out.Reconciled = true
		}
	}

	out.Board = visibleBoard(snap, in.Viewer)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Viewer.ID),
		Action:   auditAction(in.Drag.Type),
		Entity:   auditEntity(in.Drag.Type),
		EntityID: audit.Ptr(in.Drag.DraggableID),
		Metadata: muts,
	})

	return out, nil
}

// persist issues every write independently. Rank writes run concurrently and
// one failure never cancels the others.
func (uc *DragEnd) persist(ctx context.Context, muts []domain.Mutation) []domain.Mutation {
	out := make([]domain.Mutation, len(muts))
	copy(out, muts)

	var g errgroup.Group
	for i := range out {
		g.Go(func() error {
			// each goroutine owns out[i]
			err := uc.write(ctx, out[i])
			if err != nil {
				log.Printf("board %s %s: %v", out[i].Kind, out[i].TargetID, err)
				out[i].Status = domain.StatusFailed
				out[i].Error = err.Error()
				return nil
			}
			out[i].Status = domain.StatusConfirmed
			return nil
		})
	}

	_ = g.Wait()
	return out
}

func (uc *DragEnd) write(ctx context.Context, m domain.Mutation) error {
	switch m.Kind {
	case domain.KindColumnRank:
		return uc.repo.UpdateColumnOrder(ctx, m.TargetID, m.Rank)
	case domain.KindProjectStage:
		return uc.repo.UpdateProjectStage(ctx, m.TargetID, m.Stage)
	}
	return nil
}

// visibleBoard narrows the id lists to what the viewer may see.
func visibleBoard(snap *domainWS.Snapshot, viewer *models.Profile) domain.Board {
	filter := visibility.Filter{UserID: viewer.ID, Elevated: access.Elevated(viewer)}
	return snap.Board.Restrict(filter.Projects(snap.Projects))
}

func anyFailed(muts []domain.Mutation) bool {
	for _, m := range muts {
		if m.Status == domain.StatusFailed {
			return true
		}
	}
	return false
}

func anyConfirmed(muts []domain.Mutation) bool {
	for _, m := range muts {
		if m.Status == domain.StatusConfirmed {
			return true
		}
	}
	return false
}

func auditAction(t domain.DragType) string {
	if t == domain.DragColumn {
		return "columns_reordered"
	}
	return "project_stage_changed"
}

func auditEntity(t domain.DragType) string {
	if t == domain.DragColumn {
		return "column"
	}
	return "project"
}
