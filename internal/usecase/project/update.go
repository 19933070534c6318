package project

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/domain/access"
	"github.com/BruksfildServices01/production-board/internal/domain/board"
	domainWS "github.com/BruksfildServices01/production-board/internal/domain/workspace"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

// ======================================================
// UPDATE
// ======================================================

// UpdateProjectInput carries only the fields the form changed; nil means
// untouched. Stage is not editable here: only a board drag moves a project.
type UpdateProjectInput struct {
	SessionID string
	Viewer    *models.Profile
	ProjectID string

	Title      *string
	Brief      *string
	StartDate  *string
	EndDate    *string
	ClientID   *string
	Script     *string
	UploadLink *string

	ResponsibleUserIDs *[]string
}

type UpdateProject struct {
	repo     board.Repository
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewUpdateProject(
	repo board.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *UpdateProject {
	return &UpdateProject{
		repo:     repo,
		sessions: sessions,
		audit:    audit,
	}
}

func (uc *UpdateProject) Execute(ctx context.Context, in UpdateProjectInput) (*models.Project, error) {
	p, err := editable(ctx, uc.repo, in.Viewer, in.ProjectID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, httperr.ErrValidation("title_required")
		}
		p.Title = title
	}
	if in.Brief != nil {
		p.Brief = *in.Brief
	}
	if in.StartDate != nil {
		if p.StartDate, err = parseDate(*in.StartDate); err != nil {
			return nil, err
		}
	}
	if in.EndDate != nil {
		if p.EndDate, err = parseDate(*in.EndDate); err != nil {
			return nil, err
		}
	}
	if in.ClientID != nil {
		p.ClientID = *in.ClientID
	}
	if in.Script != nil {
		p.Script = *in.Script
	}
	if in.UploadLink != nil {
		p.UploadLink = strings.TrimSpace(*in.UploadLink)
	}
	if in.ResponsibleUserIDs != nil {
		p.ResponsibleUserIDs = append([]string{}, (*in.ResponsibleUserIDs)...)
	}

	if err := uc.repo.UpdateProject(ctx, p); err != nil {
		return nil, err
	}

	mergeProject(ctx, uc.sessions, in.SessionID, *p)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Viewer.ID),
		Action:   "project_updated",
		Entity:   "project",
		EntityID: audit.Ptr(p.ID),
	})

	return p, nil
}

// mergeProject replaces the cached copy and re-derives the column lists in
// case the stage moved.
func mergeProject(ctx context.Context, sessions *workspace.Sessions, sessionID string, p models.Project) {
	sessions.Merge(ctx, sessionID, func(s *domainWS.Snapshot) {
		s.ReplaceProject(p)
		s.Board = s.Board.Reassign(s.Projects)
	})
}

// ======================================================
// DELETE
// ======================================================

type DeleteProjectInput struct {
	SessionID string
	Viewer    *models.Profile
	ProjectID string
}

type DeleteProject struct {
	repo     board.Repository
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewDeleteProject(
	repo board.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *DeleteProject {
	return &DeleteProject{
		repo:     repo,
		sessions: sessions,
		audit:    audit,
	}
}

func (uc *DeleteProject) Execute(ctx context.Context, in DeleteProjectInput) error {
	p, err := uc.repo.GetProject(ctx, in.ProjectID)
	if err != nil {
		return err
	}
	if !access.CanDeleteProject(in.Viewer, p) {
		return httperr.ErrForbidden("project_forbidden")
	}

	if err := uc.repo.DeleteProject(ctx, p.ID); err != nil {
		return err
	}

	uc.sessions.Merge(ctx, in.SessionID, func(s *domainWS.Snapshot) {
		s.RemoveProject(p.ID)
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Viewer.ID),
		Action:   "project_deleted",
		Entity:   "project",
		EntityID: audit.Ptr(p.ID),
		Metadata: map[string]any{"title": p.Title},
	})

	return nil
}
