package project

import (
	"context"
	"log"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/infra/generative"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

type GenerateKind string

const (
	GenerateChecklist GenerateKind = "checklist"
	GenerateScript    GenerateKind = "script"
	GenerateThumbnail GenerateKind = "thumbnail"
)

// ThumbnailProcessor turns raw model output into the stored thumbnail value.
type ThumbnailProcessor interface {
	Process(ctx context.Context, projectID string, raw []byte) (string, error)
}

type GenerateInput struct {
	SessionID string
	Viewer    *models.Profile
	ProjectID string
	Kind      GenerateKind
}

// Generate drafts content for a project and saves it in place of the
// current value.
type Generate struct {
	repo       board.Repository
	generator  generative.Generator
	thumbnails ThumbnailProcessor
	sessions   *workspace.Sessions
	audit      *audit.Dispatcher
}

func NewGenerate(
	repo board.Repository,
	generator generative.Generator,
	thumbnails ThumbnailProcessor,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *Generate {
	return &Generate{
		repo:       repo,
		generator:  generator,
		thumbnails: thumbnails,
		sessions:   sessions,
		audit:      audit,
	}
}

func (uc *Generate) Execute(ctx context.Context, in GenerateInput) (*models.Project, error) {
	p, err := editable(ctx, uc.repo, in.Viewer, in.ProjectID)
	if err != nil {
		return nil, err
	}

	switch in.Kind {
	case GenerateChecklist:
		// an empty list is the degraded result, not an error
		p.Checklist = uc.generator.GenerateChecklist(ctx, p.Title, p.Brief)

	case GenerateScript:
		script, err := uc.generator.GenerateScript(ctx, p.Title, p.Brief)
		if err != nil {
			log.Printf("generate script %s: %v", p.ID, err)
			return nil, httperr.ErrGenerative("script_generation_failed", err)
		}
		p.Script = script

	case GenerateThumbnail:
		img, err := uc.generator.GenerateImage(ctx, p.Title)
		if err != nil {
			log.Printf("generate image %s: %v", p.ID, err)
			return nil, httperr.ErrGenerative("image_generation_failed", err)
		}
		thumb, err := uc.thumbnails.Process(ctx, p.ID, img.Data)
		if err != nil {
			return nil, httperr.ErrGenerative("image_processing_failed", err)
		}
		p.Thumbnail = thumb

	default:
		return nil, httperr.ErrValidation("invalid_generation_kind")
	}

	if err := uc.repo.UpdateProject(ctx, p); err != nil {
		return nil, err
	}

	mergeProject(ctx, uc.sessions, in.SessionID, *p)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Viewer.ID),
		Action:   "project_" + string(in.Kind) + "_generated",
		Entity:   "project",
		EntityID: audit.Ptr(p.ID),
	})

	return p, nil
}
