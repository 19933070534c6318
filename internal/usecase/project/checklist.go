package project

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

const defaultItemText = "Nova tarefa"

type ChecklistAction string

const (
	ChecklistAdd    ChecklistAction = "add"
	ChecklistToggle ChecklistAction = "toggle"
	ChecklistEdit   ChecklistAction = "edit"
	ChecklistDelete ChecklistAction = "delete"
)

type EditChecklistInput struct {
	SessionID string
	Viewer    *models.Profile
	ProjectID string

	Action ChecklistAction
	ItemID string
	Text   string
}

// EditChecklist applies one item-level change and saves the whole list.
type EditChecklist struct {
	repo     board.Repository
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewEditChecklist(
	repo board.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *EditChecklist {
	return &EditChecklist{
		repo:     repo,
		sessions: sessions,
		audit:    audit,
	}
}

func (uc *EditChecklist) Execute(ctx context.Context, in EditChecklistInput) (*models.Project, error) {
	p, err := editable(ctx, uc.repo, in.Viewer, in.ProjectID)
	if err != nil {
		return nil, err
	}

	items := append([]models.ChecklistItem{}, p.Checklist...)

	if in.Action == ChecklistAdd {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			text = defaultItemText
		}
		items = append(items, models.ChecklistItem{
			ID:   "manual-" + uuid.NewString(),
			Text: text,
		})
	} else {
		idx := -1
		for i, it := range items {
			if it.ID == in.ItemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, httperr.ErrNotFound("checklist_item_not_found")
		}

		switch in.Action {
		case ChecklistToggle:
			items[idx].Completed = !items[idx].Completed
		case ChecklistEdit:
			items[idx].Text = in.Text
		case ChecklistDelete:
			items = append(items[:idx], items[idx+1:]...)
		default:
			return nil, httperr.ErrValidation("invalid_checklist_action")
		}
	}

	p.Checklist = items
	if err := uc.repo.UpdateProject(ctx, p); err != nil {
		return nil, err
	}

	mergeProject(ctx, uc.sessions, in.SessionID, *p)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Viewer.ID),
		Action:   "checklist_" + string(in.Action),
		Entity:   "project",
		EntityID: audit.Ptr(p.ID),
	})

	return p, nil
}

// ======================================================
// RESPONSIBLE USERS
// ======================================================

type ToggleResponsibleInput struct {
	SessionID string
	Viewer    *models.Profile
	ProjectID string
	UserID    string
}

type ToggleResponsible struct {
	repo     board.Repository
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewToggleResponsible(
	repo board.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *ToggleResponsible {
	return &ToggleResponsible{
		repo:     repo,
		sessions: sessions,
		audit:    audit,
	}
}

// Execute adds the user when absent and removes it when present.
func (uc *ToggleResponsible) Execute(ctx context.Context, in ToggleResponsibleInput) (*models.Project, error) {
	if in.UserID == "" {
		return nil, httperr.ErrValidation("user_required")
	}

	p, err := editable(ctx, uc.repo, in.Viewer, in.ProjectID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(p.ResponsibleUserIDs)+1)
	removed := false
	for _, id := range p.ResponsibleUserIDs {
		if id == in.UserID {
			removed = true
			continue
		}
		ids = append(ids, id)
	}
	if !removed {
		ids = append(ids, in.UserID)
	}
	p.ResponsibleUserIDs = ids

	if err := uc.repo.UpdateProject(ctx, p); err != nil {
		return nil, err
	}

	mergeProject(ctx, uc.sessions, in.SessionID, *p)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Viewer.ID),
		Action:   "project_responsible_toggled",
		Entity:   "project",
		EntityID: audit.Ptr(p.ID),
		Metadata: map[string]any{"user_id": in.UserID, "assigned": !removed},
	})

	return p, nil
}
