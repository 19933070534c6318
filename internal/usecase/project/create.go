package project

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/domain/client"
	domainWS "github.com/BruksfildServices01/production-board/internal/domain/workspace"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

// ======================================================
// INPUT
// ======================================================

type CreateProjectInput struct {
	SessionID string
	Viewer    *models.Profile

	Title     string
	Brief     string
	StartDate string
	EndDate   string

	ClientID string
	// NewClient, when it carries a name, is inserted first and linked.
	NewClient *models.Client

	ColumnID           string
	ResponsibleUserIDs []string
	UploadLink         string
}

// ======================================================
// USE CASE
// ======================================================

type CreateProject struct {
	repo     board.Repository
	clients  client.Repository
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewCreateProject(
	repo board.Repository,
	clients client.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *CreateProject {
	return &CreateProject{
		repo:     repo,
		clients:  clients,
		sessions: sessions,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateProject) Execute(ctx context.Context, in CreateProjectInput) (*models.Project, error) {

	// --------------------------------------------------
	// 1. Form checks
	// --------------------------------------------------
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, httperr.ErrValidation("title_required")
	}
	if in.ColumnID == "" {
		return nil, httperr.ErrValidation("column_required")
	}

	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Target stage
	// --------------------------------------------------
	snap, err := uc.sessions.Open(ctx, workspace.OpenInput{
		SessionID: in.SessionID,
		UserID:    in.Viewer.ID,
	})
	if err != nil {
		return nil, err
	}

	col, ok := snap.Board.ColumnByID(in.ColumnID)
	if !ok {
		return nil, httperr.ErrValidation("column_not_found")
	}

	// --------------------------------------------------
	// 3. Inline client
	// --------------------------------------------------
	clientID := in.ClientID
	var created *models.Client
	if in.NewClient != nil && strings.TrimSpace(in.NewClient.Name) != "" {
		c := *in.NewClient
		c.ID = ""
		c.OwnerID = in.Viewer.ID
		if err := uc.clients.CreateClient(ctx, &c); err != nil {
			return nil, err
		}
		created = &c
		clientID = c.ID
	}

	// --------------------------------------------------
	// 4. Insert
	// --------------------------------------------------
	responsible := in.ResponsibleUserIDs
	if responsible == nil {
		responsible = []string{}
	}

	p := &models.Project{
		Title:              title,
		Brief:              in.Brief,
		StartDate:          start,
		EndDate:            end,
		ClientID:           clientID,
		Stage:              col.Title,
		ResponsibleUserIDs: responsible,
		Checklist:          []models.ChecklistItem{},
		UploadLink:         strings.TrimSpace(in.UploadLink),
		OwnerID:            in.Viewer.ID,
	}

	if err := uc.repo.CreateProject(ctx, p); err != nil {
		return nil, err
	}

	uc.sessions.Merge(ctx, in.SessionID, func(s *domainWS.Snapshot) {
		if created != nil {
			s.UpsertClient(*created)
		}
		s.AddProject(*p)
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Viewer.ID),
		Action:   "project_created",
		Entity:   "project",
		EntityID: audit.Ptr(p.ID),
		Metadata: map[string]any{"stage": p.Stage, "client_id": p.ClientID},
	})

	return p, nil
}
