package client

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/production-board/internal/audit"
	domain "github.com/BruksfildServices01/production-board/internal/domain/client"
	domainWS "github.com/BruksfildServices01/production-board/internal/domain/workspace"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

// ClientFields is the editable part of a client record.
type ClientFields struct {
	Name          string
	Email         string
	Phone         string
	SocialMedia   string
	CPF           string
	CNPJ          string
	Address       string
	EssentialInfo string
}

func (f ClientFields) apply(c *models.Client) error {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return httperr.ErrValidation("name_required")
	}
	c.Name = name
	c.Email = strings.ToLower(strings.TrimSpace(f.Email))
	c.Phone = strings.TrimSpace(f.Phone)
	c.SocialMedia = strings.TrimSpace(f.SocialMedia)
	c.CPF = strings.TrimSpace(f.CPF)
	c.CNPJ = strings.TrimSpace(f.CNPJ)
	c.Address = strings.TrimSpace(f.Address)
	c.EssentialInfo = f.EssentialInfo
	return nil
}

// ======================================================
// LIST
// ======================================================

type ListClients struct {
	sessions *workspace.Sessions
}

func NewListClients(sessions *workspace.Sessions) *ListClients {
	return &ListClients{sessions: sessions}
}

func (uc *ListClients) Execute(ctx context.Context, sessionID, userID string) ([]models.Client, error) {
	snap, err := uc.sessions.Open(ctx, workspace.OpenInput{SessionID: sessionID, UserID: userID})
	if err != nil {
		return nil, err
	}
	if snap.Clients == nil {
		return []models.Client{}, nil
	}
	return snap.Clients, nil
}

// ======================================================
// SAVE (create or update)
// ======================================================

type SaveClientInput struct {
	SessionID string
	UserID    string

	// ClientID empty means create.
	ClientID string
	Fields   ClientFields
}

type SaveClient struct {
	repo     domain.Repository
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewSaveClient(
	repo domain.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *SaveClient {
	return &SaveClient{
		repo:     repo,
		sessions: sessions,
		audit:    audit,
	}
}

func (uc *SaveClient) Execute(ctx context.Context, in SaveClientInput) (*models.Client, error) {
	var (
		c      *models.Client
		action string
	)

	if in.ClientID == "" {
		c = &models.Client{OwnerID: in.UserID}
		if err := in.Fields.apply(c); err != nil {
			return nil, err
		}
		if err := uc.repo.CreateClient(ctx, c); err != nil {
			return nil, err
		}
		action = "client_created"
	} else {
		existing, err := uc.repo.GetClient(ctx, in.ClientID)
		if err != nil {
			return nil, err
		}
		c = existing
		if err := in.Fields.apply(c); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateClient(ctx, c); err != nil {
			return nil, err
		}
		action = "client_updated"
	}

	saved := *c
	uc.sessions.Merge(ctx, in.SessionID, func(s *domainWS.Snapshot) {
		s.UpsertClient(saved)
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.UserID),
		Action:   action,
		Entity:   "client",
		EntityID: audit.Ptr(c.ID),
	})

	return c, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteClient struct {
	repo     domain.Repository
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewDeleteClient(
	repo domain.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *DeleteClient {
	return &DeleteClient{
		repo:     repo,
		sessions: sessions,
		audit:    audit,
	}
}

func (uc *DeleteClient) Execute(ctx context.Context, sessionID, userID, clientID string) error {
	if err := uc.repo.DeleteClient(ctx, clientID); err != nil {
		return err
	}

	uc.sessions.Merge(ctx, sessionID, func(s *domainWS.Snapshot) {
		s.RemoveClient(clientID)
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(userID),
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: audit.Ptr(clientID),
	})

	return nil
}
