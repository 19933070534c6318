package board

import (
	"context"

	"github.com/BruksfildServices01/production-board/internal/domain/access"
	domain "github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/domain/visibility"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

type ViewInput struct {
	SessionID string
	Viewer    *models.Profile
	MineOnly  bool
	Refresh   bool
}

type View struct {
	Board    domain.Board     `json:"board"`
	Projects []models.Project `json:"projects"`
	Clients  []models.Client  `json:"clients"`
	Users    []models.Profile `json:"users"`
}

type GetBoard struct {
	sessions *workspace.Sessions
}

func NewGetBoard(sessions *workspace.Sessions) *GetBoard {
	return &GetBoard{sessions: sessions}
}

// Execute returns the board as the viewer may see it. Columns are always
// complete; only their id lists are narrowed.
func (uc *GetBoard) Execute(ctx context.Context, in ViewInput) (*View, error) {
	snap, err := uc.sessions.Open(ctx, workspace.OpenInput{
		SessionID: in.SessionID,
		UserID:    in.Viewer.ID,
		Refresh:   in.Refresh,
	})
	if err != nil {
		return nil, err
	}

	filter := visibility.Filter{
		UserID:   in.Viewer.ID,
		Elevated: access.Elevated(in.Viewer),
		MineOnly: in.MineOnly,
	}
	projects := filter.Projects(snap.Projects)

	return &View{
		Board:    snap.Board.Restrict(projects),
		Projects: projects,
		Clients:  snap.Clients,
		Users:    snap.Users,
	}, nil
}
