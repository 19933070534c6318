package project

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/production-board/internal/domain/access"
	"github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
)

const dateLayout = "2006-01-02"

// editable loads the project and checks the viewer may change it.
func editable(ctx context.Context, repo board.Repository, viewer *models.Profile, id string) (*models.Project, error) {
	p, err := repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEditProject(viewer, p) {
		return nil, httperr.ErrForbidden("project_forbidden")
	}
	return p, nil
}

// parseDate reads an optional yyyy-mm-dd field. Empty clears the date.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}
	return &t, nil
}
