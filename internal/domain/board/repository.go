package board

import (
	"context"

	"github.com/BruksfildServices01/production-board/internal/models"
)

type Repository interface {
	// -------- Columns --------
	ListColumns(ctx context.Context) ([]models.Column, error)

	CreateColumns(ctx context.Context, cols []models.Column) error

	UpdateColumnOrder(ctx context.Context, id string, order int) error

	// -------- Projects --------
	ListProjects(ctx context.Context) ([]models.Project, error)

	GetProject(ctx context.Context, id string) (*models.Project, error)

	CreateProject(ctx context.Context, p *models.Project) error

	UpdateProject(ctx context.Context, p *models.Project) error

	UpdateProjectStage(ctx context.Context, id string, stage string) error

	DeleteProject(ctx context.Context, id string) error
}
