package client

import (
	"context"

	"github.com/BruksfildServices01/production-board/internal/models"
)

type Repository interface {
	ListClients(ctx context.Context) ([]models.Client, error)

	GetClient(ctx context.Context, id string) (*models.Client, error)

	CreateClient(ctx context.Context, c *models.Client) error

	UpdateClient(ctx context.Context, c *models.Client) error

	DeleteClient(ctx context.Context, id string) error
}
