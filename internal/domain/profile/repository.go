package profile

import (
	"context"

	"github.com/BruksfildServices01/production-board/internal/models"
)

type Repository interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)

	GetProfile(ctx context.Context, id string) (*models.Profile, error)

	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)

	CreateProfile(ctx context.Context, p *models.Profile) error

	UpdateProfile(ctx context.Context, p *models.Profile) error

	DeleteProfile(ctx context.Context, id string) error
}
