package appointment

import (
	"context"

	"github.com/BruksfildServices01/production-board/internal/models"
)

type Repository interface {
	ListAppointments(ctx context.Context) ([]models.Appointment, error)

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// CreateAppointments inserts a whole import batch in one statement.
	CreateAppointments(ctx context.Context, aps []models.Appointment) error

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	DeleteAppointment(ctx context.Context, id string) error
}
