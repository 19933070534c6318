package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/domain/access"
	domain "github.com/BruksfildServices01/production-board/internal/domain/appointment"
	domainWS "github.com/BruksfildServices01/production-board/internal/domain/workspace"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/timezone"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

func owned(ctx context.Context, repo domain.Repository, actor *models.Profile, id string) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if ap.UserID != actor.ID && !access.Elevated(actor) {
		return nil, httperr.ErrForbidden("appointment_forbidden")
	}
	return ap, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateAppointmentInput struct {
	SessionID     string
	Actor         *models.Profile
	AppointmentID string

	Title       *string
	Description *string
	Date        *string
	Time        *string
	Timezone    string
}

type UpdateAppointment struct {
	repo            domain.Repository
	sessions        *workspace.Sessions
	audit           *audit.Dispatcher
	defaultTimezone string
}

func NewUpdateAppointment(
	repo domain.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
	defaultTimezone string,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:            repo,
		sessions:        sessions,
		audit:           audit,
		defaultTimezone: defaultTimezone,
	}
}

func (uc *UpdateAppointment) Execute(ctx context.Context, in UpdateAppointmentInput) (*models.Appointment, error) {
	ap, err := owned(ctx, uc.repo, in.Actor, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		ap.Title = *in.Title
	}
	if in.Description != nil {
		ap.Description = strings.TrimSpace(*in.Description)
	}

	if in.Date != nil || in.Time != nil {
		loc := timezone.Resolve(in.Timezone, uc.defaultTimezone)
		local := ap.Date.In(loc)

		date := local.Format("2006-01-02")
		if in.Date != nil {
			date = *in.Date
		}
		clock := local.Format("15:04")
		if in.Time != nil {
			clock = *in.Time
		}

		if ap.Date, err = domain.CombineDateTime(date, clock, loc); err != nil {
			return nil, err
		}
	}

	if err := domain.Validate(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	saved := *ap
	uc.sessions.Merge(ctx, in.SessionID, func(s *domainWS.Snapshot) {
		s.UpsertAppointment(saved)
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Actor.ID),
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{"date": ap.Date.Format(time.RFC3339)},
	})

	return ap, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteAppointment struct {
	repo     domain.Repository
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:     repo,
		sessions: sessions,
		audit:    audit,
	}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, sessionID string, actor *models.Profile, id string) error {
	ap, err := owned(ctx, uc.repo, actor, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.sessions.Merge(ctx, sessionID, func(s *domainWS.Snapshot) {
		s.RemoveAppointment(ap.ID)
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(actor.ID),
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
	})

	return nil
}
