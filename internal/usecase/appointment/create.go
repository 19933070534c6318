package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/production-board/internal/audit"
	domain "github.com/BruksfildServices01/production-board/internal/domain/appointment"
	domainWS "github.com/BruksfildServices01/production-board/internal/domain/workspace"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/timezone"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SessionID string
	UserID    string

	Title       string
	Description string

	// Date is yyyy-mm-dd and Time hh:mm, both in Timezone.
	Date     string
	Time     string
	Timezone string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo            domain.Repository
	sessions        *workspace.Sessions
	audit           *audit.Dispatcher
	defaultTimezone string
}

func NewCreateAppointment(
	repo domain.Repository,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
	defaultTimezone string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:            repo,
		sessions:        sessions,
		audit:           audit,
		defaultTimezone: defaultTimezone,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Date / time in the viewer's timezone
	// --------------------------------------------------
	ap := &models.Appointment{
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		UserID:      in.UserID,
	}

	if in.Date != "" {
		clock := in.Time
		if clock == "" {
			clock = "00:00"
		}
		start, err := domain.CombineDateTime(in.Date, clock, timezone.Resolve(in.Timezone, uc.defaultTimezone))
		if err != nil {
			return nil, err
		}
		ap.Date = start
	}

	// --------------------------------------------------
	// 2. Required fields
	// --------------------------------------------------
	if err := domain.Validate(ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Insert
	// --------------------------------------------------
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	saved := *ap
	uc.sessions.Merge(ctx, in.SessionID, func(s *domainWS.Snapshot) {
		s.UpsertAppointment(saved)
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.UserID),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
	})

	return ap, nil
}
