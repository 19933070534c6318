package calendar

import (
	"context"
	"time"

	"github.com/BruksfildServices01/production-board/internal/domain/access"
	domain "github.com/BruksfildServices01/production-board/internal/domain/calendar"
	"github.com/BruksfildServices01/production-board/internal/domain/visibility"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/timezone"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

type GetMonthInput struct {
	SessionID string
	Viewer    *models.Profile

	// Year and Month zero mean the current month in the viewer's timezone.
	Year  int
	Month int

	Timezone string
	MineOnly bool
}

type GetMonth struct {
	sessions        *workspace.Sessions
	defaultTimezone string
	now             func() time.Time
}

func NewGetMonth(sessions *workspace.Sessions, defaultTimezone string) *GetMonth {
	return &GetMonth{
		sessions:        sessions,
		defaultTimezone: defaultTimezone,
		now:             time.Now,
	}
}

func (uc *GetMonth) Execute(ctx context.Context, in GetMonthInput) (*domain.MonthView, error) {
	snap, err := uc.sessions.Open(ctx, workspace.OpenInput{
		SessionID: in.SessionID,
		UserID:    in.Viewer.ID,
	})
	if err != nil {
		return nil, err
	}

	loc := timezone.Resolve(in.Timezone, uc.defaultTimezone)

	m := domain.MonthOf(uc.now().In(loc))
	if in.Year != 0 && in.Month != 0 {
		m = domain.Month{Year: in.Year, Month: time.Month(in.Month)}.Normalize()
	}

	filter := visibility.Filter{
		UserID:   in.Viewer.ID,
		Elevated: access.Elevated(in.Viewer),
		MineOnly: in.MineOnly,
	}

	view := domain.Aggregate(m, loc, filter.Projects(snap.Projects), filter.Appointments(snap.Appointments))
	return &view, nil
}
