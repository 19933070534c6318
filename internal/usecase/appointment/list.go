package appointment

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/production-board/internal/domain/access"
	"github.com/BruksfildServices01/production-board/internal/domain/calendar"
	"github.com/BruksfildServices01/production-board/internal/domain/visibility"
	"github.com/BruksfildServices01/production-board/internal/dto"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/timezone"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

type ListAppointmentsInput struct {
	SessionID string
	Viewer    *models.Profile
	MineOnly  bool
	Timezone  string

	// Year and Month narrow the list to one month when both are set.
	Year  int
	Month int
}

type ListAppointments struct {
	sessions        *workspace.Sessions
	defaultTimezone string
}

func NewListAppointments(sessions *workspace.Sessions, defaultTimezone string) *ListAppointments {
	return &ListAppointments{
		sessions:        sessions,
		defaultTimezone: defaultTimezone,
	}
}

func (uc *ListAppointments) Execute(ctx context.Context, in ListAppointmentsInput) ([]dto.AppointmentListDTO, error) {
	snap, err := uc.sessions.Open(ctx, workspace.OpenInput{
		SessionID: in.SessionID,
		UserID:    in.Viewer.ID,
	})
	if err != nil {
		return nil, err
	}

	filter := visibility.Filter{
		UserID:   in.Viewer.ID,
		Elevated: access.Elevated(in.Viewer),
		MineOnly: in.MineOnly,
	}
	visible := filter.Appointments(snap.Appointments)

	loc := timezone.Resolve(in.Timezone, uc.defaultTimezone)

	var month *calendar.Month
	if in.Year != 0 && in.Month != 0 {
		m := calendar.Month{Year: in.Year, Month: time.Month(in.Month)}.Normalize()
		month = &m
	}

	names := make(map[string]string, len(snap.Users))
	for _, u := range snap.Users {
		names[u.ID] = u.Name
	}

	out := make([]dto.AppointmentListDTO, 0, len(visible))
	for _, ap := range visible {
		local := ap.Date.In(loc)
		if month != nil && !month.Contains(local.Year(), local.Month()) {
			continue
		}
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			Title:       ap.Title,
			Date:        ap.Date,
			LocalDate:   local.Format("2006-01-02"),
			LocalTime:   local.Format("15:04"),
			Description: ap.Description,
			UserID:      ap.UserID,
			UserName:    names[ap.UserID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out, nil
}
