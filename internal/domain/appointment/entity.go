package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Validate runs the form checks that must pass before any remote call.
func Validate(ap *models.Appointment) error {
	ap.Title = strings.TrimSpace(ap.Title)
	if ap.Title == "" {
		return httperr.ErrValidation("title_required")
	}
	if ap.Date.IsZero() {
		return httperr.ErrValidation("date_required")
	}
	return nil
}

// CombineDateTime joins the form's date and hh:mm fields in the viewer's
// location.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date_or_time")
	}
	return t, nil
}
