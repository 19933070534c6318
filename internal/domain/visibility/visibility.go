// Package visibility narrows what a session renders. It is a display
// convenience only; authorization is enforced by the store and handlers.
package visibility

import "github.com/BruksfildServices01/production-board/internal/models"

type Filter struct {
	UserID   string
	Elevated bool
	MineOnly bool
}

// Unrestricted reports whether the full collections are shown. The
// non-elevated role can never lift the restriction.
func (f Filter) Unrestricted() bool {
	return f.Elevated && !f.MineOnly
}

func (f Filter) Projects(items []models.Project) []models.Project {
	if f.Unrestricted() {
		return items
	}

	out := make([]models.Project, 0, len(items))
	for _, p := range items {
		if p.OwnerID == f.UserID || p.IsResponsible(f.UserID) {
			out = append(out, p)
		}
	}
	return out
}

func (f Filter) Appointments(items []models.Appointment) []models.Appointment {
	if f.Unrestricted() {
		return items
	}

	out := make([]models.Appointment, 0, len(items))
	for _, a := range items {
		if a.UserID == f.UserID {
			out = append(out, a)
		}
	}
	return out
}
