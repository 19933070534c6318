package access

import (
	"strings"

	"github.com/BruksfildServices01/production-board/internal/models"
)

// ===============================
// Session gate
// ===============================

type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StatePending         State = "pending"
	StateAuthorized      State = "authorized"
)

type Event string

const (
	EventSignedIn  Event = "signed_in"
	EventSignedOut Event = "signed_out"
)

// Resolve maps a loaded profile onto the gate. No profile means no session.
func Resolve(p *models.Profile) State {
	if p == nil {
		return StateUnauthenticated
	}
	if p.Superuser || p.Approved {
		return StateAuthorized
	}
	return StatePending
}

// Next is driven only by auth events and the profile loaded afterwards.
func Next(current State, ev Event, p *models.Profile) State {
	switch ev {
	case EventSignedIn:
		return Resolve(p)
	case EventSignedOut:
		return StateUnauthenticated
	}
	return current
}

// Elevated reports the role with unrestricted visibility and user management.
func Elevated(p *models.Profile) bool {
	return p != nil && (p.Superuser || p.Role == models.RoleMaster)
}

// ===============================
// Superuser bootstrap
// ===============================

// Override grants the stored superuser flag to the configured address. The
// flag, not the address, is what every later check reads.
type Override struct {
	Email string
}

func (o Override) Matches(email string) bool {
	want := strings.TrimSpace(o.Email)
	return want != "" && strings.EqualFold(want, strings.TrimSpace(email))
}

// Apply returns true when p was changed and needs persisting.
func (o Override) Apply(p *models.Profile) bool {
	if p == nil || !o.Matches(p.Email) {
		return false
	}

	changed := !p.Superuser || !p.Approved || p.Role != models.RoleMaster
	p.Superuser = true
	p.Approved = true
	p.Role = models.RoleMaster
	return changed
}

// ===============================
// Project permissions
// ===============================

// CanEditProject mirrors the store's row policy: the elevated role edits
// everything, others only what they own or are responsible for.
func CanEditProject(p *models.Profile, project *models.Project) bool {
	if p == nil || project == nil {
		return false
	}
	return Elevated(p) || project.OwnerID == p.ID || project.IsResponsible(p.ID)
}

// CanDeleteProject is narrower: responsibility alone is not enough.
func CanDeleteProject(p *models.Profile, project *models.Project) bool {
	if p == nil || project == nil {
		return false
	}
	return Elevated(p) || project.OwnerID == p.ID
}
