package user

import (
	"context"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/domain/access"
	"github.com/BruksfildServices01/production-board/internal/domain/profile"
	domainWS "github.com/BruksfildServices01/production-board/internal/domain/workspace"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

const minPasswordLen = 6

// ResetSender mails the set-password link sent when an account is approved.
type ResetSender interface {
	SendReset(ctx context.Context, p *models.Profile) error
}

// Admin is the user-management screen. Every method expects an elevated
// actor; the route group enforces it and each call checks again.
type Admin struct {
	repo     profile.Repository
	resets   ResetSender
	override access.Override
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewAdmin(
	repo profile.Repository,
	resets ResetSender,
	override access.Override,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *Admin {
	return &Admin{
		repo:     repo,
		resets:   resets,
		override: override,
		sessions: sessions,
		audit:    audit,
	}
}

func validRole(role string) bool {
	return role == models.RoleMaster || role == models.RoleFree
}

func requireElevated(actor *models.Profile) error {
	if !access.Elevated(actor) {
		return httperr.ErrForbidden("master_only")
	}
	return nil
}

// ======================================================
// LIST
// ======================================================

func (a *Admin) List(ctx context.Context, actor *models.Profile) ([]models.Profile, error) {
	if err := requireElevated(actor); err != nil {
		return nil, err
	}
	return a.repo.ListProfiles(ctx)
}

// ======================================================
// CREATE
// ======================================================

type CreateUserInput struct {
	SessionID string
	Actor     *models.Profile

	Name     string
	Email    string
	Phone    string
	CPF      string
	Password string
	Role     string
	Approved bool
}

func (a *Admin) Create(ctx context.Context, in CreateUserInput) (*models.Profile, error) {
	if err := requireElevated(in.Actor); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, httperr.ErrValidation("email_required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, httperr.ErrValidation("password_too_short")
	}

	role := in.Role
	if role == "" {
		role = models.RoleFree
	}
	if !validRole(role) {
		return nil, httperr.ErrValidation("invalid_role")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &models.Profile{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		CPF:          strings.TrimSpace(in.CPF),
		Role:         role,
		Approved:     in.Approved,
		PasswordHash: string(hashed),
	}
	granted := a.override.Apply(p)

	if err := a.repo.CreateProfile(ctx, p); err != nil {
		return nil, err
	}

	a.merge(ctx, in.SessionID, *p)
	a.dispatch(in.Actor, "user_created", p, map[string]any{"role": p.Role, "approved": p.Approved})
	if granted {
		a.dispatch(in.Actor, "superuser_granted", p, nil)
	}

	return p, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateUserInput struct {
	SessionID string
	Actor     *models.Profile
	UserID    string

	Name     *string
	Phone    *string
	CPF      *string
	Role     *string
	Approved *bool
}

type UpdateUserOutput struct {
	Profile *models.Profile `json:"profile"`

	// ApprovalMailSent is false when the account was just approved but the
	// set-password mail could not be delivered; the admin has to tell the
	// user by hand.
	ApprovalMailSent bool `json:"approval_mail_sent"`
	JustApproved     bool `json:"just_approved"`
}

func (a *Admin) Update(ctx context.Context, in UpdateUserInput) (*UpdateUserOutput, error) {
	if err := requireElevated(in.Actor); err != nil {
		return nil, err
	}

	p, err := a.repo.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	wasApproved := p.Approved

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.CPF != nil {
		p.CPF = strings.TrimSpace(*in.CPF)
	}
	if in.Role != nil {
		if !validRole(*in.Role) {
			return nil, httperr.ErrValidation("invalid_role")
		}
		p.Role = *in.Role
	}
	if in.Approved != nil {
		p.Approved = *in.Approved
	}

	// the superuser keeps Master and approval whatever the form says
	if p.Superuser {
		p.Role = models.RoleMaster
		p.Approved = true
	}

	if err := a.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}

	out := &UpdateUserOutput{Profile: p, JustApproved: !wasApproved && p.Approved}

	if out.JustApproved {
		if err := a.resets.SendReset(ctx, p); err != nil {
			log.Printf("approval mail to %s: %v", p.Email, err)
		} else {
			out.ApprovalMailSent = true
		}
		a.dispatch(in.Actor, "user_approved", p, map[string]any{"mail_sent": out.ApprovalMailSent})
	} else {
		a.dispatch(in.Actor, "user_updated", p, nil)
	}

	a.merge(ctx, in.SessionID, *p)
	return out, nil
}

// ======================================================
// DELETE
// ======================================================

func (a *Admin) Delete(ctx context.Context, sessionID string, actor *models.Profile, userID string) error {
	if err := requireElevated(actor); err != nil {
		return err
	}

	p, err := a.repo.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if p.Superuser || a.override.Matches(p.Email) {
		return httperr.ErrBusiness("cannot_delete_superuser")
	}

	if err := a.repo.DeleteProfile(ctx, p.ID); err != nil {
		return err
	}

	a.sessions.Merge(ctx, sessionID, func(s *domainWS.Snapshot) {
		s.RemoveUser(p.ID)
	})
	a.dispatch(actor, "user_deleted", p, map[string]any{"email": p.Email})
	return nil
}

// ------------------------------------------------------

func (a *Admin) merge(ctx context.Context, sessionID string, p models.Profile) {
	a.sessions.Merge(ctx, sessionID, func(s *domainWS.Snapshot) {
		s.UpsertUser(p)
	})
}

func (a *Admin) dispatch(actor *models.Profile, action string, target *models.Profile, meta any) {
	a.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(actor.ID),
		Action:   action,
		Entity:   "profile",
		EntityID: audit.Ptr(target.ID),
		Metadata: meta,
	})
}
