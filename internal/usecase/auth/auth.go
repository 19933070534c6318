package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/auth"
	"github.com/BruksfildServices01/production-board/internal/domain/access"
	"github.com/BruksfildServices01/production-board/internal/domain/profile"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

const minPasswordLen = 6

// EmailChecker reports whether the address's domain can receive mail.
type EmailChecker func(email string) bool

type SessionOutput struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	State     access.State    `json:"state"`
	Profile   *models.Profile `json:"profile"`
}

// ======================================================
// SERVICE
// ======================================================

type Service struct {
	profiles   profile.Repository
	tokens     *auth.Tokens
	revoker    access.Revoker
	sessions   *workspace.Sessions
	resets     *ResetMailer
	override   access.Override
	checkEmail EmailChecker
	audit      *audit.Dispatcher
}

type Deps struct {
	Profiles   profile.Repository
	Tokens     *auth.Tokens
	Revoker    access.Revoker
	Sessions   *workspace.Sessions
	Resets     *ResetMailer
	Override   access.Override
	CheckEmail EmailChecker
	Audit      *audit.Dispatcher
}

func NewService(d Deps) *Service {
	check := d.CheckEmail
	if check == nil {
		check = func(string) bool { return true }
	}
	return &Service{
		profiles:   d.Profiles,
		tokens:     d.Tokens,
		revoker:    d.Revoker,
		sessions:   d.Sessions,
		resets:     d.Resets,
		override:   d.Override,
		checkEmail: check,
		audit:      d.Audit,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ======================================================
// SIGN UP
// ======================================================

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// SignUp registers a Free, unapproved account. The session it opens stays
// pending until an administrator approves it.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*SessionOutput, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" {
		return nil, httperr.ErrValidation("name_required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, httperr.ErrValidation("password_too_short")
	}
	if !s.checkEmail(email) {
		return nil, httperr.ErrValidation("invalid_email_domain")
	}

	if _, err := s.profiles.GetProfileByEmail(ctx, email); err == nil {
		return nil, httperr.ErrBusiness("email_already_registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &models.Profile{
		Name:         name,
		Email:        email,
		Role:         models.RoleFree,
		Approved:     false,
		PasswordHash: string(hashed),
	}
	granted := s.override.Apply(p)

	if err := s.profiles.CreateProfile(ctx, p); err != nil {
		return nil, err
	}
	s.sessions.Invalidate(ctx)

	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(p.ID),
		Action:   "user_registered",
		Entity:   "profile",
		EntityID: audit.Ptr(p.ID),
	})
	if granted {
		s.auditSuperuser(p)
	}

	return s.open(p)
}

// ======================================================
// SIGN IN
// ======================================================

type SignInInput struct {
	Email    string
	Password string
}

func (s *Service) SignIn(ctx context.Context, in SignInInput) (*SessionOutput, error) {
	p, err := s.profiles.GetProfileByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrAuth("invalid_credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return nil, httperr.ErrAuth("invalid_credentials")
	}

	if s.override.Apply(p) {
		if err := s.profiles.UpdateProfile(ctx, p); err != nil {
			return nil, err
		}
		s.sessions.Invalidate(ctx)
		s.auditSuperuser(p)
	}

	return s.open(p)
}

func (s *Service) open(p *models.Profile) (*SessionOutput, error) {
	token, claims, err := s.tokens.IssueSession(p)
	if err != nil {
		return nil, err
	}

	return &SessionOutput{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		State:     access.Next(access.StateUnauthenticated, access.EventSignedIn, p),
		Profile:   p,
	}, nil
}

func (s *Service) auditSuperuser(p *models.Profile) {
	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(p.ID),
		Action:   "superuser_granted",
		Entity:   "profile",
		EntityID: audit.Ptr(p.ID),
		Metadata: map[string]string{"email": p.Email},
	})
}

// ======================================================
// SIGN OUT
// ======================================================

// SignOut revokes the token until it would have expired and discards the
// session's workspace.
func (s *Service) SignOut(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(ctx, claims.SessionID(), ttl); err != nil {
		return err
	}

	if err := s.sessions.Close(ctx, claims.SessionID()); err != nil {
		log.Printf("close workspace %s: %v", claims.SessionID(), err)
	}

	s.audit.Dispatch(audit.Event{
		UserID: audit.Ptr(claims.Subject),
		Action: "user_signed_out",
		Entity: "profile",
	})
	return nil
}

// ======================================================
// SESSION
// ======================================================

type SessionState struct {
	State   access.State    `json:"state"`
	Profile *models.Profile `json:"profile"`
}

// Session reloads the profile behind a token. A deleted profile reads as no
// session at all.
func (s *Service) Session(ctx context.Context, userID string) (*SessionState, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SessionState{State: access.StateUnauthenticated}, nil
		}
		return nil, err
	}
	return &SessionState{State: access.Resolve(p), Profile: p}, nil
}

// ======================================================
// PASSWORD RESET
// ======================================================

// RequestPasswordReset never reveals whether the address exists.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) {
	p, err := s.profiles.GetProfileByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("password reset lookup: %v", err)
		}
		return
	}

	if err := s.resets.SendReset(ctx, p); err != nil {
		log.Printf("password reset mail to %s: %v", p.Email, err)
		return
	}

	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(p.ID),
		Action:   "password_reset_requested",
		Entity:   "profile",
		EntityID: audit.Ptr(p.ID),
	})
}

type ConfirmResetInput struct {
	Token    string
	Password string
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, in ConfirmResetInput) error {
	if len(in.Password) < minPasswordLen {
		return httperr.ErrValidation("password_too_short")
	}

	claims, err := s.tokens.ParseReset(in.Token)
	if err != nil {
		return httperr.ErrAuth("invalid_reset_token")
	}

	p, err := s.profiles.GetProfile(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrAuth("invalid_reset_token")
		}
		return err
	}
	if auth.Fingerprint(p.PasswordHash) != claims.PasswordFP {
		return httperr.ErrAuth("invalid_reset_token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hashed)

	if err := s.profiles.UpdateProfile(ctx, p); err != nil {
		return err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(p.ID),
		Action:   "password_reset",
		Entity:   "profile",
		EntityID: audit.Ptr(p.ID),
	})
	return nil
}
