// Package auth issues and verifies the signed tokens behind sessions and
// password resets.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/production-board/internal/models"
)

const (
	SessionTTL = 24 * time.Hour
	ResetTTL   = time.Hour

	purposeSession = "session"
	purposeReset   = "password_reset"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`

	// PasswordFP ties a reset token to the hash it replaces, so it stops
	// working once used.
	PasswordFP string `json:"pfp,omitempty"`

	jwt.RegisteredClaims
}

// SessionID is the jti, shared by the token, the workspace snapshot and
// the revocation entry.
func (c *Claims) SessionID() string {
	return c.ID
}

type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

// ======================================================
// SESSION
// ======================================================

func (t *Tokens) IssueSession(p *models.Profile) (string, *Claims, error) {
	now := t.now()
	claims := &Claims{
		Email:   p.Email,
		Purpose: purposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	signed, err := t.sign(claims)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (t *Tokens) ParseSession(token string) (*Claims, error) {
	return t.parse(token, purposeSession)
}

// ======================================================
// PASSWORD RESET
// ======================================================

func (t *Tokens) IssueReset(p *models.Profile) (string, error) {
	now := t.now()
	return t.sign(&Claims{
		Email:      p.Email,
		Purpose:    purposeReset,
		PasswordFP: Fingerprint(p.PasswordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ResetTTL)),
		},
	})
}

func (t *Tokens) ParseReset(token string) (*Claims, error) {
	return t.parse(token, purposeReset)
}

func Fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}

// ------------------------------------------------------

func (t *Tokens) sign(c *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
}

func (t *Tokens) parse(token, purpose string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
