package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/production-board/internal/auth"
	"github.com/BruksfildServices01/production-board/internal/domain/access"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/models"
)

const (
	ContextClaims    = "claims"
	ContextUserID    = "userID"
	ContextSessionID = "sessionID"
	ContextProfile   = "profile"
)

// ProfileLoader is the slice of the profile repository the gate needs.
type ProfileLoader interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

const sessionExpired = "Sua sessão expirou. Entre novamente."

// AuthMiddleware resolves the bearer token into a live profile. The profile
// is read on every request so role and approval changes apply at once.
func AuthMiddleware(tokens *auth.Tokens, revoker access.Revoker, profiles ProfileLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Entre para continuar.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Entre para continuar.")
			return
		}

		claims, err := tokens.ParseSession(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", sessionExpired)
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.SessionID())
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if revoked {
			httperr.Unauthorized(c, "session_revoked", sessionExpired)
			return
		}

		profile, err := profiles.GetProfile(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Unauthorized(c, "profile_not_found", sessionExpired)
				return
			}
			httperr.Respond(c, err)
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, profile.ID)
		c.Set(ContextSessionID, claims.SessionID())
		c.Set(ContextProfile, profile)

		c.Next()
	}
}

// ApprovedOnly lets through authorized sessions only. Pending accounts get
// the waiting screen code.
func ApprovedOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if access.Resolve(CurrentProfile(c)) != access.StateAuthorized {
			httperr.Forbidden(c, "pending_approval", "Seu cadastro aguarda aprovação de um administrador.")
			return
		}
		c.Next()
	}
}

func MasterOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !access.Elevated(CurrentProfile(c)) {
			httperr.Forbidden(c, "master_only", "Apenas administradores podem fazer isso.")
			return
		}
		c.Next()
	}
}

// ======================================================
// CONTEXT ACCESSORS
// ======================================================

func CurrentProfile(c *gin.Context) *models.Profile {
	p, _ := c.Get(ContextProfile)
	profile, _ := p.(*models.Profile)
	return profile
}

func CurrentClaims(c *gin.Context) *auth.Claims {
	v, _ := c.Get(ContextClaims)
	claims, _ := v.(*auth.Claims)
	return claims
}

func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
