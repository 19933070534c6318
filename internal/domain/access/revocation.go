package access

import (
	"context"
	"time"
)

// Revoker remembers signed-out sessions until their token would expire.
type Revoker interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
