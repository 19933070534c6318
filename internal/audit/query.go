package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/production-board/internal/models"
)

// Filter narrows the audit trail. Zero fields are ignored.
type Filter struct {
	Action string
	Entity string
	UserID string
	From   *time.Time
	To     *time.Time

	Limit  int
	Offset int
}

type Reader interface {
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}
