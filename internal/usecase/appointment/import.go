package appointment

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/production-board/internal/audit"
	domain "github.com/BruksfildServices01/production-board/internal/domain/appointment"
	domainWS "github.com/BruksfildServices01/production-board/internal/domain/workspace"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/ical"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/timezone"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

const ImportTTL = 15 * time.Minute

// ======================================================
// PREVIEW
// ======================================================

type PreviewImportInput struct {
	UserID   string
	File     io.Reader
	Timezone string
}

type PreviewImportOutput struct {
	ImportID  string       `json:"import_id"`
	Events    []ical.Event `json:"events"`
	Skipped   int          `json:"skipped"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type PreviewImport struct {
	stager          domain.ImportStager
	defaultTimezone string
	now             func() time.Time
}

func NewPreviewImport(stager domain.ImportStager, defaultTimezone string) *PreviewImport {
	return &PreviewImport{
		stager:          stager,
		defaultTimezone: defaultTimezone,
		now:             time.Now,
	}
}

// Execute parses the file and parks the events until the user confirms.
func (uc *PreviewImport) Execute(ctx context.Context, in PreviewImportInput) (*PreviewImportOutput, error) {
	res, err := ical.Parse(in.File, timezone.Resolve(in.Timezone, uc.defaultTimezone))
	if err != nil {
		return nil, httperr.ErrValidation("invalid_calendar_file")
	}
	if len(res.Events) == 0 {
		return nil, httperr.ErrValidation("no_events_found")
	}

	staged := &domain.StagedImport{
		ID:      uuid.NewString(),
		UserID:  in.UserID,
		Events:  res.Events,
		Skipped: res.Skipped,
	}
	if err := uc.stager.StageImport(ctx, staged, ImportTTL); err != nil {
		return nil, err
	}

	return &PreviewImportOutput{
		ImportID:  staged.ID,
		Events:    res.Events,
		Skipped:   res.Skipped,
		ExpiresAt: uc.now().Add(ImportTTL),
	}, nil
}

// ======================================================
// CONFIRM
// ======================================================

type ConfirmImportInput struct {
	SessionID string
	UserID    string
	ImportID  string
}

type ConfirmImport struct {
	repo     domain.Repository
	stager   domain.ImportStager
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
}

func NewConfirmImport(
	repo domain.Repository,
	stager domain.ImportStager,
	sessions *workspace.Sessions,
	audit *audit.Dispatcher,
) *ConfirmImport {
	return &ConfirmImport{
		repo:     repo,
		stager:   stager,
		sessions: sessions,
		audit:    audit,
	}
}

// Execute inserts the staged batch in one statement, owned by the caller.
func (uc *ConfirmImport) Execute(ctx context.Context, in ConfirmImportInput) ([]models.Appointment, error) {
	// --------------------------------------------------
	// 1. Ownership, checked before the batch is consumed
	// --------------------------------------------------
	staged, err := uc.stager.PeekImport(ctx, in.ImportID)
	if err != nil {
		return nil, importErr(err)
	}
	if staged.UserID != in.UserID {
		return nil, httperr.ErrNotFound("import_not_found")
	}

	// --------------------------------------------------
	// 2. Consume; a concurrent confirm loses here
	// --------------------------------------------------
	staged, err = uc.stager.TakeImport(ctx, in.ImportID)
	if err != nil {
		return nil, importErr(err)
	}

	batch := make([]models.Appointment, 0, len(staged.Events))
	for _, ev := range staged.Events {
		batch = append(batch, models.Appointment{
			Title:       ev.Summary,
			Date:        ev.Start,
			Description: strings.TrimSpace(ev.Description),
			UserID:      in.UserID,
		})
	}

	if err := uc.repo.CreateAppointments(ctx, batch); err != nil {
		return nil, err
	}

	uc.sessions.Merge(ctx, in.SessionID, func(s *domainWS.Snapshot) {
		for _, ap := range batch {
			s.UpsertAppointment(ap)
		}
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.UserID),
		Action:   "appointments_imported",
		Entity:   "appointment",
		Metadata: map[string]int{"count": len(batch), "skipped": staged.Skipped},
	})

	return batch, nil
}

func importErr(err error) error {
	if errors.Is(err, domain.ErrImportNotFound) {
		return httperr.ErrNotFound("import_not_found")
	}
	return err
}
