// Package testutil provides in-memory stand-ins for the gorm repositories
// and the other collaborators use cases depend on.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/domain/appointment"
	"github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/domain/client"
	"github.com/BruksfildServices01/production-board/internal/domain/profile"
	"github.com/BruksfildServices01/production-board/internal/models"
)

// Store is one in-memory database behind every repository interface.
// Errors in Fail are returned by the operation whose key matches, where the
// key is the method name or "Method:id".
type Store struct {
	mu sync.Mutex

	Columns      []models.Column
	Projects     []models.Project
	Clients      []models.Client
	Profiles     []models.Profile
	Appointments []models.Appointment

	Fail  map[string]error
	Calls []string
}

func New() *Store {
	return &Store{Fail: map[string]error{}}
}

func (s *Store) hit(op, id string) error {
	s.Calls = append(s.Calls, op)
	if err, ok := s.Fail[op]; ok {
		return err
	}
	if err, ok := s.Fail[op+":"+id]; ok {
		return err
	}
	return nil
}

func (s *Store) Called(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range s.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// ======================================================
// BOARD
// ======================================================

func (s *Store) ListColumns(_ context.Context) ([]models.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListColumns", ""); err != nil {
		return nil, err
	}
	return append([]models.Column(nil), s.Columns...), nil
}

func (s *Store) CreateColumns(_ context.Context, cols []models.Column) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateColumns", ""); err != nil {
		return err
	}
	for i := range cols {
		ensureID(&cols[i].ID)
		s.Columns = append(s.Columns, cols[i])
	}
	return nil
}

func (s *Store) UpdateColumnOrder(_ context.Context, id string, order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("UpdateColumnOrder", id); err != nil {
		return err
	}
	for i := range s.Columns {
		if s.Columns[i].ID == id {
			s.Columns[i].Order = order
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *Store) ListProjects(_ context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListProjects", ""); err != nil {
		return nil, err
	}
	return append([]models.Project(nil), s.Projects...), nil
}

func (s *Store) GetProject(_ context.Context, id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetProject", id); err != nil {
		return nil, err
	}
	for _, p := range s.Projects {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) CreateProject(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateProject", ""); err != nil {
		return err
	}
	ensureID(&p.ID)
	s.Projects = append(s.Projects, *p)
	return nil
}

func (s *Store) UpdateProject(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("UpdateProject", p.ID); err != nil {
		return err
	}
	for i := range s.Projects {
		if s.Projects[i].ID == p.ID {
			s.Projects[i] = *p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *Store) UpdateProjectStage(_ context.Context, id, stage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("UpdateProjectStage", id); err != nil {
		return err
	}
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			s.Projects[i].Stage = stage
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteProject", id); err != nil {
		return err
	}
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			s.Projects = append(s.Projects[:i], s.Projects[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ======================================================
// CLIENTS
// ======================================================

func (s *Store) ListClients(_ context.Context) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListClients", ""); err != nil {
		return nil, err
	}
	return append([]models.Client(nil), s.Clients...), nil
}

func (s *Store) GetClient(_ context.Context, id string) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetClient", id); err != nil {
		return nil, err
	}
	for _, c := range s.Clients {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) CreateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateClient", ""); err != nil {
		return err
	}
	ensureID(&c.ID)
	s.Clients = append(s.Clients, *c)
	return nil
}

func (s *Store) UpdateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("UpdateClient", c.ID); err != nil {
		return err
	}
	for i := range s.Clients {
		if s.Clients[i].ID == c.ID {
			s.Clients[i] = *c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *Store) DeleteClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteClient", id); err != nil {
		return err
	}
	for i := range s.Clients {
		if s.Clients[i].ID == id {
			s.Clients = append(s.Clients[:i], s.Clients[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ======================================================
// PROFILES
// ======================================================

func (s *Store) ListProfiles(_ context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListProfiles", ""); err != nil {
		return nil, err
	}
	return append([]models.Profile(nil), s.Profiles...), nil
}

func (s *Store) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetProfile", id); err != nil {
		return nil, err
	}
	for _, p := range s.Profiles {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) GetProfileByEmail(_ context.Context, email string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetProfileByEmail", email); err != nil {
		return nil, err
	}
	for _, p := range s.Profiles {
		if strings.EqualFold(p.Email, email) {
			cp := p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) CreateProfile(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateProfile", ""); err != nil {
		return err
	}
	for _, existing := range s.Profiles {
		if strings.EqualFold(existing.Email, p.Email) {
			return fmt.Errorf("duplicate email %s", p.Email)
		}
	}
	ensureID(&p.ID)
	s.Profiles = append(s.Profiles, *p)
	return nil
}

func (s *Store) UpdateProfile(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("UpdateProfile", p.ID); err != nil {
		return err
	}
	for i := range s.Profiles {
		if s.Profiles[i].ID == p.ID {
			s.Profiles[i] = *p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *Store) DeleteProfile(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteProfile", id); err != nil {
		return err
	}
	for i := range s.Profiles {
		if s.Profiles[i].ID == id {
			s.Profiles = append(s.Profiles[:i], s.Profiles[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ======================================================
// APPOINTMENTS
// ======================================================

func (s *Store) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListAppointments", ""); err != nil {
		return nil, err
	}
	return append([]models.Appointment(nil), s.Appointments...), nil
}

func (s *Store) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetAppointment", id); err != nil {
		return nil, err
	}
	for _, a := range s.Appointments {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateAppointment", ""); err != nil {
		return err
	}
	ensureID(&ap.ID)
	s.Appointments = append(s.Appointments, *ap)
	return nil
}

func (s *Store) CreateAppointments(_ context.Context, aps []models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateAppointments", ""); err != nil {
		return err
	}
	for i := range aps {
		ensureID(&aps[i].ID)
		s.Appointments = append(s.Appointments, aps[i])
	}
	return nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("UpdateAppointment", ap.ID); err != nil {
		return err
	}
	for i := range s.Appointments {
		if s.Appointments[i].ID == ap.ID {
			s.Appointments[i] = *ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *Store) DeleteAppointment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteAppointment", id); err != nil {
		return err
	}
	for i := range s.Appointments {
		if s.Appointments[i].ID == id {
			s.Appointments = append(s.Appointments[:i], s.Appointments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var (
	_ board.Repository       = (*Store)(nil)
	_ client.Repository      = (*Store)(nil)
	_ profile.Repository     = (*Store)(nil)
	_ appointment.Repository = (*Store)(nil)
)

// ======================================================
// AUDIT
// ======================================================

// AuditSink records events synchronously.
type AuditSink struct {
	mu     sync.Mutex
	Events []audit.Event
}

func (a *AuditSink) Log(ev audit.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Events = append(a.Events, ev)
	return nil
}

func (a *AuditSink) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.Events))
	for _, ev := range a.Events {
		out = append(out, ev.Action)
	}
	return out
}

// ListAuditLogs serves recorded events newest first, filtered by action and
// entity only.
func (a *AuditSink) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var matched []models.AuditLog
	for i := len(a.Events) - 1; i >= 0; i-- {
		ev := a.Events[i]
		if f.Action != "" && ev.Action != f.Action {
			continue
		}
		if f.Entity != "" && ev.Entity != f.Entity {
			continue
		}
		matched = append(matched, models.AuditLog{
			UserID:   ev.UserID,
			Action:   ev.Action,
			Entity:   ev.Entity,
			EntityID: ev.EntityID,
		})
	}

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

var _ audit.Reader = (*AuditSink)(nil)
