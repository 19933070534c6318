// Package workspace holds the per-session view state: everything fetched at
// sign-in plus the optimistic edits applied since. It lives from the first
// fetch after sign-in until sign-out.
package workspace

import (
	"time"

	"github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/models"
)

type Snapshot struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`

	Board        board.Board          `json:"board"`
	Projects     []models.Project     `json:"projects"`
	Clients      []models.Client      `json:"clients"`
	Users        []models.Profile     `json:"users"`
	Appointments []models.Appointment `json:"appointments"`

	LoadedAt time.Time `json:"loaded_at"`
	// Generation is the store generation the snapshot reflects.
	Generation int64 `json:"generation"`
}

func (s *Snapshot) Project(id string) (models.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// AddProject appends a freshly created project and its id to the column
// whose title matches its stage.
func (s *Snapshot) AddProject(p models.Project) {
	s.Projects = append(s.Projects, p)
	for i, c := range s.Board.Columns {
		if c.Title == p.Stage {
			s.Board.Columns[i].ProjectIDs = append(c.ProjectIDs, p.ID)
			return
		}
	}
}

func (s *Snapshot) ReplaceProject(p models.Project) {
	s.Projects = upsert(s.Projects, p, func(v models.Project) string { return v.ID })
}

func (s *Snapshot) RemoveProject(id string) {
	s.Projects = remove(s.Projects, id, func(v models.Project) string { return v.ID })
	for i, c := range s.Board.Columns {
		ids := make([]string, 0, len(c.ProjectIDs))
		for _, pid := range c.ProjectIDs {
			if pid != id {
				ids = append(ids, pid)
			}
		}
		s.Board.Columns[i].ProjectIDs = ids
	}
}

func (s *Snapshot) UpsertClient(c models.Client) {
	s.Clients = upsert(s.Clients, c, func(v models.Client) string { return v.ID })
}

func (s *Snapshot) RemoveClient(id string) {
	s.Clients = remove(s.Clients, id, func(v models.Client) string { return v.ID })
}

func (s *Snapshot) UpsertUser(u models.Profile) {
	s.Users = upsert(s.Users, u, func(v models.Profile) string { return v.ID })
}

func (s *Snapshot) RemoveUser(id string) {
	s.Users = remove(s.Users, id, func(v models.Profile) string { return v.ID })
}

func (s *Snapshot) UpsertAppointment(a models.Appointment) {
	s.Appointments = upsert(s.Appointments, a, func(v models.Appointment) string { return v.ID })
}

func (s *Snapshot) RemoveAppointment(id string) {
	s.Appointments = remove(s.Appointments, id, func(v models.Appointment) string { return v.ID })
}

func upsert[T any](items []T, item T, key func(T) string) []T {
	k := key(item)
	for i := range items {
		if key(items[i]) == k {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func remove[T any](items []T, id string, key func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		if key(v) != id {
			out = append(out, v)
		}
	}
	return out
}
