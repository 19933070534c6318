package testutil

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/production-board/internal/infra/generative"
	"github.com/BruksfildServices01/production-board/internal/infra/mailer"
	"github.com/BruksfildServices01/production-board/internal/models"
)

type Mailer struct {
	mu   sync.Mutex
	Sent []mailer.Message
	Err  error
}

func (m *Mailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *Mailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// Generator returns canned content.
type Generator struct {
	Checklist []models.ChecklistItem
	Script    string
	Image     *generative.Image
	Err       error
}

func (g *Generator) GenerateChecklist(context.Context, string, string) []models.ChecklistItem {
	if g.Checklist == nil {
		return []models.ChecklistItem{}
	}
	return g.Checklist
}

func (g *Generator) GenerateScript(context.Context, string, string) (string, error) {
	return g.Script, g.Err
}

func (g *Generator) GenerateImage(context.Context, string) (*generative.Image, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Image, nil
}

var (
	_ mailer.Mailer        = (*Mailer)(nil)
	_ generative.Generator = (*Generator)(nil)
)
