// Package generative wraps the text and image model used to draft project
// content.
package generative

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/production-board/internal/models"
)

var (
	ErrDisabled = errors.New("generative model not configured")
	ErrNoImage  = errors.New("model returned no image")
)

type Image struct {
	Data     []byte
	MIMEType string
}

type Generator interface {
	// GenerateChecklist never fails; any problem yields an empty list.
	GenerateChecklist(ctx context.Context, title, brief string) []models.ChecklistItem

	GenerateScript(ctx context.Context, title, brief string) (string, error)

	GenerateImage(ctx context.Context, title string) (*Image, error)
}

// Disabled stands in when no API key is configured.
type Disabled struct{}

func (Disabled) GenerateChecklist(context.Context, string, string) []models.ChecklistItem {
	return []models.ChecklistItem{}
}

func (Disabled) GenerateScript(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}

func (Disabled) GenerateImage(context.Context, string) (*Image, error) {
	return nil, ErrDisabled
}
