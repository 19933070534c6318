package board

import "github.com/BruksfildServices01/production-board/internal/models"

var defaultStages = []string{
	"Ideias",
	"Briefing",
	"Filmagem",
	"Edição",
	"Tráfego Pago",
	"Inteligência Artificial",
	"Concluído",
}

// DefaultColumns is the stage set seeded into an empty board.
func DefaultColumns() []models.Column {
	cols := make([]models.Column, 0, len(defaultStages))
	for i, title := range defaultStages {
		cols = append(cols, models.Column{Title: title, Order: i})
	}
	return cols
}
