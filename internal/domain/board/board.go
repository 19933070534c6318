package board

import (
	"sort"

	"github.com/BruksfildServices01/production-board/internal/models"
)

// ===============================
// View shape
// ===============================

// Column is a stage as rendered on the board. ProjectIDs is derived from
// Project.Stage on every fetch and is never persisted.
type Column struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Order      int      `json:"order"`
	ProjectIDs []string `json:"projectIds"`
}

type Board struct {
	Columns []Column `json:"columns"`
}

// Build recomputes every column's id list from the flat project table.
// Columns come out sorted by Order; projects keep their input order.
func Build(columns []models.Column, projects []models.Project) Board {
	sorted := make([]models.Column, len(columns))
	copy(sorted, columns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	b := Board{Columns: make([]Column, 0, len(sorted))}
	for _, col := range sorted {
		ids := make([]string, 0)
		for _, p := range projects {
			if p.Stage == col.Title {
				ids = append(ids, p.ID)
			}
		}
		b.Columns = append(b.Columns, Column{
			ID:         col.ID,
			Title:      col.Title,
			Order:      col.Order,
			ProjectIDs: ids,
		})
	}
	return b
}

func (b Board) Clone() Board {
	out := Board{Columns: make([]Column, len(b.Columns))}
	for i, c := range b.Columns {
		c.ProjectIDs = append([]string(nil), c.ProjectIDs...)
		if c.ProjectIDs == nil {
			c.ProjectIDs = []string{}
		}
		out.Columns[i] = c
	}
	return out
}

func (b Board) ColumnIndex(id string) int {
	for i, c := range b.Columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (b Board) ColumnByID(id string) (Column, bool) {
	if i := b.ColumnIndex(id); i >= 0 {
		return b.Columns[i], true
	}
	return Column{}, false
}

// Restrict keeps only the ids present in visible, preserving order.
func (b Board) Restrict(visible []models.Project) Board {
	keep := make(map[string]struct{}, len(visible))
	for _, p := range visible {
		keep[p.ID] = struct{}{}
	}

	out := b.Clone()
	for i, c := range out.Columns {
		ids := make([]string, 0, len(c.ProjectIDs))
		for _, id := range c.ProjectIDs {
			if _, ok := keep[id]; ok {
				ids = append(ids, id)
			}
		}
		out.Columns[i].ProjectIDs = ids
	}
	return out
}

// Reassign recomputes the id lists after projects changed stage outside a
// drag, keeping the column order.
func (b Board) Reassign(projects []models.Project) Board {
	cols := make([]models.Column, 0, len(b.Columns))
	for _, c := range b.Columns {
		cols = append(cols, models.Column{ID: c.ID, Title: c.Title, Order: c.Order})
	}
	return Build(cols, projects)
}
