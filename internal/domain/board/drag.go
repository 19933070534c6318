package board

import "github.com/BruksfildServices01/production-board/internal/models"

// ===============================
// Drag input
// ===============================

type DragType string

const (
	DragColumn  DragType = "COLUMN"
	DragProject DragType = "PROJECT"
)

type Location struct {
	DroppableID string `json:"droppableId"`
	Index       int    `json:"index"`
}

// Drag mirrors what the browser drag-and-drop library reports on drop.
// A nil Destination means the item was released outside any target.
type Drag struct {
	Type        DragType  `json:"type"`
	DraggableID string    `json:"draggableId"`
	Source      Location  `json:"source"`
	Destination *Location `json:"destination"`
}

// ===============================
// Mutations
// ===============================

type MutationKind string

const (
	KindColumnRank   MutationKind = "column_rank"
	KindProjectStage MutationKind = "project_stage"
)

type MutationStatus string

const (
	StatusPending   MutationStatus = "pending"
	StatusConfirmed MutationStatus = "confirmed"
	StatusFailed    MutationStatus = "failed"
)

// Mutation is one remote write implied by an optimistic board change.
type Mutation struct {
	Kind     MutationKind   `json:"kind"`
	TargetID string         `json:"target_id"`
	Rank     int            `json:"rank,omitempty"`
	Stage    string         `json:"stage,omitempty"`
	Status   MutationStatus `json:"status"`
	Error    string         `json:"error,omitempty"`
}

type Result struct {
	Board     Board
	Projects  []models.Project
	Mutations []Mutation
	Changed   bool
}

// ===============================
// Reducer
// ===============================

// Apply computes the optimistic board after a drop. It never touches its
// inputs; the returned Result carries copies plus the writes to issue.
func Apply(b Board, projects []models.Project, d Drag) Result {
	unchanged := Result{Board: b, Projects: projects}

	if d.Destination == nil {
		return unchanged
	}

	if d.Type == DragColumn {
		return reorderColumns(b, projects, d.Source.Index, d.Destination.Index)
	}

	if d.Source.DroppableID == d.Destination.DroppableID {
		// no persisted rank inside a column
		return unchanged
	}

	return moveProject(b, projects, d)
}

func reorderColumns(b Board, projects []models.Project, from, to int) Result {
	n := len(b.Columns)
	if from < 0 || from >= n {
		return Result{Board: b, Projects: projects}
	}

	out := b.Clone()
	moved := out.Columns[from]
	cols := append(out.Columns[:from:from], out.Columns[from+1:]...)
	to = clamp(to, len(cols))

	cols = append(cols, Column{})
	copy(cols[to+1:], cols[to:])
	cols[to] = moved

	muts := make([]Mutation, 0, len(cols))
	for i := range cols {
		cols[i].Order = i
		muts = append(muts, Mutation{
			Kind:     KindColumnRank,
			TargetID: cols[i].ID,
			Rank:     i,
			Status:   StatusPending,
		})
	}
	out.Columns = cols

	return Result{Board: out, Projects: projects, Mutations: muts, Changed: true}
}

// moveProject rejects a drag whose source column is unknown. The id is taken
// out of every column, so a stale source list cannot leave it in two places.
func moveProject(b Board, projects []models.Project, d Drag) Result {
	unchanged := Result{Board: b, Projects: projects}

	pIdx := -1
	for i, p := range projects {
		if p.ID == d.DraggableID {
			pIdx = i
			break
		}
	}
	srcIdx := b.ColumnIndex(d.Source.DroppableID)
	destIdx := b.ColumnIndex(d.Destination.DroppableID)
	if pIdx < 0 || srcIdx < 0 || destIdx < 0 {
		return unchanged
	}

	stage := b.Columns[destIdx].Title
	if projects[pIdx].Stage == stage {
		return unchanged
	}

	newProjects := make([]models.Project, len(projects))
	copy(newProjects, projects)
	newProjects[pIdx].Stage = stage

	out := b.Clone()
	for i := range out.Columns {
		out.Columns[i].ProjectIDs = without(out.Columns[i].ProjectIDs, d.DraggableID)
	}
	dest := &out.Columns[destIdx]
	dest.ProjectIDs = insertAt(dest.ProjectIDs, d.Destination.Index, d.DraggableID)

	return Result{
		Board:    out,
		Projects: newProjects,
		Mutations: []Mutation{{
			Kind:     KindProjectStage,
			TargetID: d.DraggableID,
			Stage:    stage,
			Status:   StatusPending,
		}},
		Changed: true,
	}
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func insertAt(ids []string, idx int, id string) []string {
	idx = clamp(idx, len(ids))
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:idx]...)
	out = append(out, id)
	return append(out, ids[idx:]...)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
