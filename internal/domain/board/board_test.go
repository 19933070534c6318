package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/production-board/internal/models"
)

func fixture() (Board, []models.Project) {
	cols := []models.Column{
		{ID: "c-done", Title: "Done", Order: 1},
		{ID: "c-ideas", Title: "Ideas", Order: 0},
	}
	projects := []models.Project{
		{ID: "p1", Title: "Teaser", Stage: "Ideas"},
		{ID: "p2", Title: "Launch", Stage: "Done"},
		{ID: "p3", Title: "Docs", Stage: "Ideas"},
	}
	return Build(cols, projects), projects
}

func TestBuild_DerivesIDsFromStage(t *testing.T) {
	b, _ := fixture()

	require.Len(t, b.Columns, 2)
	assert.Equal(t, "Ideas", b.Columns[0].Title)
	assert.Equal(t, []string{"p1", "p3"}, b.Columns[0].ProjectIDs)
	assert.Equal(t, []string{"p2"}, b.Columns[1].ProjectIDs)
}

func TestBuild_EmptyColumnHasEmptyList(t *testing.T) {
	b := Build([]models.Column{{ID: "c", Title: "Empty"}}, nil)

	require.Len(t, b.Columns, 1)
	assert.NotNil(t, b.Columns[0].ProjectIDs)
	assert.Empty(t, b.Columns[0].ProjectIDs)
}

func TestApply_MoveProjectAcrossColumns(t *testing.T) {
	b, projects := fixture()

	res := Apply(b, projects, Drag{
		Type:        DragProject,
		DraggableID: "p1",
		Source:      Location{DroppableID: "c-ideas", Index: 0},
		Destination: &Location{DroppableID: "c-done", Index: 0},
	})

	require.True(t, res.Changed)
	assert.Equal(t, "Done", res.Projects[0].Stage)
	assert.Equal(t, []string{"p3"}, res.Board.Columns[0].ProjectIDs)
	assert.Equal(t, []string{"p1", "p2"}, res.Board.Columns[1].ProjectIDs)

	require.Len(t, res.Mutations, 1)
	assert.Equal(t, KindProjectStage, res.Mutations[0].Kind)
	assert.Equal(t, "p1", res.Mutations[0].TargetID)
	assert.Equal(t, "Done", res.Mutations[0].Stage)
	assert.Equal(t, StatusPending, res.Mutations[0].Status)

	// inputs untouched
	assert.Equal(t, "Ideas", projects[0].Stage)
	assert.Equal(t, []string{"p1", "p3"}, b.Columns[0].ProjectIDs)
}

func TestApply_MoveIdeasToDoneScenario(t *testing.T) {
	b := Build(
		[]models.Column{{ID: "a", Title: "Ideas", Order: 0}, {ID: "b", Title: "Done", Order: 1}},
		[]models.Project{{ID: "P", Stage: "Ideas"}},
	)

	res := Apply(b, []models.Project{{ID: "P", Stage: "Ideas"}}, Drag{
		Type:        DragProject,
		DraggableID: "P",
		Source:      Location{DroppableID: "a"},
		Destination: &Location{DroppableID: "b"},
	})

	assert.Equal(t, "Done", res.Projects[0].Stage)
	assert.NotContains(t, res.Board.Columns[0].ProjectIDs, "P")
	assert.Contains(t, res.Board.Columns[1].ProjectIDs, "P")
}

func TestApply_DestinationIndexIsClamped(t *testing.T) {
	b, projects := fixture()

	res := Apply(b, projects, Drag{
		Type:        DragProject,
		DraggableID: "p3",
		Source:      Location{DroppableID: "c-ideas", Index: 1},
		Destination: &Location{DroppableID: "c-done", Index: 42},
	})

	assert.Equal(t, []string{"p2", "p3"}, res.Board.Columns[1].ProjectIDs)
}

func TestApply_NoDestinationIsAbandoned(t *testing.T) {
	b, projects := fixture()

	res := Apply(b, projects, Drag{
		Type:        DragProject,
		DraggableID: "p1",
		Source:      Location{DroppableID: "c-ideas"},
	})

	assert.False(t, res.Changed)
	assert.Empty(t, res.Mutations)
	assert.Equal(t, b, res.Board)
}

func TestApply_SameColumnIsNoop(t *testing.T) {
	b, projects := fixture()

	res := Apply(b, projects, Drag{
		Type:        DragProject,
		DraggableID: "p1",
		Source:      Location{DroppableID: "c-ideas", Index: 0},
		Destination: &Location{DroppableID: "c-ideas", Index: 1},
	})

	assert.False(t, res.Changed)
	assert.Equal(t, []string{"p1", "p3"}, res.Board.Columns[0].ProjectIDs)
}

func TestApply_UnknownProjectOrColumn(t *testing.T) {
	b, projects := fixture()

	for _, d := range []Drag{
		{Type: DragProject, DraggableID: "nope", Source: Location{DroppableID: "c-ideas"}, Destination: &Location{DroppableID: "c-done"}},
		{Type: DragProject, DraggableID: "p1", Source: Location{DroppableID: "c-ideas"}, Destination: &Location{DroppableID: "gone"}},
		{Type: DragProject, DraggableID: "p1", Source: Location{DroppableID: "gone"}, Destination: &Location{DroppableID: "c-done"}},
	} {
		res := Apply(b, projects, d)
		assert.False(t, res.Changed)
		assert.Empty(t, res.Mutations)
	}
}

func TestApply_StaleSourceKeepsIDListsConsistent(t *testing.T) {
	cols := []models.Column{
		{ID: "c-ideas", Title: "Ideas", Order: 0},
		{ID: "c-done", Title: "Done", Order: 1},
		{ID: "c-archive", Title: "Archive", Order: 2},
	}
	projects := []models.Project{
		{ID: "p1", Stage: "Ideas"},
		{ID: "p2", Stage: "Done"},
	}
	b := Build(cols, projects)

	// the client still shows p1 under Done
	res := Apply(b, projects, Drag{
		Type:        DragProject,
		DraggableID: "p1",
		Source:      Location{DroppableID: "c-done"},
		Destination: &Location{DroppableID: "c-archive"},
	})

	require.True(t, res.Changed)
	assert.Equal(t, "Archive", res.Projects[0].Stage)
	assert.Equal(t, Build(cols, res.Projects), res.Board)
}

func TestApply_DropIntoOwnStageIsNoop(t *testing.T) {
	b, projects := fixture()

	res := Apply(b, projects, Drag{
		Type:        DragProject,
		DraggableID: "p2",
		Source:      Location{DroppableID: "c-ideas"},
		Destination: &Location{DroppableID: "c-done"},
	})

	assert.False(t, res.Changed)
	assert.Empty(t, res.Mutations)
}

func TestApply_ReorderColumns(t *testing.T) {
	b := Build([]models.Column{
		{ID: "a", Title: "A", Order: 0},
		{ID: "b", Title: "B", Order: 1},
		{ID: "c", Title: "C", Order: 2},
	}, nil)

	res := Apply(b, nil, Drag{
		Type:        DragColumn,
		DraggableID: "a",
		Source:      Location{DroppableID: "board", Index: 0},
		Destination: &Location{DroppableID: "board", Index: 2},
	})

	require.True(t, res.Changed)
	titles := []string{}
	for _, c := range res.Board.Columns {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"B", "C", "A"}, titles)

	require.Len(t, res.Mutations, 3)
	for i, m := range res.Mutations {
		assert.Equal(t, KindColumnRank, m.Kind)
		assert.Equal(t, res.Board.Columns[i].ID, m.TargetID)
		assert.Equal(t, i, m.Rank)
		assert.Equal(t, i, res.Board.Columns[i].Order)
	}
}

func TestApply_ReorderSequenceEndsAtLastPermutation(t *testing.T) {
	b := Build([]models.Column{
		{ID: "a", Title: "A", Order: 0},
		{ID: "b", Title: "B", Order: 1},
		{ID: "c", Title: "C", Order: 2},
		{ID: "d", Title: "D", Order: 3},
	}, nil)

	moves := [][2]int{{0, 3}, {2, 0}, {1, 2}, {3, 3}}
	var last Result
	for _, mv := range moves {
		last = Apply(b, nil, Drag{
			Type:        DragColumn,
			Source:      Location{Index: mv[0]},
			Destination: &Location{Index: mv[1]},
		})
		b = last.Board
	}

	ids := []string{}
	for _, c := range b.Columns {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids)
	for i, m := range last.Mutations {
		assert.Equal(t, ids[i], m.TargetID)
		assert.Equal(t, i, m.Rank)
	}
}

func TestApply_ReorderInvalidSource(t *testing.T) {
	b, projects := fixture()

	res := Apply(b, projects, Drag{
		Type:        DragColumn,
		Source:      Location{Index: 9},
		Destination: &Location{Index: 0},
	})

	assert.False(t, res.Changed)
}

func TestRestrict(t *testing.T) {
	b, projects := fixture()

	r := b.Restrict(projects[:1])

	assert.Equal(t, []string{"p1"}, r.Columns[0].ProjectIDs)
	assert.Empty(t, r.Columns[1].ProjectIDs)
	assert.Equal(t, []string{"p1", "p3"}, b.Columns[0].ProjectIDs)
}

func TestDefaultColumns(t *testing.T) {
	cols := DefaultColumns()

	require.Len(t, cols, 7)
	assert.Equal(t, "Ideias", cols[0].Title)
	assert.Equal(t, 6, cols[6].Order)
}

func TestReassign(t *testing.T) {
	b, projects := fixture()
	projects[2].Stage = "Done"

	r := b.Reassign(projects)

	assert.Equal(t, []string{"p1"}, r.Columns[0].ProjectIDs)
	assert.Equal(t, []string{"p2", "p3"}, r.Columns[1].ProjectIDs)
}
