package project

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/infra/cache"
	"github.com/BruksfildServices01/production-board/internal/infra/generative"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/testutil"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

var (
	owner    = &models.Profile{ID: "o", Role: models.RoleFree, Approved: true}
	helper   = &models.Profile{ID: "h", Role: models.RoleFree, Approved: true}
	stranger = &models.Profile{ID: "s", Role: models.RoleFree, Approved: true}
	master   = &models.Profile{ID: "m", Role: models.RoleMaster, Approved: true}
)

type env struct {
	db       *testutil.Store
	sink     *testutil.AuditSink
	sessions *workspace.Sessions
	audit    *audit.Dispatcher
	store    *cache.Store
}

func newEnv() *env {
	db := testutil.New()
	db.Columns = []models.Column{
		{ID: "c-ideas", Title: "Ideias", Order: 0},
		{ID: "c-done", Title: "Concluído", Order: 1},
	}
	db.Projects = []models.Project{{
		ID:                 "p1",
		Title:              "Teaser",
		Brief:              "Lançamento",
		Stage:              "Ideias",
		OwnerID:            "o",
		ResponsibleUserIDs: []string{"h"},
		Checklist:          []models.ChecklistItem{{ID: "i1", Text: "Roteiro"}},
	}}

	sink := &testutil.AuditSink{}
	store := cache.NewMemory()
	return &env{
		db:   db,
		sink: sink,
		sessions: workspace.NewSessions(workspace.Repositories{
			Boards: db, Clients: db, Profiles: db, Appointments: db,
		}, store),
		audit: audit.NewDispatcher(sink),
		store: store,
	}
}

func ptr[T any](v T) *T { return &v }

// ------------------------------------------------------
// create
// ------------------------------------------------------

func TestCreateProjectInColumn(t *testing.T) {
	e := newEnv()
	uc := NewCreateProject(e.db, e.db, e.sessions, e.audit)

	p, err := uc.Execute(context.Background(), CreateProjectInput{
		SessionID: "s1",
		Viewer:    owner,
		Title:     "  Institucional ",
		EndDate:   "2024-05-10",
		ColumnID:  "c-done",
	})
	require.NoError(t, err)

	assert.Equal(t, "Institucional", p.Title)
	assert.Equal(t, "Concluído", p.Stage)
	assert.Equal(t, "o", p.OwnerID)
	assert.NotNil(t, p.Checklist)
	assert.Empty(t, p.Checklist)
	assert.True(t, p.EndDate.Equal(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)))

	snap, err := e.store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Contains(t, snap.Board.Columns[1].ProjectIDs, p.ID)

	assert.Eventually(t, func() bool {
		return len(e.sink.Actions()) == 1 && e.sink.Actions()[0] == "project_created"
	}, time.Second, 10*time.Millisecond)
}

func TestCreateProjectWithInlineClient(t *testing.T) {
	e := newEnv()
	uc := NewCreateProject(e.db, e.db, e.sessions, e.audit)

	p, err := uc.Execute(context.Background(), CreateProjectInput{
		SessionID: "s1",
		Viewer:    owner,
		Title:     "Spot",
		ColumnID:  "c-ideas",
		ClientID:  "ignored",
		NewClient: &models.Client{Name: "Acme", Email: "contato@acme.com"},
	})
	require.NoError(t, err)

	require.Len(t, e.db.Clients, 1)
	assert.Equal(t, e.db.Clients[0].ID, p.ClientID)
	assert.Equal(t, "o", e.db.Clients[0].OwnerID)
}

func TestCreateProjectValidation(t *testing.T) {
	e := newEnv()
	uc := NewCreateProject(e.db, e.db, e.sessions, e.audit)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateProjectInput{Viewer: owner, ColumnID: "c-ideas"})
	assert.True(t, httperr.IsBusiness(err, "title_required"))

	_, err = uc.Execute(ctx, CreateProjectInput{Viewer: owner, Title: "x"})
	assert.True(t, httperr.IsBusiness(err, "column_required"))

	_, err = uc.Execute(ctx, CreateProjectInput{Viewer: owner, Title: "x", ColumnID: "c-ideas", EndDate: "10/05/2024"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = uc.Execute(ctx, CreateProjectInput{Viewer: owner, Title: "x", ColumnID: "gone"})
	assert.True(t, httperr.IsBusiness(err, "column_not_found"))

	// nothing was written for any of them
	assert.Zero(t, e.db.Called("CreateProject"))
}

// ------------------------------------------------------
// update / delete
// ------------------------------------------------------

func TestUpdateProjectPartial(t *testing.T) {
	e := newEnv()
	uc := NewUpdateProject(e.db, e.sessions, e.audit)

	p, err := uc.Execute(context.Background(), UpdateProjectInput{
		SessionID:  "s1",
		Viewer:     helper,
		ProjectID:  "p1",
		Brief:      ptr("Novo brief"),
		UploadLink: ptr(" https://drive.example.com/x "),
	})
	require.NoError(t, err)

	assert.Equal(t, "Teaser", p.Title)
	assert.Equal(t, "Novo brief", p.Brief)
	assert.Equal(t, "https://drive.example.com/x", p.UploadLink)
	assert.Equal(t, "Novo brief", e.db.Projects[0].Brief)
}

func TestUpdateProjectKeepsStage(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.sessions.Open(ctx, workspace.OpenInput{SessionID: "s1", UserID: "o"})
	require.NoError(t, err)

	uc := NewUpdateProject(e.db, e.sessions, e.audit)
	p, err := uc.Execute(ctx, UpdateProjectInput{SessionID: "s1", Viewer: owner, ProjectID: "p1", Title: ptr("Teaser v2")})
	require.NoError(t, err)

	assert.Equal(t, "Ideias", p.Stage)
	assert.Equal(t, "Ideias", e.db.Projects[0].Stage)

	snap, err := e.store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, snap.Board.Columns[0].ProjectIDs)
	assert.Empty(t, snap.Board.Columns[1].ProjectIDs)
}

func TestUpdateProjectForbiddenForStranger(t *testing.T) {
	e := newEnv()
	uc := NewUpdateProject(e.db, e.sessions, e.audit)

	_, err := uc.Execute(context.Background(), UpdateProjectInput{Viewer: stranger, ProjectID: "p1", Title: ptr("x")})
	assert.True(t, httperr.IsBusiness(err, "project_forbidden"))
}

func TestDeleteProject(t *testing.T) {
	e := newEnv()
	uc := NewDeleteProject(e.db, e.sessions, e.audit)
	ctx := context.Background()

	err := uc.Execute(ctx, DeleteProjectInput{Viewer: helper, ProjectID: "p1"})
	assert.True(t, httperr.IsBusiness(err, "project_forbidden"))

	require.NoError(t, uc.Execute(ctx, DeleteProjectInput{Viewer: master, ProjectID: "p1"}))
	assert.Empty(t, e.db.Projects)
}

// ------------------------------------------------------
// checklist / responsible
// ------------------------------------------------------

func TestEditChecklist(t *testing.T) {
	e := newEnv()
	uc := NewEditChecklist(e.db, e.sessions, e.audit)
	ctx := context.Background()
	in := EditChecklistInput{SessionID: "s1", Viewer: owner, ProjectID: "p1"}

	in.Action = ChecklistAdd
	p, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	require.Len(t, p.Checklist, 2)
	added := p.Checklist[1]
	assert.Equal(t, "Nova tarefa", added.Text)
	assert.True(t, strings.HasPrefix(added.ID, "manual-"))

	in.Action, in.ItemID = ChecklistToggle, "i1"
	p, err = uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.True(t, p.Checklist[0].Completed)

	in.Action, in.ItemID, in.Text = ChecklistEdit, added.ID, "Gravar"
	p, err = uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Gravar", p.Checklist[1].Text)

	in.Action, in.ItemID = ChecklistDelete, "i1"
	p, err = uc.Execute(ctx, in)
	require.NoError(t, err)
	require.Len(t, p.Checklist, 1)
	assert.Equal(t, "Gravar", e.db.Projects[0].Checklist[0].Text)

	in.Action, in.ItemID = ChecklistToggle, "missing"
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "checklist_item_not_found"))
}

func TestToggleResponsible(t *testing.T) {
	e := newEnv()
	uc := NewToggleResponsible(e.db, e.sessions, e.audit)
	ctx := context.Background()

	p, err := uc.Execute(ctx, ToggleResponsibleInput{Viewer: owner, ProjectID: "p1", UserID: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"h", "x"}, []string(p.ResponsibleUserIDs))

	p, err = uc.Execute(ctx, ToggleResponsibleInput{Viewer: owner, ProjectID: "p1", UserID: "h"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, []string(p.ResponsibleUserIDs))
}

// ------------------------------------------------------
// generation
// ------------------------------------------------------

type fakeThumbs struct {
	raw []byte
	err error
}

func (f *fakeThumbs) Process(_ context.Context, projectID string, raw []byte) (string, error) {
	f.raw = raw
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + projectID + ".webp", nil
}

func TestGenerateChecklistReplacesList(t *testing.T) {
	e := newEnv()
	gen := &testutil.Generator{Checklist: generative.ChecklistFromSections([]string{"Roteiro"}, []string{"Gravar"}, nil)}
	uc := NewGenerate(e.db, gen, &fakeThumbs{}, e.sessions, e.audit)

	p, err := uc.Execute(context.Background(), GenerateInput{Viewer: owner, ProjectID: "p1", Kind: GenerateChecklist})
	require.NoError(t, err)

	require.Len(t, p.Checklist, 2)
	assert.Equal(t, "(Pré-produção) Roteiro", p.Checklist[0].Text)
	assert.Equal(t, "(Produção) Gravar", p.Checklist[1].Text)
}

func TestGenerateChecklistDegradesToEmpty(t *testing.T) {
	e := newEnv()
	uc := NewGenerate(e.db, &testutil.Generator{}, &fakeThumbs{}, e.sessions, e.audit)

	p, err := uc.Execute(context.Background(), GenerateInput{Viewer: owner, ProjectID: "p1", Kind: GenerateChecklist})
	require.NoError(t, err)
	assert.Empty(t, p.Checklist)
}

func TestGenerateScriptFailureBubbles(t *testing.T) {
	e := newEnv()
	uc := NewGenerate(e.db, &testutil.Generator{Err: errors.New("quota")}, &fakeThumbs{}, e.sessions, e.audit)

	_, err := uc.Execute(context.Background(), GenerateInput{Viewer: owner, ProjectID: "p1", Kind: GenerateScript})
	assert.True(t, httperr.IsBusiness(err, "script_generation_failed"))
	assert.Zero(t, e.db.Called("UpdateProject"))
}

func TestGenerateThumbnail(t *testing.T) {
	e := newEnv()
	thumbs := &fakeThumbs{}
	gen := &testutil.Generator{Image: &generative.Image{Data: []byte{9}, MIMEType: "image/png"}}
	uc := NewGenerate(e.db, gen, thumbs, e.sessions, e.audit)

	p, err := uc.Execute(context.Background(), GenerateInput{Viewer: owner, ProjectID: "p1", Kind: GenerateThumbnail})
	require.NoError(t, err)

	assert.Equal(t, []byte{9}, thumbs.raw)
	assert.Equal(t, "https://cdn.example.com/p1.webp", p.Thumbnail)
}
