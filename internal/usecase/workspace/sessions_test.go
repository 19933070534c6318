package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/production-board/internal/domain/workspace"
	"github.com/BruksfildServices01/production-board/internal/infra/cache"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/testutil"
)

func newSessions(db *testutil.Store) (*Sessions, *cache.Store) {
	store := cache.NewMemory()
	return NewSessions(Repositories{
		Boards:       db,
		Clients:      db,
		Profiles:     db,
		Appointments: db,
	}, store), store
}

func TestOpenSeedsDefaultColumns(t *testing.T) {
	db := testutil.New()
	s, _ := newSessions(db)

	snap, err := s.Open(context.Background(), OpenInput{SessionID: "s1", UserID: "u1"})
	require.NoError(t, err)

	require.Len(t, snap.Board.Columns, 7)
	assert.Equal(t, "Ideias", snap.Board.Columns[0].Title)
	assert.Len(t, db.Columns, 7)
	for _, c := range snap.Board.Columns {
		assert.NotEmpty(t, c.ID)
	}
}

func TestOpenUsesCacheUntilRefresh(t *testing.T) {
	db := testutil.New()
	db.Columns = []models.Column{{ID: "c1", Title: "Ideas"}}
	db.Projects = []models.Project{{ID: "p1", Stage: "Ideas"}}
	s, _ := newSessions(db)
	ctx := context.Background()

	_, err := s.Open(ctx, OpenInput{SessionID: "s1", UserID: "u1"})
	require.NoError(t, err)

	db.Projects = append(db.Projects, models.Project{ID: "p2", Stage: "Ideas"})

	cached, err := s.Open(ctx, OpenInput{SessionID: "s1", UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, cached.Projects, 1)
	assert.Equal(t, 1, db.Called("ListProjects"))

	fresh, err := s.Open(ctx, OpenInput{SessionID: "s1", UserID: "u1", Refresh: true})
	require.NoError(t, err)
	assert.Len(t, fresh.Projects, 2)
	assert.Equal(t, []string{"p1", "p2"}, fresh.Board.Columns[0].ProjectIDs)
}

func TestWriteInOneSessionRefreshesTheOthers(t *testing.T) {
	db := testutil.New()
	db.Columns = []models.Column{{ID: "c1", Title: "Ideas"}}
	db.Projects = []models.Project{{ID: "p1", Stage: "Ideas"}}
	s, _ := newSessions(db)
	ctx := context.Background()

	_, err := s.Open(ctx, OpenInput{SessionID: "sA", UserID: "u1"})
	require.NoError(t, err)
	_, err = s.Open(ctx, OpenInput{SessionID: "sB", UserID: "u2"})
	require.NoError(t, err)

	created := models.Project{ID: "p2", Stage: "Ideas"}
	db.Projects = append(db.Projects, created)
	s.Merge(ctx, "sA", func(snap *domain.Snapshot) { snap.AddProject(created) })
	calls := db.Called("ListProjects")

	// the writer keeps its merged snapshot
	a, err := s.Open(ctx, OpenInput{SessionID: "sA", UserID: "u1"})
	require.NoError(t, err)
	_, ok := a.Project("p2")
	assert.True(t, ok)
	assert.Equal(t, calls, db.Called("ListProjects"))

	// everyone else re-reads the store
	b, err := s.Open(ctx, OpenInput{SessionID: "sB", UserID: "u2"})
	require.NoError(t, err)
	_, ok = b.Project("p2")
	assert.True(t, ok)
	assert.Equal(t, []string{"p1", "p2"}, b.Board.Columns[0].ProjectIDs)
	assert.Equal(t, calls+1, db.Called("ListProjects"))
}

func TestInvalidateWithoutSessionStillRefreshes(t *testing.T) {
	db := testutil.New()
	db.Columns = []models.Column{{ID: "c1", Title: "Ideas"}}
	s, _ := newSessions(db)
	ctx := context.Background()

	_, err := s.Open(ctx, OpenInput{SessionID: "s1", UserID: "u1"})
	require.NoError(t, err)

	db.Profiles = append(db.Profiles, models.Profile{ID: "new", Name: "Nova"})
	s.Invalidate(ctx)

	snap, err := s.Open(ctx, OpenInput{SessionID: "s1", UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, snap.Users, 1)
}

func TestOpenIgnoresSnapshotOfAnotherUser(t *testing.T) {
	db := testutil.New()
	db.Columns = []models.Column{{ID: "c1", Title: "Ideas"}}
	s, store := newSessions(db)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Snapshot{SessionID: "s1", UserID: "intruder"}))

	snap, err := s.Open(ctx, OpenInput{SessionID: "s1", UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", snap.UserID)
	assert.Len(t, snap.Board.Columns, 1)
}

func TestOpenFailsWhenAnyFetchFails(t *testing.T) {
	db := testutil.New()
	db.Fail["ListClients"] = errors.New("connection refused")
	s, _ := newSessions(db)

	_, err := s.Open(context.Background(), OpenInput{SessionID: "s1", UserID: "u1"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestMergeAndClose(t *testing.T) {
	db := testutil.New()
	db.Columns = []models.Column{{ID: "c1", Title: "Ideas"}}
	s, store := newSessions(db)
	ctx := context.Background()

	_, err := s.Open(ctx, OpenInput{SessionID: "s1", UserID: "u1"})
	require.NoError(t, err)

	s.Merge(ctx, "s1", func(snap *domain.Snapshot) {
		snap.UpsertClient(models.Client{ID: "cl1", Name: "Acme"})
	})

	snap, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, snap.Clients, 1)

	// merging into a session that never opened is a no-op
	s.Merge(ctx, "other", func(snap *domain.Snapshot) { t.Fatal("must not be called") })

	require.NoError(t, s.Close(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNotCached)
}

func TestReconcileRebuildsFromStore(t *testing.T) {
	db := testutil.New()
	db.Columns = []models.Column{{ID: "c1", Title: "Ideas"}, {ID: "c2", Title: "Done", Order: 1}}
	db.Projects = []models.Project{{ID: "p1", Stage: "Ideas"}}
	s, _ := newSessions(db)
	ctx := context.Background()

	snap, err := s.Open(ctx, OpenInput{SessionID: "s1", UserID: "u1"})
	require.NoError(t, err)

	snap.Projects[0].Stage = "Done"
	snap.Board.Columns[0].ProjectIDs = []string{}
	snap.Board.Columns[1].ProjectIDs = []string{"p1"}

	require.NoError(t, s.Reconcile(ctx, snap))
	assert.Equal(t, "Ideas", snap.Projects[0].Stage)
	assert.Equal(t, []string{"p1"}, snap.Board.Columns[0].ProjectIDs)
}
