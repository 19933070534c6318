package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/infra/cache"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/testutil"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

func setup() (*testutil.Store, *workspace.Sessions, *audit.Dispatcher) {
	db := testutil.New()
	db.Columns = []models.Column{{ID: "c", Title: "Ideias"}}
	sessions := workspace.NewSessions(workspace.Repositories{
		Boards: db, Clients: db, Profiles: db, Appointments: db,
	}, cache.NewMemory())
	return db, sessions, audit.NewDispatcher(&testutil.AuditSink{})
}

func TestClientLifecycle(t *testing.T) {
	db, sessions, disp := setup()
	ctx := context.Background()

	list := NewListClients(sessions)
	save := NewSaveClient(db, sessions, disp)
	del := NewDeleteClient(db, sessions, disp)

	clients, err := list.Execute(ctx, "s1", "u1")
	require.NoError(t, err)
	assert.Empty(t, clients)

	c, err := save.Execute(ctx, SaveClientInput{
		SessionID: "s1",
		UserID:    "u1",
		Fields:    ClientFields{Name: " Acme ", Email: " Contato@Acme.com "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "contato@acme.com", c.Email)
	assert.Equal(t, "u1", c.OwnerID)

	_, err = save.Execute(ctx, SaveClientInput{
		SessionID: "s1",
		UserID:    "u1",
		ClientID:  c.ID,
		Fields:    ClientFields{Name: "Acme Ltda", CNPJ: "12.345.678/0001-90"},
	})
	require.NoError(t, err)

	clients, err = list.Execute(ctx, "s1", "u1")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme Ltda", clients[0].Name)

	require.NoError(t, del.Execute(ctx, "s1", "u1", c.ID))
	clients, err = list.Execute(ctx, "s1", "u1")
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestSaveClientRequiresName(t *testing.T) {
	db, sessions, disp := setup()

	_, err := NewSaveClient(db, sessions, disp).Execute(context.Background(), SaveClientInput{Fields: ClientFields{Email: "a@b.com"}})
	assert.True(t, httperr.IsBusiness(err, "name_required"))
	assert.Zero(t, db.Called("CreateClient"))
}

func TestUpdateMissingClient(t *testing.T) {
	db, sessions, disp := setup()

	_, err := NewSaveClient(db, sessions, disp).Execute(context.Background(), SaveClientInput{
		ClientID: "nope",
		Fields:   ClientFields{Name: "x"},
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
