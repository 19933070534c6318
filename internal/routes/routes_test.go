package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/production-board/internal/config"
	"github.com/BruksfildServices01/production-board/internal/domain/access"
	"github.com/BruksfildServices01/production-board/internal/infra/cache"
	"github.com/BruksfildServices01/production-board/internal/models"
	"github.com/BruksfildServices01/production-board/internal/testutil"
	"github.com/BruksfildServices01/production-board/internal/thumbnail"
)

const bossEmail = "chefe@produtora.com.br"

type server struct {
	router *gin.Engine
	db     *testutil.Store
	mail   *testutil.Mailer
	audit  *testutil.AuditSink
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &server{
		router: gin.New(),
		db:     testutil.New(),
		mail:   &testutil.Mailer{},
		audit:  &testutil.AuditSink{},
	}

	RegisterRoutes(s.router, Deps{
		Config: &config.Config{
			JWTSecret:       "test-secret",
			AppBaseURL:      "http://app.local",
			SuperuserEmail:  bossEmail,
			DefaultTimezone: "UTC",
		},
		Boards:       s.db,
		Clients:      s.db,
		Profiles:     s.db,
		Appointments: s.db,
		AuditLogs:    s.audit,
		AuditSink:    s.audit,
		Cache:        cache.NewMemory(),
		Mailer:       s.mail,
		Generator:    &testutil.Generator{Script: "Roteiro pronto"},
		Thumbnails:   thumbnail.New(nil),
		CheckEmail:   func(string) bool { return true },
	})
	return s
}

func (s *server) call(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type session struct {
	Token   string          `json:"token"`
	State   access.State    `json:"state"`
	Profile *models.Profile `json:"profile"`
}

func (s *server) signUp(t *testing.T, name, email string) session {
	t.Helper()
	w := s.call(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": name, "email": email, "password": "segredo123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[session](t, w)
}

type boardView struct {
	Board struct {
		Columns []struct {
			ID         string   `json:"id"`
			Title      string   `json:"title"`
			ProjectIDs []string `json:"projectIds"`
		} `json:"columns"`
	} `json:"board"`
	Projects []models.Project `json:"projects"`
}

func TestAccessGate(t *testing.T) {
	s := newServer(t)

	boss := s.signUp(t, "Chefe", bossEmail)
	assert.Equal(t, access.StateAuthorized, boss.State)
	assert.True(t, boss.Profile.Superuser)

	ana := s.signUp(t, "Ana", "ana@produtora.com.br")
	assert.Equal(t, access.StatePending, ana.State)

	w := s.call(t, http.MethodGet, "/api/board", ana.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "pending_approval")

	w = s.call(t, http.MethodGet, "/api/me", ana.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"pending"`)

	// approval mails the set-password link and opens the board
	w = s.call(t, http.MethodPatch, "/api/users/"+ana.Profile.ID, boss.Token, gin.H{"approved": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"approval_mail_sent":true`)
	assert.Equal(t, 1, s.mail.Count())

	assert.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/board", ana.Token, nil).Code)

	// a Free account never reaches the admin screens
	assert.Equal(t, http.StatusForbidden, s.call(t, http.MethodGet, "/api/users", ana.Token, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.call(t, http.MethodGet, "/api/audit-logs", ana.Token, nil).Code)

	w = s.call(t, http.MethodDelete, "/api/users/"+boss.Profile.ID, boss.Token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "cannot_delete_superuser")
}

func TestBoardCreateAndDrag(t *testing.T) {
	s := newServer(t)
	boss := s.signUp(t, "Chefe", bossEmail)

	w := s.call(t, http.MethodGet, "/api/board", boss.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[boardView](t, w)
	require.Len(t, view.Board.Columns, 7)
	ideas, next := view.Board.Columns[0], view.Board.Columns[1]

	w = s.call(t, http.MethodPost, "/api/projects", boss.Token, gin.H{
		"title":      "Teaser de lançamento",
		"column_id":  ideas.ID,
		"end_date":   "2024-01-15",
		"new_client": gin.H{"name": "Acme"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	project := decode[models.Project](t, w)
	assert.Equal(t, ideas.Title, project.Stage)
	assert.NotEmpty(t, project.ClientID)

	w = s.call(t, http.MethodPost, "/api/board/drag", boss.Token, gin.H{
		"type":        "PROJECT",
		"draggableId": project.ID,
		"source":      gin.H{"droppableId": ideas.ID, "index": 0},
		"destination": gin.H{"droppableId": next.ID, "index": 0},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)

	stored, err := s.db.GetProject(t.Context(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, next.Title, stored.Stage)

	w = s.call(t, http.MethodGet, "/api/board", boss.Token, nil)
	view = decode[boardView](t, w)
	assert.Equal(t, []string{project.ID}, view.Board.Columns[1].ProjectIDs)

	// the edit form cannot move a card
	w = s.call(t, http.MethodPatch, "/api/projects/"+project.ID, boss.Token, gin.H{
		"title": "Teaser final",
		"stage": ideas.Title,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored, err = s.db.GetProject(t.Context(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teaser final", stored.Title)
	assert.Equal(t, next.Title, stored.Stage)

	w = s.call(t, http.MethodPost, "/api/board/drag", boss.Token, gin.H{"type": "CARD"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.call(t, http.MethodPost, "/api/projects/"+project.ID+"/generate/script", boss.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Roteiro pronto")

	w = s.call(t, http.MethodGet, "/api/calendar?year=2024&month=1", boss.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), project.ID)

	assert.Equal(t, http.StatusBadRequest, s.call(t, http.MethodGet, "/api/calendar?year=2024&month=13", boss.Token, nil).Code)

	assert.Eventually(t, func() bool {
		for _, a := range s.audit.Actions() {
			if a == "project_stage_changed" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	w = s.call(t, http.MethodGet, "/api/audit-logs?action=project_stage_changed", boss.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestVisibilityForFreeUsers(t *testing.T) {
	s := newServer(t)
	boss := s.signUp(t, "Chefe", bossEmail)
	ana := s.signUp(t, "Ana", "ana@produtora.com.br")
	s.call(t, http.MethodPatch, "/api/users/"+ana.Profile.ID, boss.Token, gin.H{"approved": true})

	view := decode[boardView](t, s.call(t, http.MethodGet, "/api/board", boss.Token, nil))
	col := view.Board.Columns[0].ID

	// ana's session is already open when the projects are created
	view = decode[boardView](t, s.call(t, http.MethodGet, "/api/board", ana.Token, nil))
	require.Empty(t, view.Projects)

	hidden := decode[models.Project](t, s.call(t, http.MethodPost, "/api/projects", boss.Token, gin.H{
		"title": "Interno", "column_id": col,
	}))
	shared := decode[models.Project](t, s.call(t, http.MethodPost, "/api/projects", boss.Token, gin.H{
		"title": "Compartilhado", "column_id": col, "responsible_user_ids": []string{ana.Profile.ID},
	}))

	view = decode[boardView](t, s.call(t, http.MethodGet, "/api/board", ana.Token, nil))
	require.Len(t, view.Projects, 1)
	assert.Equal(t, shared.ID, view.Projects[0].ID)
	assert.Equal(t, []string{shared.ID}, view.Board.Columns[0].ProjectIDs)

	w := s.call(t, http.MethodPost, "/api/board/drag", ana.Token, gin.H{
		"type":        "PROJECT",
		"draggableId": hidden.ID,
		"source":      gin.H{"droppableId": col},
		"destination": gin.H{"droppableId": view.Board.Columns[1].ID},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newServer(t)
	boss := s.signUp(t, "Chefe", bossEmail)

	require.Equal(t, http.StatusNoContent, s.call(t, http.MethodPost, "/api/auth/logout", boss.Token, nil).Code)

	w := s.call(t, http.MethodGet, "/api/me", boss.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session_revoked")

	w = s.call(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": bossEmail, "password": "segredo123"})
	require.Equal(t, http.StatusOK, w.Code)
	again := decode[session](t, w)
	assert.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/me", again.Token, nil).Code)
}

func TestPasswordResetIsSingleUse(t *testing.T) {
	s := newServer(t)
	s.signUp(t, "Chefe", bossEmail)

	w := s.call(t, http.MethodPost, "/api/auth/password-reset", "", gin.H{"email": bossEmail})
	require.Equal(t, http.StatusAccepted, w.Code)

	// unknown addresses get the same answer and no mail
	w = s.call(t, http.MethodPost, "/api/auth/password-reset", "", gin.H{"email": "ninguem@produtora.com.br"})
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Equal(t, 1, s.mail.Count())

	body := s.mail.Sent[0].Body
	start := strings.Index(body, "token=") + len("token=")
	end := start + strings.IndexAny(body[start:], "\n ")
	token, err := url.QueryUnescape(body[start:end])
	require.NoError(t, err)

	confirm := gin.H{"token": token, "password": "nova-senha"}
	assert.Equal(t, http.StatusNoContent, s.call(t, http.MethodPost, "/api/auth/password-reset/confirm", "", confirm).Code)
	assert.Equal(t, http.StatusUnauthorized, s.call(t, http.MethodPost, "/api/auth/password-reset/confirm", "", confirm).Code)

	w = s.call(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": bossEmail, "password": "nova-senha"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCalendarImport(t *testing.T) {
	s := newServer(t)
	boss := s.signUp(t, "Chefe", bossEmail)

	ics := "BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nSUMMARY:Kickoff\r\nDTSTART:20240115T140000Z\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"
	req := httptest.NewRequest(http.MethodPost, "/api/appointments/import", strings.NewReader(ics))
	req.Header.Set("Content-Type", "text/calendar")
	req.Header.Set("Authorization", "Bearer "+boss.Token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	preview := decode[struct {
		ImportID string `json:"import_id"`
	}](t, w)
	assert.Empty(t, s.db.Appointments)

	w = s.call(t, http.MethodPost, "/api/appointments/import/"+preview.ImportID+"/confirm", boss.Token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"created":1`)

	w = s.call(t, http.MethodGet, "/api/appointments?year=2024&month=1&tz=America/Sao_Paulo", boss.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"local_time":"11:00"`)
}
