package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/middleware"
	"github.com/BruksfildServices01/production-board/internal/models"
	ucProject "github.com/BruksfildServices01/production-board/internal/usecase/project"
)

// ======================================================
// HANDLER
// ======================================================

type ProjectUseCases struct {
	Create            *ucProject.CreateProject
	Update            *ucProject.UpdateProject
	Delete            *ucProject.DeleteProject
	Checklist         *ucProject.EditChecklist
	ToggleResponsible *ucProject.ToggleResponsible
	Generate          *ucProject.Generate
}

type ProjectHandler struct {
	uc ProjectUseCases
}

func NewProjectHandler(uc ProjectUseCases) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateProjectRequest struct {
	Title     string `json:"title"`
	Brief     string `json:"brief"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	ClientID  string         `json:"client_id"`
	NewClient *ClientRequest `json:"new_client"`

	ColumnID           string   `json:"column_id"`
	ResponsibleUserIDs []string `json:"responsible_user_ids"`
	UploadLink         string   `json:"upload_link"`
}

type UpdateProjectRequest struct {
	Title      *string `json:"title"`
	Brief      *string `json:"brief"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	ClientID   *string `json:"client_id"`
	Script     *string `json:"script"`
	UploadLink *string `json:"upload_link"`

	ResponsibleUserIDs *[]string `json:"responsible_user_ids"`
}

type ChecklistRequest struct {
	Action string `json:"action" binding:"required"`
	ItemID string `json:"item_id"`
	Text   string `json:"text"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var newClient *models.Client
	if req.NewClient != nil {
		newClient = req.NewClient.model()
	}

	p, err := h.uc.Create.Execute(c.Request.Context(), ucProject.CreateProjectInput{
		SessionID:          middleware.SessionID(c),
		Viewer:             middleware.CurrentProfile(c),
		Title:              req.Title,
		Brief:              req.Brief,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		ClientID:           req.ClientID,
		NewClient:          newClient,
		ColumnID:           req.ColumnID,
		ResponsibleUserIDs: req.ResponsibleUserIDs,
		UploadLink:         req.UploadLink,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *ProjectHandler) Update(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.uc.Update.Execute(c.Request.Context(), ucProject.UpdateProjectInput{
		SessionID:          middleware.SessionID(c),
		Viewer:             middleware.CurrentProfile(c),
		ProjectID:          c.Param("id"),
		Title:              req.Title,
		Brief:              req.Brief,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		ClientID:           req.ClientID,
		Script:             req.Script,
		UploadLink:         req.UploadLink,
		ResponsibleUserIDs: req.ResponsibleUserIDs,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	err := h.uc.Delete.Execute(c.Request.Context(), ucProject.DeleteProjectInput{
		SessionID: middleware.SessionID(c),
		Viewer:    middleware.CurrentProfile(c),
		ProjectID: c.Param("id"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// CHECKLIST / RESPONSIBLE
// ======================================================

func (h *ProjectHandler) Checklist(c *gin.Context) {
	var req ChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.uc.Checklist.Execute(c.Request.Context(), ucProject.EditChecklistInput{
		SessionID: middleware.SessionID(c),
		Viewer:    middleware.CurrentProfile(c),
		ProjectID: c.Param("id"),
		Action:    ucProject.ChecklistAction(req.Action),
		ItemID:    req.ItemID,
		Text:      req.Text,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) ToggleResponsible(c *gin.Context) {
	p, err := h.uc.ToggleResponsible.Execute(c.Request.Context(), ucProject.ToggleResponsibleInput{
		SessionID: middleware.SessionID(c),
		Viewer:    middleware.CurrentProfile(c),
		ProjectID: c.Param("id"),
		UserID:    c.Param("userId"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// ======================================================
// GENERATE
// ======================================================

func (h *ProjectHandler) Generate(c *gin.Context) {
	p, err := h.uc.Generate.Execute(c.Request.Context(), ucProject.GenerateInput{
		SessionID: middleware.SessionID(c),
		Viewer:    middleware.CurrentProfile(c),
		ProjectID: c.Param("id"),
		Kind:      ucProject.GenerateKind(c.Param("kind")),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
