package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/httpresp"
	"github.com/BruksfildServices01/production-board/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/production-board/internal/usecase/appointment"
)

const maxCalendarFile = 2 << 20

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Create  *ucAppointment.CreateAppointment
	Update  *ucAppointment.UpdateAppointment
	Delete  *ucAppointment.DeleteAppointment
	List    *ucAppointment.ListAppointments
	Preview *ucAppointment.PreviewImport
	Confirm *ucAppointment.ConfirmImport
}

type AppointmentHandler struct {
	uc AppointmentUseCases
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type UpdateAppointmentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		SessionID:   middleware.SessionID(c),
		UserID:      c.GetString(middleware.ContextUserID),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Timezone:    viewerTimezone(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	year, month, ok := monthQuery(c)
	if !ok {
		httperr.BadRequest(c, "invalid_month", "Ano ou mês inválido.")
		return
	}

	list, err := h.uc.List.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		SessionID: middleware.SessionID(c),
		Viewer:    middleware.CurrentProfile(c),
		MineOnly:  boolQuery(c, "mine"),
		Timezone:  viewerTimezone(c),
		Year:      year,
		Month:     month,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		SessionID:     middleware.SessionID(c),
		Actor:         middleware.CurrentProfile(c),
		AppointmentID: c.Param("id"),
		Title:         req.Title,
		Description:   req.Description,
		Date:          req.Date,
		Time:          req.Time,
		Timezone:      viewerTimezone(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	err := h.uc.Delete.Execute(
		c.Request.Context(),
		middleware.SessionID(c),
		middleware.CurrentProfile(c),
		c.Param("id"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// ICS IMPORT
// ======================================================

// ImportPreview takes the .ics as a multipart "file" field or as the raw
// request body. Nothing is written until ImportConfirm.
func (h *AppointmentHandler) ImportPreview(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCalendarFile)

	var file io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			httperr.BadRequest(c, "file_required", "Selecione um arquivo .ics.")
			return
		}
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, "file_unreadable", "Não foi possível ler o arquivo.")
			return
		}
		defer f.Close()
		file = f
	}

	out, err := h.uc.Preview.Execute(c.Request.Context(), ucAppointment.PreviewImportInput{
		UserID:   c.GetString(middleware.ContextUserID),
		File:     file,
		Timezone: viewerTimezone(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ImportConfirm(c *gin.Context) {
	created, err := h.uc.Confirm.Execute(c.Request.Context(), ucAppointment.ConfirmImportInput{
		SessionID: middleware.SessionID(c),
		UserID:    c.GetString(middleware.ContextUserID),
		ImportID:  c.Param("importId"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"created":      len(created),
		"appointments": created,
	})
}
