package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/httpresp"
	"github.com/BruksfildServices01/production-board/internal/middleware"
	ucBoard "github.com/BruksfildServices01/production-board/internal/usecase/board"
)

type BoardHandler struct {
	get  *ucBoard.GetBoard
	drag *ucBoard.DragEnd
}

func NewBoardHandler(get *ucBoard.GetBoard, drag *ucBoard.DragEnd) *BoardHandler {
	return &BoardHandler{get: get, drag: drag}
}

// ======================================================
// GET
// ======================================================

func (h *BoardHandler) Get(c *gin.Context) {
	view, err := h.get.Execute(c.Request.Context(), ucBoard.ViewInput{
		SessionID: middleware.SessionID(c),
		Viewer:    middleware.CurrentProfile(c),
		MineOnly:  boolQuery(c, "mine"),
		Refresh:   boolQuery(c, "refresh"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, view)
}

// ======================================================
// DRAG END
// ======================================================

func (h *BoardHandler) Drag(c *gin.Context) {
	var req domain.Drag
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if req.Type != domain.DragColumn && req.Type != domain.DragProject {
		httperr.BadRequest(c, "invalid_drag_type", "Tipo de arraste inválido.")
		return
	}

	out, err := h.drag.Execute(c.Request.Context(), ucBoard.DragInput{
		SessionID: middleware.SessionID(c),
		Viewer:    middleware.CurrentProfile(c),
		Drag:      req,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
