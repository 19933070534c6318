package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/httpresp"
	"github.com/BruksfildServices01/production-board/internal/middleware"
	ucAuth "github.com/BruksfildServices01/production-board/internal/usecase/auth"
)

type MeHandler struct {
	svc *ucAuth.Service
}

func NewMeHandler(svc *ucAuth.Service) *MeHandler {
	return &MeHandler{svc: svc}
}

// GetMe reports the access state the client routes on: pending accounts
// land on the waiting screen, authorized ones on the dashboard.
func (h *MeHandler) GetMe(c *gin.Context) {
	state, err := h.svc.Session(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, state)
}
