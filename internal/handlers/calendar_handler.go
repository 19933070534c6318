package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/httpresp"
	"github.com/BruksfildServices01/production-board/internal/middleware"
	ucCalendar "github.com/BruksfildServices01/production-board/internal/usecase/calendar"
)

type CalendarHandler struct {
	month *ucCalendar.GetMonth
}

func NewCalendarHandler(month *ucCalendar.GetMonth) *CalendarHandler {
	return &CalendarHandler{month: month}
}

func (h *CalendarHandler) Month(c *gin.Context) {
	year, month, ok := monthQuery(c)
	if !ok {
		httperr.BadRequest(c, "invalid_month", "Ano ou mês inválido.")
		return
	}

	view, err := h.month.Execute(c.Request.Context(), ucCalendar.GetMonthInput{
		SessionID: middleware.SessionID(c),
		Viewer:    middleware.CurrentProfile(c),
		Year:      year,
		Month:     month,
		Timezone:  viewerTimezone(c),
		MineOnly:  boolQuery(c, "mine"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, view)
}
