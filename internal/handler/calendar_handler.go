package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arfandy-is/calendar-api/internal/calendar"
	"github.com/arfandy-is/calendar-api/internal/models"
	"github.com/arfandy-is/calendar-api/pkg/response"
)

type calendarEventSource interface {
	List(ctx context.Context) ([]models.Event, error)
}

// CalendarHandler serves the per-day event index used by month-grid
// rendering.
type CalendarHandler struct {
	events calendarEventSource
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(events calendarEventSource) *CalendarHandler {
	return &CalendarHandler{events: events}
}

// DayIndex godoc
// @Summary Per-day event index
// @Description Expands multi-day events onto every calendar date they occupy.
// @Tags Calendar
// @Produce json
// @Success 200 {object} map[string][]models.Event
// @Router /calendar [get]
func (h *CalendarHandler) DayIndex(c *gin.Context) {
	events, err := h.events.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calendar.BuildDayIndex(events))
}
