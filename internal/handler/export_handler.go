package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arfandy-is/calendar-api/internal/models"
	appErrors "github.com/arfandy-is/calendar-api/pkg/errors"
	"github.com/arfandy-is/calendar-api/pkg/export"
	"github.com/arfandy-is/calendar-api/pkg/response"
)

var exportHeaders = []string{"ID", "Title", "Start Date", "End Date", "Start Time", "End Time", "Location", "Description", "Color"}

// ExportHandler renders the event list as downloadable CSV/PDF tables or an
// iCalendar feed.
type ExportHandler struct {
	events calendarEventSource
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	ics    *export.ICSExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(events calendarEventSource) *ExportHandler {
	return &ExportHandler{
		events: events,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		ics:    export.NewICSExporter(""),
	}
}

// Export godoc
// @Summary Export all events as CSV or PDF
// @Tags Export
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {string} string "file body"
// @Router /events/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	events, err := h.events.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	dataset := buildDataset(events)

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		body, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to export events"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="events.csv"`)
		c.Data(http.StatusOK, "text/csv", body)
	case "pdf":
		body, err := h.pdf.Render(dataset, "Calendar Events")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to export events"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="events.pdf"`)
		c.Data(http.StatusOK, "application/pdf", body)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
	}
}

// Feed godoc
// @Summary iCalendar feed of all events
// @Tags Export
// @Produce plain
// @Success 200 {string} string "VCALENDAR body"
// @Router /calendar.ics [get]
func (h *ExportHandler) Feed(c *gin.Context) {
	events, err := h.events.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	entries := make([]export.CalendarEntry, 0, len(events))
	for _, event := range events {
		entries = append(entries, export.CalendarEntry{
			UID:         fmt.Sprintf("event-%d@calendar-api", event.ID),
			Title:       event.Title,
			Location:    deref(event.Location),
			Description: deref(event.Description),
			StartDate:   event.StartDate,
			EndDate:     deref(event.EndDate),
			StartTime:   deref(event.StartTime),
			EndTime:     deref(event.EndTime),
			CreatedAt:   event.CreatedAt,
		})
	}

	body, err := h.ics.Render(entries)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to render calendar feed"))
		return
	}
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

func buildDataset(events []models.Event) export.Dataset {
	rows := make([]map[string]string, 0, len(events))
	for _, event := range events {
		rows = append(rows, map[string]string{
			"ID":          fmt.Sprintf("%d", event.ID),
			"Title":       event.Title,
			"Start Date":  event.StartDate,
			"End Date":    deref(event.EndDate),
			"Start Time":  deref(event.StartTime),
			"End Time":    deref(event.EndTime),
			"Location":    deref(event.Location),
			"Description": deref(event.Description),
			"Color":       event.Color,
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
