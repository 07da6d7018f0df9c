package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arfandy-is/calendar-api/internal/models"
	"github.com/arfandy-is/calendar-api/internal/service"
	appErrors "github.com/arfandy-is/calendar-api/pkg/errors"
	"github.com/arfandy-is/calendar-api/pkg/response"
)

// ListCacheKey stores the cached GET /events payload.
const ListCacheKey = "calendar:events:list"

type eventService interface {
	List(ctx context.Context) ([]models.Event, error)
	Create(ctx context.Context, req service.EventRequest) (*models.Event, error)
	Update(ctx context.Context, id int64, req service.EventRequest) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
}

type ingestService interface {
	Process(ctx context.Context, items []models.BatchItem) *models.BatchResult
}

// ListCache is the read-cache surface the handler needs; a nil value
// disables caching entirely.
type ListCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, key string)
}

// EventHandler exposes the /events endpoints.
type EventHandler struct {
	events   eventService
	ingest   ingestService
	cache    ListCache
	cacheTTL time.Duration
	metrics  *service.MetricsService
	logger   *zap.Logger
}

// NewEventHandler constructs the handler. cache may be nil when the read
// cache is disabled.
func NewEventHandler(events eventService, ingest ingestService, cache ListCache, cacheTTL time.Duration, metrics *service.MetricsService, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{events: events, ingest: ingest, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// List godoc
// @Summary List all events ascending by start date
// @Tags Events
// @Produce json
// @Success 200 {array} models.Event
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		var cached []models.Event
		if err := h.cache.Get(ctx, ListCacheKey, &cached); err == nil {
			response.JSON(c, http.StatusOK, cached)
			return
		}
	}

	events, err := h.events.List(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, ListCacheKey, events, h.cacheTTL); err != nil {
			h.logger.Sugar().Warnw("cache store failed", "error", err)
		}
	}
	response.JSON(c, http.StatusOK, events)
}

// Create godoc
// @Summary Create one event or import a batch
// @Description A JSON object creates a single event; a JSON array runs batch ingest with duplicate detection.
// @Tags Events
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Success 201 {object} models.Event
// @Success 201 {object} models.BatchResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrMalformedPayload, ""))
		return
	}

	// The endpoint accepts two explicit payload variants discriminated by
	// the leading JSON token: an array runs batch ingest, an object a
	// single create. Anything else is a malformed request.
	switch firstJSONToken(body) {
	case '[':
		h.createBatch(c, body)
	case '{':
		h.createSingle(c, body)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrMalformedPayload, ""))
	}
}

func (h *EventHandler) createBatch(c *gin.Context, body []byte) {
	var items []models.BatchItem
	if err := json.Unmarshal(body, &items); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMalformedPayload.Code, appErrors.ErrMalformedPayload.Status, appErrors.ErrMalformedPayload.Message))
		return
	}

	result := h.ingest.Process(c.Request.Context(), items)
	if h.metrics != nil {
		h.metrics.ObserveIngest(result.Success, result.Failed, result.Skipped)
	}
	if result.Success > 0 {
		h.invalidate(c)
	}
	response.Created(c, result)
}

func (h *EventHandler) createSingle(c *gin.Context, body []byte) {
	var req service.EventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMalformedPayload.Code, appErrors.ErrMalformedPayload.Status, appErrors.ErrMalformedPayload.Message))
		return
	}

	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidate(c)
	response.Created(c, event)
}

// Update godoc
// @Summary Replace the full field set of an event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param x-api-key header string true "Admin API key"
// @Success 200 {object} models.Event
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, err := parseEventID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to update event"))
		return
	}

	event, err := h.events.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidate(c)
	response.JSON(c, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Param x-api-key header string true "Admin API key"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := parseEventID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.events.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	h.invalidate(c)
	response.Message(c, http.StatusOK, "Event deleted successfully")
}

func (h *EventHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), ListCacheKey)
	}
}

func parseEventID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrInvalidEventID, "")
	}
	return id, nil
}

// firstJSONToken returns the first non-whitespace byte of the body, or 0
// when the body is blank.
func firstJSONToken(body []byte) byte {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
