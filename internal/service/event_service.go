package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/arfandy-is/calendar-api/internal/models"
	appErrors "github.com/arfandy-is/calendar-api/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	FindByKey(ctx context.Context, title, startDate, startTime string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// EventService manages single-record event operations.
type EventService struct {
	repo      eventRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, validator: validate, logger: logger}
}

// EventRequest is the single-event payload for create and full-record
// replace. Dates arrive as "YYYY-MM-DD" and times as "HH:MM".
type EventRequest struct {
	Title       string  `json:"title" validate:"required"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"endDate"`
}

// List returns all events ascending by start date.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch events")
	}
	return events, nil
}

// Create inserts one event. No duplicate check and no retry is applied on
// this path; that behaviour belongs to batch ingest only.
func (s *EventService) Create(ctx context.Context, req EventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMissingRequired.Code, appErrors.ErrMissingRequired.Status, appErrors.ErrMissingRequired.Message)
	}

	event := eventFromRequest(req)
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to create event(s)")
	}
	s.logger.Sugar().Infow("event created", "id", event.ID, "title", event.Title)
	return event, nil
}

// Update replaces the complete field set of an existing event.
func (s *EventService) Update(ctx context.Context, id int64, req EventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMissingRequired.Code, appErrors.ErrMissingRequired.Status, "Title and startDate are required")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to update event")
	}

	updated := eventFromRequest(req)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to update event")
	}
	return updated, nil
}

// Delete removes an event by id.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to delete event")
	}
	return nil
}

func eventFromRequest(req EventRequest) *models.Event {
	color := models.DefaultColor
	if req.Color != nil && *req.Color != "" {
		color = *req.Color
	}
	return &models.Event{
		Title:       req.Title,
		StartTime:   emptyToNil(req.StartTime),
		EndTime:     emptyToNil(req.EndTime),
		Location:    emptyToNil(req.Location),
		Description: emptyToNil(req.Description),
		Color:       color,
		StartDate:   req.StartDate,
		EndDate:     emptyToNil(req.EndDate),
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
