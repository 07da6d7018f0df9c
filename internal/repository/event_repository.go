package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arfandy-is/calendar-api/internal/models"
)

const eventColumns = "id, title, start_time, end_time, location, description, color, start_date, end_date, created_at, updated_at"

// EventRepository persists calendar events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns all events ascending by start date.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events ORDER BY start_date ASC, id ASC", eventColumns)
	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetByID fetches a single event.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByKey looks up an event by its duplicate key (title, start date and
// start time-of-day), matching all three columns exactly. sql.ErrNoRows
// means no match.
func (r *EventRepository) FindByKey(ctx context.Context, title, startDate, startTime string) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE title = $1 AND start_date = $2 AND start_time = $3 LIMIT 1", eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, title, startDate, startTime); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts an event and fills in the store-assigned id and timestamps.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	const query = `INSERT INTO events (title, start_time, end_time, location, description, color, start_date, end_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`
	if err := r.db.GetContext(ctx, &event.ID, query,
		event.Title, event.StartTime, event.EndTime, event.Location, event.Description,
		event.Color, event.StartDate, event.EndDate, event.CreatedAt, event.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update replaces the full field set of an event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET title = :title, start_time = :start_time, end_time = :end_time,
location = :location, description = :description, color = :color,
start_date = :start_date, end_date = :end_date, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
