package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arfandy-is/calendar-api/internal/models"
	"github.com/arfandy-is/calendar-api/pkg/config"
)

// eventRepoStub is an in-memory stand-in for the event store. findErrs is a
// queue of errors returned by successive FindByKey calls before real
// lookups resume.
type eventRepoStub struct {
	events    []models.Event
	nextID    int64
	findErrs  []error
	findCalls int
	createErr error
}

func (s *eventRepoStub) List(ctx context.Context) ([]models.Event, error) {
	return s.events, nil
}

func (s *eventRepoStub) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			return &s.events[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *eventRepoStub) FindByKey(ctx context.Context, title, startDate, startTime string) (*models.Event, error) {
	s.findCalls++
	if len(s.findErrs) > 0 {
		err := s.findErrs[0]
		s.findErrs = s.findErrs[1:]
		return nil, err
	}
	for i := range s.events {
		e := s.events[i]
		if e.Title == title && e.StartDate == startDate && e.StartTime != nil && *e.StartTime == startTime {
			return &e, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *eventRepoStub) Create(ctx context.Context, event *models.Event) error {
	if s.createErr != nil {
		err := s.createErr
		s.createErr = nil
		return err
	}
	s.nextID++
	event.ID = s.nextID
	s.events = append(s.events, *event)
	return nil
}

func (s *eventRepoStub) Update(ctx context.Context, event *models.Event) error { return nil }
func (s *eventRepoStub) Delete(ctx context.Context, id int64) error            { return nil }

func newIngest(repo *eventRepoStub) *IngestService {
	return NewIngestService(repo, config.IngestConfig{MaxAttempts: 3, RetryBaseDelay: 0}, nil)
}

func TestProcessDuplicateWithinBatch(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newIngest(repo)

	items := []models.BatchItem{
		{Title: "Standup", StartTime: "2025-01-05T09:00:00+00:00"},
		{Title: "Standup", StartTime: "2025-01-05T09:00:00+00:00"},
	}
	result := svc.Process(context.Background(), items)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, repo.events, 1)
	require.NotNil(t, repo.events[0].StartTime)
	assert.Equal(t, "09:00", *repo.events[0].StartTime)
	assert.Equal(t, "2025-01-05", repo.events[0].StartDate)
	require.Len(t, result.SkippedEvents, 1)
	assert.Equal(t, 1, result.SkippedEvents[0].Index)
	assert.Equal(t, ReasonDuplicateInBatch, result.SkippedEvents[0].Reason)
}

func TestProcessIdempotentResubmission(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newIngest(repo)

	items := []models.BatchItem{
		{Title: "Standup", StartTime: "2025-01-05T09:00:00+00:00"},
		{Title: "Retro", StartTime: "2025-01-05T16:30:00+00:00"},
	}
	first := svc.Process(context.Background(), items)
	require.Equal(t, 2, first.Success)

	second := svc.Process(context.Background(), items)
	assert.Equal(t, 0, second.Success)
	assert.Equal(t, 0, second.Failed)
	assert.Equal(t, 2, second.Skipped)
	for _, skip := range second.SkippedEvents {
		assert.Equal(t, ReasonDuplicateExists, skip.Reason)
	}
	assert.Len(t, repo.events, 2)
}

func TestProcessCountsAlwaysSumToInputLength(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newIngest(repo)

	items := []models.BatchItem{
		{Title: "", StartTime: "2025-01-05T09:00:00+00:00"},
		{Title: "No instant"},
		{Title: "Planning", StartTime: "2025-02-01T10:00:00+00:00"},
		{Title: "Planning", StartTime: "2025-02-01T10:00:00+00:00"},
		{Title: "Garbage", StartTime: "not-a-date"},
	}
	result := svc.Process(context.Background(), items)

	assert.Equal(t, len(items), result.Success+result.Failed+result.Skipped)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 3, result.Failed)
	assert.Equal(t, 1, result.Skipped)
}

func TestProcessInvalidItemsExcludedFromDuplicateChecks(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newIngest(repo)

	// The first item fails validation and must not claim the key for the
	// valid second item.
	items := []models.BatchItem{
		{Title: "Standup"},
		{Title: "Standup", StartTime: "2025-01-05T09:00:00+00:00"},
	}
	result := svc.Process(context.Background(), items)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].Index)
	assert.Equal(t, ReasonMissingRequired, result.Errors[0].Reason)
}

func TestProcessDuplicateCheckRecoversWithinRetryBudget(t *testing.T) {
	transient := errors.New("connection reset")
	repo := &eventRepoStub{findErrs: []error{transient, transient}}
	svc := newIngest(repo)

	result := svc.Process(context.Background(), []models.BatchItem{
		{Title: "Standup", StartTime: "2025-01-05T09:00:00+00:00"},
	})

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 3, repo.findCalls)
}

func TestProcessDuplicateCheckRejectsAfterRetriesExhausted(t *testing.T) {
	transient := errors.New("connection reset")
	repo := &eventRepoStub{findErrs: []error{transient, transient, transient}}
	svc := newIngest(repo)

	result := svc.Process(context.Background(), []models.BatchItem{
		{Title: "Standup", StartTime: "2025-01-05T09:00:00+00:00"},
	})

	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ReasonFailedAfterRetries, result.Errors[0].Reason)
	assert.Equal(t, "connection reset", result.Errors[0].Detail)
	assert.Empty(t, repo.events)
}

func TestProcessCreateFailureKeepsKeyMarked(t *testing.T) {
	repo := &eventRepoStub{createErr: errors.New("constraint violation")}
	svc := newIngest(repo)

	// The first create fails, yet the later candidate with the same key is
	// still reported as an in-batch duplicate; the key is not released on
	// failure.
	items := []models.BatchItem{
		{Title: "Standup", StartTime: "2025-01-05T09:00:00+00:00"},
		{Title: "Standup", StartTime: "2025-01-05T09:00:00+00:00"},
	}
	result := svc.Process(context.Background(), items)

	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ReasonFailedToCreate, result.Errors[0].Reason)
	require.Len(t, result.SkippedEvents, 1)
	assert.Equal(t, ReasonDuplicateInBatch, result.SkippedEvents[0].Reason)
	assert.Empty(t, repo.events)
}

func TestProcessPreservesInstantTimezoneVerbatim(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newIngest(repo)

	end := "2025-08-09T02:30:00+08:00"
	result := svc.Process(context.Background(), []models.BatchItem{
		{Title: "Flight", StartTime: "2025-08-08T23:45:00+08:00", EndTime: &end},
	})

	require.Equal(t, 1, result.Success)
	stored := repo.events[0]
	assert.Equal(t, "2025-08-08", stored.StartDate)
	assert.Equal(t, "23:45", *stored.StartTime)
	require.NotNil(t, stored.EndDate)
	assert.Equal(t, "2025-08-09", *stored.EndDate)
	assert.Equal(t, "02:30", *stored.EndTime)
	assert.Equal(t, models.DefaultColor, stored.Color)
}

func TestProcessEmptyBatch(t *testing.T) {
	svc := newIngest(&eventRepoStub{})
	result := svc.Process(context.Background(), nil)

	assert.Equal(t, 0, result.Success+result.Failed+result.Skipped)
	assert.NotNil(t, result.Events)
	assert.NotNil(t, result.Errors)
	assert.NotNil(t, result.SkippedEvents)
}

func TestSplitInstant(t *testing.T) {
	date, hhmm, err := splitInstant("2025-08-08T00:00:00+08:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-08", date)
	assert.Equal(t, "00:00", hhmm)

	_, _, err = splitInstant("2025-08-08")
	assert.Error(t, err)

	_, _, err = splitInstant("2025-13-40T99:99:00Z")
	assert.Error(t, err)
}
