package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/arfandy-is/calendar-api/internal/models"
	"github.com/arfandy-is/calendar-api/pkg/config"
	"github.com/arfandy-is/calendar-api/pkg/retry"
)

// Skip and rejection reasons reported per batch item.
const (
	ReasonMissingRequired    = "missing required field"
	ReasonMalformedInstant   = "malformed date-time value"
	ReasonDuplicateInBatch   = "duplicate within batch"
	ReasonDuplicateExists    = "duplicate already exists"
	ReasonFailedAfterRetries = "failed after retries"
	ReasonFailedToCreate     = "failed to create"
)

// dupKey identifies a candidate for duplicate detection: exact title plus
// the derived start date and start time-of-day. Case-sensitive, no
// whitespace normalization.
type dupKey struct {
	title     string
	startDate string
	startTime string
}

// IngestService imports batches of candidate events, skipping duplicates
// both within the batch and against the store.
type IngestService struct {
	repo   eventRepository
	policy retry.Policy
	logger *zap.Logger
}

// NewIngestService constructs the batch ingest processor. The retry policy
// applies to duplicate-check reads only, never to writes.
func NewIngestService(repo eventRepository, cfg config.IngestConfig, logger *zap.Logger) *IngestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return &IngestService{
		repo:   repo,
		policy: retry.Policy{MaxAttempts: attempts, BaseDelay: cfg.RetryBaseDelay},
		logger: logger,
	}
}

// Process walks the candidates in input order, strictly sequentially, and
// partitions every item into exactly one of accepted, skipped or rejected.
// The result is always returned, even when every item fails.
func (s *IngestService) Process(ctx context.Context, items []models.BatchItem) *models.BatchResult {
	result := &models.BatchResult{
		Events:        []models.Event{},
		Errors:        []models.BatchError{},
		SkippedEvents: []models.BatchSkip{},
	}

	seen := make(map[dupKey]struct{}, len(items))

	for i, item := range items {
		if item.Title == "" || item.StartTime == "" {
			s.reject(result, i, item, ReasonMissingRequired, "")
			continue
		}

		startDate, startTime, err := splitInstant(item.StartTime)
		if err != nil {
			s.reject(result, i, item, ReasonMalformedInstant, err.Error())
			continue
		}
		var endDate, endTime *string
		if item.EndTime != nil && *item.EndTime != "" {
			d, t, err := splitInstant(*item.EndTime)
			if err != nil {
				s.reject(result, i, item, ReasonMalformedInstant, err.Error())
				continue
			}
			endDate, endTime = &d, &t
		}

		key := dupKey{title: item.Title, startDate: startDate, startTime: startTime}
		if _, dup := seen[key]; dup {
			s.skip(result, i, item, ReasonDuplicateInBatch)
			continue
		}

		exists, err := s.existsInStore(ctx, key)
		if err != nil {
			s.reject(result, i, item, ReasonFailedAfterRetries, err.Error())
			continue
		}
		if exists {
			s.skip(result, i, item, ReasonDuplicateExists)
			continue
		}

		// The key stays marked even if the create below fails, so a later
		// candidate with the same key is still skipped. Matches the
		// original importer (see DESIGN.md).
		seen[key] = struct{}{}

		event := &models.Event{
			Title:       item.Title,
			StartTime:   &startTime,
			EndTime:     endTime,
			Location:    emptyToNil(item.Location),
			Description: emptyToNil(item.Description),
			Color:       models.DefaultColor,
			StartDate:   startDate,
			EndDate:     endDate,
		}
		if item.Color != nil && *item.Color != "" {
			event.Color = *item.Color
		}

		if err := s.repo.Create(ctx, event); err != nil {
			s.reject(result, i, item, ReasonFailedToCreate, err.Error())
			continue
		}

		result.Success++
		result.Events = append(result.Events, *event)
	}

	s.logger.Sugar().Infow("batch ingest finished",
		"total", len(items), "success", result.Success, "failed", result.Failed, "skipped", result.Skipped)
	return result
}

// existsInStore queries for a stored event matching the duplicate key,
// retrying transient store failures. A no-rows answer is a successful
// negative, not a retryable error.
func (s *IngestService) existsInStore(ctx context.Context, key dupKey) (bool, error) {
	var exists bool
	err := s.policy.Do(ctx, func() error {
		_, err := s.repo.FindByKey(ctx, key.title, key.startDate, key.startTime)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				exists = false
				return nil
			}
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

func (s *IngestService) reject(result *models.BatchResult, index int, item models.BatchItem, reason, detail string) {
	result.Failed++
	result.Errors = append(result.Errors, models.BatchError{Index: index, Reason: reason, Detail: detail, Data: item})
}

func (s *IngestService) skip(result *models.BatchResult, index int, item models.BatchItem, reason string) {
	result.Skipped++
	result.SkippedEvents = append(result.SkippedEvents, models.BatchSkip{Index: index, Reason: reason, Data: item})
}

// splitInstant derives the calendar date and time-of-day from a combined
// date-time instant such as "2025-08-08T00:00:00+08:00". The parts are cut
// out positionally so the instant's own timezone is preserved rather than
// converted.
func splitInstant(raw string) (date string, hhmm string, err error) {
	if len(raw) < 16 {
		return "", "", errors.New("expected YYYY-MM-DDThh:mm date-time value")
	}
	date = raw[:10]
	hhmm = raw[11:16]
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", "", errors.New("invalid date portion, expected YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", hhmm); err != nil {
		return "", "", errors.New("invalid time portion, expected hh:mm")
	}
	return date, hhmm, nil
}
