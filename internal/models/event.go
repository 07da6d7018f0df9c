package models

import "time"

// DefaultColor is the color token applied when a payload omits one.
const DefaultColor = "#3b82f6"

// Event is a single calendar entry. Calendar dates are kept textual
// ("YYYY-MM-DD") and times as "HH:MM" with no timezone; the wire contract
// and the day-index projection both operate on these textual forms.
type Event struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	StartTime   *string   `db:"start_time" json:"startTime"`
	EndTime     *string   `db:"end_time" json:"endTime"`
	Location    *string   `db:"location" json:"location"`
	Description *string   `db:"description" json:"description"`
	Color       string    `db:"color" json:"color"`
	StartDate   string    `db:"start_date" json:"startDate"`
	EndDate     *string   `db:"end_date" json:"endDate"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// BatchItem is one candidate payload of a batch import. The start_time and
// end_time fields carry full date-time instants; date and time-of-day parts
// are derived during ingest.
type BatchItem struct {
	Title       string  `json:"title"`
	StartTime   string  `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// BatchError records a candidate that was rejected with its input position.
type BatchError struct {
	Index  int       `json:"index"`
	Reason string    `json:"error"`
	Detail string    `json:"details,omitempty"`
	Data   BatchItem `json:"data"`
}

// BatchSkip records a candidate recognised as a duplicate. Skips are an
// expected outcome of ingest, not failures.
type BatchSkip struct {
	Index  int       `json:"index"`
	Reason string    `json:"reason"`
	Data   BatchItem `json:"data"`
}

// BatchResult is the full outcome of one batch import call. It is returned
// even when every item fails; Success+Failed+Skipped always equals the
// input length.
type BatchResult struct {
	Success       int          `json:"success"`
	Failed        int          `json:"failed"`
	Skipped       int          `json:"skipped"`
	Events        []Event      `json:"events"`
	Errors        []BatchError `json:"errors"`
	SkippedEvents []BatchSkip  `json:"skippedEvents"`
}
