// Package calendar expands stored events into a per-day index for
// month-grid rendering.
package calendar

import (
	"time"

	"github.com/arfandy-is/calendar-api/internal/models"
)

// DateKeyLayout is the textual form of a day-index key.
const DateKeyLayout = "2006-01-02"

// DayIndex maps a calendar date key ("YYYY-MM-DD") to the events occupying
// that date, in the order they were encountered in the source sequence.
type DayIndex map[string][]models.Event

// BuildDayIndex projects events onto every calendar date they occupy. Each
// event is registered under its start date; when an end date is present and
// differs from the start date, every date strictly after the start date up
// to and including the end date also gets the event. An end date preceding
// the start date leaves the event registered under the start date only.
func BuildDayIndex(events []models.Event) DayIndex {
	index := make(DayIndex)
	for _, event := range events {
		index[event.StartDate] = append(index[event.StartDate], event)

		if event.EndDate == nil || *event.EndDate == event.StartDate {
			continue
		}
		start, err := time.Parse(DateKeyLayout, event.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(DateKeyLayout, *event.EndDate)
		if err != nil {
			continue
		}

		for day := start.AddDate(0, 0, 1); !day.After(end); day = day.AddDate(0, 0, 1) {
			key := day.Format(DateKeyLayout)
			index[key] = append(index[key], event)
		}
	}
	return index
}

// EventsOn returns the events registered for a single date key.
func (idx DayIndex) EventsOn(key string) []models.Event {
	return idx[key]
}
