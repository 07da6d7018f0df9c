package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// CalendarEntry is the exporter-facing view of one calendar event. Dates are
// "YYYY-MM-DD" and times "HH:MM"; an empty StartTime marks an all-day entry.
type CalendarEntry struct {
	UID         string
	Title       string
	Location    string
	Description string
	StartDate   string
	EndDate     string
	StartTime   string
	EndTime     string
	CreatedAt   time.Time
}

// ICSExporter renders calendar entries into an iCalendar feed.
type ICSExporter struct {
	ProductID string
}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter(productID string) *ICSExporter {
	if productID == "" {
		productID = "-//calendar-api//EN"
	}
	return &ICSExporter{ProductID: productID}
}

// Render serialises the entries as a VCALENDAR document.
func (e *ICSExporter) Render(entries []CalendarEntry) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(e.ProductID)

	for _, entry := range entries {
		start, err := entryStart(entry)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", entry.UID, err)
		}

		ev := cal.AddEvent(entry.UID)
		ev.SetDtStampTime(entry.CreatedAt.UTC())
		ev.SetSummary(entry.Title)
		if entry.Location != "" {
			ev.SetLocation(entry.Location)
		}
		if entry.Description != "" {
			ev.SetDescription(entry.Description)
		}

		if entry.StartTime == "" {
			ev.SetAllDayStartAt(start)
			ev.SetAllDayEndAt(entryAllDayEnd(entry, start))
			continue
		}

		ev.SetStartAt(start)
		ev.SetEndAt(entryTimedEnd(entry, start))
	}

	return []byte(cal.Serialize()), nil
}

func entryStart(entry CalendarEntry) (time.Time, error) {
	if entry.StartTime != "" {
		return time.Parse("2006-01-02 15:04", entry.StartDate+" "+entry.StartTime)
	}
	return time.Parse("2006-01-02", entry.StartDate)
}

// entryAllDayEnd returns the exclusive DTEND day for all-day entries.
func entryAllDayEnd(entry CalendarEntry, start time.Time) time.Time {
	end := start
	if entry.EndDate != "" && entry.EndDate != entry.StartDate {
		if parsed, err := time.Parse("2006-01-02", entry.EndDate); err == nil && parsed.After(start) {
			end = parsed
		}
	}
	return end.AddDate(0, 0, 1)
}

func entryTimedEnd(entry CalendarEntry, start time.Time) time.Time {
	endDate := entry.StartDate
	if entry.EndDate != "" {
		endDate = entry.EndDate
	}
	endTime := entry.EndTime
	if endTime == "" {
		endTime = entry.StartTime
	}
	if parsed, err := time.Parse("2006-01-02 15:04", endDate+" "+endTime); err == nil && !parsed.Before(start) {
		return parsed
	}
	return start.Add(time.Hour)
}
