package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arfandy-is/calendar-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildDayIndexMultiDayRange(t *testing.T) {
	events := []models.Event{
		{ID: 1, Title: "Conference", StartDate: "2025-03-10", EndDate: strPtr("2025-03-12")},
	}
	index := BuildDayIndex(events)

	require.Len(t, index, 3)
	for _, key := range []string{"2025-03-10", "2025-03-11", "2025-03-12"} {
		require.Len(t, index[key], 1, "expected event under %s", key)
		assert.Equal(t, int64(1), index[key][0].ID)
	}
}

func TestBuildDayIndexSingleDay(t *testing.T) {
	events := []models.Event{
		{ID: 1, Title: "Dentist", StartDate: "2025-03-10"},
		{ID: 2, Title: "Same-day span", StartDate: "2025-04-01", EndDate: strPtr("2025-04-01")},
	}
	index := BuildDayIndex(events)

	assert.Len(t, index, 2)
	assert.Len(t, index["2025-03-10"], 1)
	assert.Len(t, index["2025-04-01"], 1)
}

func TestBuildDayIndexInvertedRangeRegistersStartOnly(t *testing.T) {
	events := []models.Event{
		{ID: 1, Title: "Backwards", StartDate: "2025-03-10", EndDate: strPtr("2025-03-08")},
	}
	index := BuildDayIndex(events)

	require.Len(t, index, 1)
	assert.Len(t, index["2025-03-10"], 1)
}

func TestBuildDayIndexPreservesSourceOrder(t *testing.T) {
	events := []models.Event{
		{ID: 1, Title: "First", StartDate: "2025-05-01", EndDate: strPtr("2025-05-02")},
		{ID: 2, Title: "Second", StartDate: "2025-05-02"},
	}
	index := BuildDayIndex(events)

	day := index.EventsOn("2025-05-02")
	require.Len(t, day, 2)
	assert.Equal(t, int64(1), day[0].ID)
	assert.Equal(t, int64(2), day[1].ID)
}

func TestBuildDayIndexCrossesMonthBoundary(t *testing.T) {
	events := []models.Event{
		{ID: 1, Title: "Trip", StartDate: "2025-01-30", EndDate: strPtr("2025-02-02")},
	}
	index := BuildDayIndex(events)

	require.Len(t, index, 4)
	for _, key := range []string{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"} {
		assert.Len(t, index[key], 1, "expected event under %s", key)
	}
}

func TestBuildDayIndexEmptyInput(t *testing.T) {
	index := BuildDayIndex(nil)
	assert.Empty(t, index)
	assert.Nil(t, index.EventsOn("2025-01-01"))
}
