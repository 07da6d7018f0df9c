package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arfandy-is/calendar-api/internal/models"
	appErrors "github.com/arfandy-is/calendar-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestEventServiceCreateDefaultsColor(t *testing.T) {
	repo := &eventRepoStub{}
	svc := NewEventService(repo, nil, nil)

	event, err := svc.Create(context.Background(), EventRequest{
		Title:     "Dentist",
		StartDate: "2025-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultColor, event.Color)
	assert.Equal(t, int64(1), event.ID)
	assert.Nil(t, event.StartTime)
}

func TestEventServiceCreateRequiresTitleAndStartDate(t *testing.T) {
	svc := NewEventService(&eventRepoStub{}, nil, nil)

	_, err := svc.Create(context.Background(), EventRequest{StartDate: "2025-03-10"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)

	_, err = svc.Create(context.Background(), EventRequest{Title: "No date"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestEventServiceCreateRejectsMalformedStartDate(t *testing.T) {
	svc := NewEventService(&eventRepoStub{}, nil, nil)

	_, err := svc.Create(context.Background(), EventRequest{Title: "Bad", StartDate: "10/03/2025"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestEventServiceCreateNormalisesEmptyOptionalFields(t *testing.T) {
	repo := &eventRepoStub{}
	svc := NewEventService(repo, nil, nil)

	event, err := svc.Create(context.Background(), EventRequest{
		Title:     "Trip",
		StartDate: "2025-03-10",
		EndDate:   strPtr(""),
		Location:  strPtr(""),
		Color:     strPtr("#ef4444"),
	})
	require.NoError(t, err)
	assert.Nil(t, event.EndDate)
	assert.Nil(t, event.Location)
	assert.Equal(t, "#ef4444", event.Color)
}

func TestEventServiceUpdateReplacesFullRecord(t *testing.T) {
	repo := &eventRepoStub{}
	svc := NewEventService(repo, nil, nil)

	created, err := svc.Create(context.Background(), EventRequest{
		Title:     "Original",
		StartDate: "2025-03-10",
		Location:  strPtr("Office"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, EventRequest{
		Title:     "Renamed",
		StartDate: "2025-03-11",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "2025-03-11", updated.StartDate)
	// full replace, not a patch: omitted optional fields are cleared
	assert.Nil(t, updated.Location)
}

func TestEventServiceUpdateUnknownID(t *testing.T) {
	svc := NewEventService(&eventRepoStub{}, nil, nil)

	_, err := svc.Update(context.Background(), 99, EventRequest{Title: "X", StartDate: "2025-03-10"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
