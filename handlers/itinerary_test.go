package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	itineraryRepo "monastery360/database/repository/itinerary"
	"monastery360/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchive struct {
	items []models.Itinerary
	err   error
}

func (f *fakeArchive) Create(_ context.Context, it models.Itinerary) (string, error) {
	f.items = append(f.items, it)
	return it.ID, f.err
}

func (f *fakeArchive) GetByID(_ context.Context, id string) (*models.Itinerary, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, itineraryRepo.ErrNotFound
}

func (f *fakeArchive) ListBySession(_ context.Context, sessionID string) ([]models.Itinerary, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Itinerary{}
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].SessionID == sessionID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func seededArchive() *fakeArchive {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return &fakeArchive{items: []models.Itinerary{
		{ID: "it-1", SessionID: "s-1", TravelDate: "2026-04-10", Visitor: models.VisitorInfo{Name: "Tashi", Email: "tashi@example.com"}, CreatedAt: base},
		{ID: "it-2", SessionID: "s-2", Visitor: models.VisitorInfo{Name: "Pema", Email: "pema@example.com"}, CreatedAt: base.Add(time.Minute)},
		{ID: "it-3", SessionID: "s-1", TravelDate: "2026-05-02", Visitor: models.VisitorInfo{Name: "Tashi", Email: "tashi@example.com"}, CreatedAt: base.Add(time.Hour)},
	}}
}

func TestItineraryAPI_GetByID(t *testing.T) {
	r := newRouterWithArchive(t, seededArchive())

	w := do(t, r, http.MethodGet, "/api/itineraries/it-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	it := decode[models.Itinerary](t, w)
	assert.Equal(t, "it-1", it.ID)
	assert.Equal(t, "2026-04-10", it.TravelDate)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/itineraries/it-404", nil).Code)
}

func TestItineraryAPI_ListBySession(t *testing.T) {
	r := newRouterWithArchive(t, seededArchive())

	w := do(t, r, http.MethodGet, "/api/planner/sessions/s-1/itineraries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.Itinerary](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "it-3", list[0].ID)
	assert.Equal(t, "it-1", list[1].ID)

	w = do(t, r, http.MethodGet, "/api/planner/sessions/s-none/itineraries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestItineraryAPI_NoLookupByEmail(t *testing.T) {
	r := newRouterWithArchive(t, seededArchive())

	w := do(t, r, http.MethodGet, "/api/itineraries?email=tashi@example.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "tashi@example.com")
}

func TestItineraryAPI_ArchiveFailure(t *testing.T) {
	r := newRouterWithArchive(t, &fakeArchive{err: errors.New("connection reset")})

	assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/api/itineraries/it-1", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/api/planner/sessions/s-1/itineraries", nil).Code)
}
