package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	itineraryRepo "monastery360/database/repository/itinerary"
	"monastery360/handlers"
	"monastery360/models"
	"monastery360/routes"
	"monastery360/services/catalog"
	"monastery360/services/delivery"
	"monastery360/services/planner"
	"monastery360/services/search"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type errorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Field   string              `json:"field"`
	Session *models.SessionView `json:"session"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newRouterWithArchive(t, nil)
}

func newRouterWithArchive(t *testing.T, archive itineraryRepo.ItineraryRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.NewDefaultCatalog()
	require.NoError(t, err)
	svc := &planner.DefaultPlannerService{
		Store:    planner.NewMemorySessionStore(time.Hour),
		Catalog:  cat,
		Flights:  search.NewMockFlightProvider(0, nil),
		Hotels:   search.NewMockHotelProvider(0, nil),
		Delivery: delivery.NewMockEmailDelivery(0, nil),
		Logger:   zap.NewNop(),
	}

	r := gin.New()
	routes.RegisterRoutes(r, &handlers.HandlerBundle{
		Planner:     &handlers.PlannerHandler{Service: svc},
		Catalog:     &handlers.CatalogHandler{Catalog: cat},
		Itineraries: &handlers.ItineraryHandler{Repo: archive},
	})
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func startSession(t *testing.T, r http.Handler) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/planner/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	view := decode[models.SessionView](t, w)
	assert.Equal(t, models.PhaseSelectMonasteries, view.Phase)
	assert.Equal(t, 25, view.Progress)
	require.NotEmpty(t, view.SessionID)
	return view.SessionID
}

func TestPlannerAPI_FullFlow(t *testing.T) {
	r := newRouter(t)
	id := startSession(t, r)
	base := "/api/planner/sessions/" + id

	w := do(t, r, http.MethodPost, base+"/monasteries/toggle", gin.H{"monasteryId": "pemayangtse"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, base+"/next", nil).Code)

	w = do(t, r, http.MethodPost, base+"/hotels/search", models.HotelQuery{
		Location: "Pelling", CheckIn: "2026-11-02", CheckOut: "2026-11-06", Rooms: 1, Guests: 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode[models.SessionView](t, w)
	require.NotEmpty(t, view.Hotels.Offers)
	hotelID := view.Hotels.Offers[0].ID

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, base+"/hotels/selection", gin.H{"offerId": hotelID}).Code)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, base+"/next", nil).Code)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, base+"/package", gin.H{"packageId": "premium"}).Code)
	w = do(t, r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, decode[models.SessionView](t, w).Progress)

	w = do(t, r, http.MethodPut, base+"/visitor", models.VisitorInfo{Name: "Pema Lhamo", Email: "pema@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decode[models.SessionView](t, w)
	assert.Equal(t, models.PhaseConfirmed, view.Phase)
	require.NotNil(t, view.Itinerary)
	require.NotNil(t, view.Itinerary.Hotel)
	assert.Equal(t, hotelID, view.Itinerary.Hotel.ID)
	assert.Equal(t, "2026-11-02", view.Itinerary.TravelDate)

	w = do(t, r, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, planner.CodeSessionLocked, decode[errorBody](t, w).Code)

	w = do(t, r, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PhaseSelectMonasteries, decode[models.SessionView](t, w).Phase)
}

func TestPlannerAPI_ValidationBlocksNext(t *testing.T) {
	r := newRouter(t)
	id := startSession(t, r)

	w := do(t, r, http.MethodPost, "/api/planner/sessions/"+id+"/next", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, planner.CodeValidation, body.Code)
	assert.Equal(t, "monasteryIds", body.Field)
}

func TestPlannerAPI_InvalidQueryReturnsSavedDraft(t *testing.T) {
	r := newRouter(t)
	id := startSession(t, r)
	base := "/api/planner/sessions/" + id
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, base+"/monasteries/toggle", gin.H{"monasteryId": "rumtek"}).Code)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, base+"/next", nil).Code)

	w := do(t, r, http.MethodPost, base+"/flights/search", models.FlightQuery{
		Destination: "IXB (Bagdogra Airport)", DepartureDate: "2026-11-02", Passengers: 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, planner.CodeInvalidQuery, body.Code)
	assert.Equal(t, "origin", body.Field)
	require.NotNil(t, body.Session)
	assert.Equal(t, "IXB (Bagdogra Airport)", body.Session.Flights.Query.Destination)
	assert.False(t, body.Session.Flights.Loading)
}

func TestPlannerAPI_BadInput(t *testing.T) {
	r := newRouter(t)
	id := startSession(t, r)

	w := do(t, r, http.MethodPost, "/api/planner/sessions/"+id+"/monasteries/toggle", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/planner/sessions/"+id+"/monasteries/toggle", gin.H{"monasteryId": "atlantis"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPlannerAPI_SessionLifecycle(t *testing.T) {
	r := newRouter(t)
	id := startSession(t, r)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/planner/sessions/"+id, nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/planner/sessions/"+id, nil).Code)

	w := do(t, r, http.MethodGet, "/api/planner/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, planner.CodeSessionNotFound, decode[errorBody](t, w).Code)
}

func TestCatalogAPI(t *testing.T) {
	r := newRouter(t)

	w := do(t, r, http.MethodGet, "/api/monasteries?tradition=gelug", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.Monastery](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "phensang", list[0].ID)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/monasteries/rumtek", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/monasteries/atlantis", nil).Code)

	w = do(t, r, http.MethodGet, "/api/packages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.TravelPackage](t, w), 3)

	w = do(t, r, http.MethodGet, "/api/planner/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[models.PlannerOptions](t, w).HotelLocations, "Gangtok")
}

func TestItineraryAPI_WithoutArchive(t *testing.T) {
	r := newRouter(t)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, r, http.MethodGet, "/api/itineraries/abc", nil).Code)
}

func TestCalendarAPI(t *testing.T) {
	r := newRouter(t)

	w := do(t, r, http.MethodGet, "/api/festivals?month=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	festivals := decode[[]models.Festival](t, w)
	require.Len(t, festivals, 2)
	assert.Equal(t, "losar", festivals[0].ID)
	assert.NotEmpty(t, festivals[0].Dos)

	w = do(t, r, http.MethodGet, "/api/festivals?type=cultural", nil)
	require.Equal(t, http.StatusOK, w.Code)
	festivals = decode[[]models.Festival](t, w)
	require.Len(t, festivals, 1)
	assert.Equal(t, "pang-lhabsol", festivals[0].ID)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/festivals?month=13", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/festivals?month=march", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/festivals?type=sporting", nil).Code)

	w = do(t, r, http.MethodGet, "/api/auspicious-days", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.AuspiciousDay](t, w), 4)
}

func TestArchivesAPI(t *testing.T) {
	r := newRouter(t)

	w := do(t, r, http.MethodGet, "/api/archives?category=History", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.ArchiveItem](t, w), 3)

	w = do(t, r, http.MethodGet, "/api/archives?category=Culture&q=weaving", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]models.ArchiveItem](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "lepcha-weaving", items[0].ID)

	w = do(t, r, http.MethodGet, "/api/archives?q=nothing-like-this", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/archives/cham-masks", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/archives/nope", nil).Code)
}
