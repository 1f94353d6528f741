package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"monastery360/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFlightQuery() models.FlightQuery {
	return models.FlightQuery{
		Origin:        "Delhi",
		Destination:   "IXB (Bagdogra Airport)",
		DepartureDate: "2026-11-02",
		ReturnDate:    "2026-11-09",
		Passengers:    2,
	}
}

func validHotelQuery(location string) models.HotelQuery {
	return models.HotelQuery{
		Location: location,
		CheckIn:  "2026-11-02",
		CheckOut: "2026-11-09",
		Rooms:    1,
		Guests:   2,
	}
}

func TestMockFlightProvider_Deterministic(t *testing.T) {
	p := NewMockFlightProvider(0, nil)

	first, err := p.SearchFlights(context.Background(), validFlightQuery())
	require.NoError(t, err)
	second, err := p.SearchFlights(context.Background(), validFlightQuery())
	require.NoError(t, err)

	require.Len(t, first, 4)
	assert.Equal(t, first, second)
	for _, f := range first {
		assert.Equal(t, "Delhi", f.Origin)
		assert.Equal(t, "IXB (Bagdogra Airport)", f.Destination)
		assert.Equal(t, "USD", f.Currency)
	}
}

func TestMockFlightProvider_InvalidQuery(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *models.FlightQuery)
		field  string
	}{
		{"blank origin", func(q *models.FlightQuery) { q.Origin = "  " }, "origin"},
		{"blank destination", func(q *models.FlightQuery) { q.Destination = "" }, "destination"},
		{"no passengers", func(q *models.FlightQuery) { q.Passengers = 0 }, "passengers"},
		{"missing departure", func(q *models.FlightQuery) { q.DepartureDate = "" }, "departureDate"},
		{"bad date", func(q *models.FlightQuery) { q.DepartureDate = "02/11/2026" }, "departureDate"},
		{"return before departure", func(q *models.FlightQuery) { q.ReturnDate = "2026-11-01" }, "returnDate"},
	}

	p := NewMockFlightProvider(time.Hour, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validFlightQuery()
			tt.mutate(&q)

			_, err := p.SearchFlights(context.Background(), q)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidQuery))

			var qe *QueryError
			require.True(t, errors.As(err, &qe))
			assert.Equal(t, tt.field, qe.Field)
		})
	}
}

func TestMockFlightProvider_ReturnDateOptional(t *testing.T) {
	q := validFlightQuery()
	q.ReturnDate = ""
	_, err := NewMockFlightProvider(0, nil).SearchFlights(context.Background(), q)
	assert.NoError(t, err)
}

func TestMockHotelProvider_FiltersByLocation(t *testing.T) {
	p := NewMockHotelProvider(0, nil)

	tests := []struct {
		location string
		want     []string
	}{
		{"Gangtok", []string{"HTL-1", "HTL-4"}},
		{"pelling", []string{"HTL-2", "HTL-5"}},
		{"Rumtek", []string{"HTL-3"}},
		{"Yuksom", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			offers, err := p.SearchHotels(context.Background(), validHotelQuery(tt.location))
			require.NoError(t, err)
			ids := make([]string, 0, len(offers))
			for _, o := range offers {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMockHotelProvider_InvalidQuery(t *testing.T) {
	p := NewMockHotelProvider(0, nil)

	q := validHotelQuery("")
	_, err := p.SearchHotels(context.Background(), q)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	q = validHotelQuery("Gangtok")
	q.CheckOut = ""
	_, err = p.SearchHotels(context.Background(), q)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	q = validHotelQuery("Gangtok")
	q.Guests = 0
	_, err = p.SearchHotels(context.Background(), q)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestMockProviders_HonorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockFlightProvider(time.Hour, nil).SearchFlights(ctx, validFlightQuery())
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewMockHotelProvider(time.Hour, nil).SearchHotels(ctx, validHotelQuery("Gangtok"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockProviders_SimulateLatency(t *testing.T) {
	p := NewMockHotelProvider(30*time.Millisecond, nil)
	start := time.Now()
	_, err := p.SearchHotels(context.Background(), validHotelQuery("Gangtok"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
