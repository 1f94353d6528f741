package search

import (
	"context"
	"strings"
	"time"

	"monastery360/models"

	"go.uber.org/zap"
)

var fixedFlights = []models.FlightOffer{
	{ID: "AI-1", Airline: "Air India", Departure: "06:00", Arrival: "08:45", Duration: "2h 45m", Price: 189},
	{ID: "6E-2", Airline: "IndiGo", Departure: "09:30", Arrival: "12:15", Duration: "2h 45m", Price: 167},
	{ID: "UK-3", Airline: "Vistara", Departure: "14:15", Arrival: "17:00", Duration: "2h 45m", Price: 210},
	{ID: "SG-4", Airline: "SpiceJet", Departure: "18:45", Arrival: "21:30", Duration: "2h 45m", Price: 155},
}

var fixedHotels = []models.HotelOffer{
	{ID: "HTL-1", Name: "Luxury Himalayan Resort", Location: "Gangtok", PricePerNight: 120, Rating: 4.8, Amenities: []string{"Free WiFi", "Breakfast", "Spa"}},
	{ID: "HTL-2", Name: "Traditional Sikkim Lodge", Location: "Pelling", PricePerNight: 75, Rating: 4.3, Amenities: []string{"Mountain View", "Restaurant"}},
	{ID: "HTL-3", Name: "Boutique Monastery Stay", Location: "Rumtek", PricePerNight: 95, Rating: 4.6, Amenities: []string{"Cultural Experience", "Yoga Classes"}},
	{ID: "HTL-4", Name: "Premium Gangtok Hotel", Location: "Gangtok", PricePerNight: 145, Rating: 4.7, Amenities: []string{"Swimming Pool", "Fine Dining", "Airport Transfer"}},
	{ID: "HTL-5", Name: "Pemayangtse Heritage Inn", Location: "Pelling", PricePerNight: 88, Rating: 4.4, Amenities: []string{"Kanchenjunga View", "Breakfast"}},
}

const defaultCurrency = "USD"

// MockFlightProvider returns the same four flights for every valid query
// after a fixed delay.
type MockFlightProvider struct {
	Latency time.Duration
	Logger  *zap.Logger
}

func NewMockFlightProvider(latency time.Duration, logger *zap.Logger) *MockFlightProvider {
	return &MockFlightProvider{Latency: latency, Logger: logger}
}

func (p *MockFlightProvider) SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error) {
	if err := ValidateFlightQuery(q); err != nil {
		return nil, err
	}
	if err := sleep(ctx, p.Latency); err != nil {
		return nil, err
	}

	offers := make([]models.FlightOffer, 0, len(fixedFlights))
	for _, f := range fixedFlights {
		f.Origin = strings.TrimSpace(q.Origin)
		f.Destination = q.Destination
		f.Currency = defaultCurrency
		offers = append(offers, f)
	}
	if p.Logger != nil {
		p.Logger.Debug("mock flight search",
			zap.String("origin", q.Origin),
			zap.String("destination", q.Destination),
			zap.Int("offers", len(offers)))
	}
	return offers, nil
}

// MockHotelProvider returns the fixed hotels located in the queried place.
type MockHotelProvider struct {
	Latency time.Duration
	Logger  *zap.Logger
}

func NewMockHotelProvider(latency time.Duration, logger *zap.Logger) *MockHotelProvider {
	return &MockHotelProvider{Latency: latency, Logger: logger}
}

func (p *MockHotelProvider) SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error) {
	if err := ValidateHotelQuery(q); err != nil {
		return nil, err
	}
	if err := sleep(ctx, p.Latency); err != nil {
		return nil, err
	}

	location := strings.TrimSpace(q.Location)
	offers := make([]models.HotelOffer, 0, len(fixedHotels))
	for _, h := range fixedHotels {
		if !strings.EqualFold(h.Location, location) {
			continue
		}
		h.Amenities = append([]string(nil), h.Amenities...)
		h.Currency = defaultCurrency
		offers = append(offers, h)
	}
	if p.Logger != nil {
		p.Logger.Debug("mock hotel search", zap.String("location", location), zap.Int("offers", len(offers)))
	}
	return offers, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
