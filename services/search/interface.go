package search

import (
	"context"

	"monastery360/models"
)

// FlightSearchProvider looks up flight offers for a query.
type FlightSearchProvider interface {
	SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error)
}

// HotelSearchProvider looks up hotel offers for a query.
type HotelSearchProvider interface {
	SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error)
}
