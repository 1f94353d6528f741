package planner

import (
	"fmt"
	"time"

	"monastery360/models"
)

// Catalog is the slice of the static catalog the planner resolves ids against.
type Catalog interface {
	MonasteryByID(id string) (*models.Monastery, error)
	PackageByID(id string) (*models.TravelPackage, error)
}

// BuildItinerary snapshots the selections of s into a new Itinerary.
func BuildItinerary(s models.WizardState, catalog Catalog, id string, now time.Time) (models.Itinerary, error) {
	it := models.Itinerary{
		ID:          id,
		SessionID:   s.SessionID,
		Monasteries: make([]models.Monastery, 0, len(s.Selections.MonasteryIDs)),
		Visitor:     s.Selections.Visitor,
		CreatedAt:   now,
	}

	for _, mid := range s.Selections.MonasteryIDs {
		m, err := catalog.MonasteryByID(mid)
		if err != nil {
			return models.Itinerary{}, fmt.Errorf("failed to resolve monastery: %w", err)
		}
		it.Monasteries = append(it.Monasteries, *m)
	}

	if s.Selections.PackageID != "" {
		p, err := catalog.PackageByID(s.Selections.PackageID)
		if err != nil {
			return models.Itinerary{}, fmt.Errorf("failed to resolve package: %w", err)
		}
		it.Package = p
	}

	if id := s.Selections.FlightID; id != "" {
		for _, o := range s.Flights.Offers {
			if o.ID == id {
				offer := o
				it.Flight = &offer
				it.TravelDate = s.Flights.Query.DepartureDate
				break
			}
		}
	}
	if id := s.Selections.HotelID; id != "" {
		for _, o := range s.Hotels.Offers {
			if o.ID == id {
				offer := o
				offer.Amenities = append([]string(nil), o.Amenities...)
				it.Hotel = &offer
				if it.TravelDate == "" {
					it.TravelDate = s.Hotels.Query.CheckIn
				}
				break
			}
		}
	}
	return it, nil
}
