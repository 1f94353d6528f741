package search

import (
	"strings"
	"time"

	"monastery360/models"
)

// ValidateFlightQuery checks the fields a flight search needs.
func ValidateFlightQuery(q models.FlightQuery) error {
	if strings.TrimSpace(q.Origin) == "" {
		return invalidQuery("origin", "please enter a departure city")
	}
	if strings.TrimSpace(q.Destination) == "" {
		return invalidQuery("destination", "please select a destination")
	}
	if q.Passengers < 1 {
		return invalidQuery("passengers", "at least one passenger is required")
	}
	return validateRange("departureDate", q.DepartureDate, "returnDate", q.ReturnDate, true)
}

// ValidateHotelQuery checks the fields a hotel search needs.
func ValidateHotelQuery(q models.HotelQuery) error {
	if strings.TrimSpace(q.Location) == "" {
		return invalidQuery("location", "please select a location")
	}
	if q.Guests < 1 {
		return invalidQuery("guests", "at least one guest is required")
	}
	if q.Rooms < 0 {
		return invalidQuery("rooms", "rooms cannot be negative")
	}
	return validateRange("checkIn", q.CheckIn, "checkOut", q.CheckOut, false)
}

// validateRange requires start, and end unless endOptional, with start <= end.
func validateRange(startField, start, endField, end string, endOptional bool) error {
	if strings.TrimSpace(start) == "" {
		return invalidQuery(startField, "date is required")
	}
	from, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return invalidQuery(startField, "date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(end) == "" {
		if endOptional {
			return nil
		}
		return invalidQuery(endField, "date is required")
	}
	to, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return invalidQuery(endField, "date must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return invalidQuery(endField, "must not be before "+startField)
	}
	return nil
}
