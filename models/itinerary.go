package models

import "time"

// Itinerary is the frozen snapshot of a submitted plan.
type Itinerary struct {
	ID          string         `bson:"id" json:"id"`
	SessionID   string         `bson:"sessionId" json:"sessionId"`
	Monasteries []Monastery    `bson:"monasteries" json:"monasteries"`
	Flight      *FlightOffer   `bson:"flight,omitempty" json:"flight,omitempty"`
	Hotel       *HotelOffer    `bson:"hotel,omitempty" json:"hotel,omitempty"`
	Package     *TravelPackage `bson:"package,omitempty" json:"package,omitempty"`
	Visitor     VisitorInfo    `bson:"visitor" json:"visitor"`
	TravelDate  string         `bson:"travelDate,omitempty" json:"travelDate,omitempty"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
}

// DeliveryReceipt is the delivery provider's answer to a send.
type DeliveryReceipt struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ReminderPayload is queued on confirmation and handled by the reminder worker.
type ReminderPayload struct {
	ItineraryID string `json:"itineraryId"`
	Email       string `json:"email"`
	VisitDate   string `json:"visitDate"`
}
