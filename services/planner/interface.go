package planner

import (
	"context"
	"time"

	"monastery360/models"
	"monastery360/services/delivery"
	"monastery360/services/search"

	"go.uber.org/zap"
)

// PlannerService drives visit-planner sessions. Every method applies one
// wizard transition to the stored session and returns the resulting state.
type PlannerService interface {
	StartSession(ctx context.Context) (*models.WizardState, error)
	GetSession(ctx context.Context, sessionID string) (*models.WizardState, error)
	EndSession(ctx context.Context, sessionID string) error

	ToggleMonastery(ctx context.Context, sessionID, monasteryID string) (*models.WizardState, error)
	NextStep(ctx context.Context, sessionID string) (*models.WizardState, error)
	PreviousStep(ctx context.Context, sessionID string) (*models.WizardState, error)

	SearchFlights(ctx context.Context, sessionID string, q models.FlightQuery) (*models.WizardState, error)
	SearchHotels(ctx context.Context, sessionID string, q models.HotelQuery) (*models.WizardState, error)
	SelectFlight(ctx context.Context, sessionID, offerID string) (*models.WizardState, error)
	SelectHotel(ctx context.Context, sessionID, offerID string) (*models.WizardState, error)
	SelectPackage(ctx context.Context, sessionID, packageID string) (*models.WizardState, error)
	UpdateVisitor(ctx context.Context, sessionID string, v models.VisitorInfo) (*models.WizardState, error)

	Submit(ctx context.Context, sessionID string) (*models.WizardState, error)
	Reset(ctx context.Context, sessionID string) (*models.WizardState, error)
}

// ItineraryArchive records confirmed itineraries.
type ItineraryArchive interface {
	Create(ctx context.Context, itinerary models.Itinerary) (string, error)
}

// ReminderScheduler queues a pre-visit reminder for a confirmed itinerary.
type ReminderScheduler interface {
	ScheduleVisitReminder(ctx context.Context, itinerary models.Itinerary) error
}

// DefaultPlannerService implements PlannerService. Archive and Reminders are
// optional.
type DefaultPlannerService struct {
	Store     SessionStore
	Catalog   Catalog
	Flights   search.FlightSearchProvider
	Hotels    search.HotelSearchProvider
	Delivery  delivery.DeliveryProvider
	Archive   ItineraryArchive
	Reminders ReminderScheduler
	Logger    *zap.Logger
	Now       func() time.Time
}
