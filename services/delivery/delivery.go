package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"monastery360/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrInvalidRecipient is returned for a malformed destination address.
var ErrInvalidRecipient = errors.New("invalid recipient")

// DeliveryProvider sends a finished itinerary to the visitor.
type DeliveryProvider interface {
	SendItinerary(ctx context.Context, email string, itinerary models.Itinerary) (*models.DeliveryReceipt, error)
}

var validate = validator.New()

// ValidEmail reports whether email is a syntactically valid address.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return validate.Var(email, "email") == nil
}

// MockEmailDelivery stands in for a mail service: it checks the address,
// waits for Latency and logs the itinerary it would have sent.
type MockEmailDelivery struct {
	Latency time.Duration
	Logger  *zap.Logger
}

func NewMockEmailDelivery(latency time.Duration, logger *zap.Logger) *MockEmailDelivery {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockEmailDelivery{Latency: latency, Logger: logger}
}

func (d *MockEmailDelivery) SendItinerary(ctx context.Context, email string, itinerary models.Itinerary) (*models.DeliveryReceipt, error) {
	if !ValidEmail(email) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRecipient, email)
	}

	timer := time.NewTimer(d.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	d.Logger.Info("Sending itinerary",
		zap.String("email", email),
		zap.String("itineraryId", itinerary.ID),
		zap.Int("monasteries", len(itinerary.Monasteries)))

	return &models.DeliveryReceipt{Success: true, Message: "Itinerary sent successfully!"}, nil
}
