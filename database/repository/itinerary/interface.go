package itineraryRepo

import (
	"context"
	"errors"
	"fmt"

	"monastery360/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no archived itinerary matches.
var ErrNotFound = errors.New("itinerary not found")

type ItineraryRepository interface {
	Create(ctx context.Context, itinerary models.Itinerary) (string, error)
	GetByID(ctx context.Context, id string) (*models.Itinerary, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Itinerary, error)
}

type mongoItineraryRepo struct {
	coll *mongo.Collection
}

// NewMongoItineraryRepo returns an ItineraryRepository backed by the
// "itineraries" collection of db, creating its indexes first.
func NewMongoItineraryRepo(db *mongo.Database) (ItineraryRepository, error) {
	repo := &mongoItineraryRepo{coll: db.Collection("itineraries")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, fmt.Errorf("itinerary repository: %w", err)
	}
	return repo, nil
}
