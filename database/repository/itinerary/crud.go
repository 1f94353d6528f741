package itineraryRepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"monastery360/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create archives a confirmed itinerary and returns its ID.
func (r *mongoItineraryRepo) Create(ctx context.Context, itinerary models.Itinerary) (string, error) {
	if itinerary.ID == "" {
		itinerary.ID = uuid.New().String()
	}
	if itinerary.CreatedAt.IsZero() {
		itinerary.CreatedAt = time.Now()
	}
	itinerary.Visitor.Email = normalizeEmail(itinerary.Visitor.Email)

	if _, err := r.coll.InsertOne(ctx, itinerary); err != nil {
		return "", err
	}
	return itinerary.ID, nil
}

// GetByID returns an archived itinerary by its ID.
func (r *mongoItineraryRepo) GetByID(ctx context.Context, id string) (*models.Itinerary, error) {
	var itinerary models.Itinerary
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&itinerary)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &itinerary, nil
}

// ListBySession returns the itineraries confirmed in one planner session,
// newest first.
func (r *mongoItineraryRepo) ListBySession(ctx context.Context, sessionID string) ([]models.Itinerary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	itineraries := []models.Itinerary{}
	if err := cursor.All(ctx, &itineraries); err != nil {
		return nil, err
	}
	return itineraries, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
