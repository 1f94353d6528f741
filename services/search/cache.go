package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"monastery360/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "search:"

// CachedFlightSearch memoizes a FlightSearchProvider in Redis.
type CachedFlightSearch struct {
	Next   FlightSearchProvider
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func (c *CachedFlightSearch) SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error) {
	if err := ValidateFlightQuery(q); err != nil {
		return nil, err
	}
	key := flightKey(q)
	return cached(ctx, c.Client, c.Logger, key, c.TTL, func() ([]models.FlightOffer, error) {
		return c.Next.SearchFlights(ctx, q)
	})
}

// CachedHotelSearch memoizes a HotelSearchProvider in Redis.
type CachedHotelSearch struct {
	Next   HotelSearchProvider
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func (c *CachedHotelSearch) SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error) {
	if err := ValidateHotelQuery(q); err != nil {
		return nil, err
	}
	key := hotelKey(q)
	return cached(ctx, c.Client, c.Logger, key, c.TTL, func() ([]models.HotelOffer, error) {
		return c.Next.SearchHotels(ctx, q)
	})
}

func flightKey(q models.FlightQuery) string {
	return fmt.Sprintf("%sflights:%s|%s|%s|%s|%d", cacheKeyPrefix,
		normalize(q.Origin), normalize(q.Destination), q.DepartureDate, q.ReturnDate, q.Passengers)
}

func hotelKey(q models.HotelQuery) string {
	return fmt.Sprintf("%shotels:%s|%s|%s|%d|%d", cacheKeyPrefix,
		normalize(q.Location), q.CheckIn, q.CheckOut, q.Rooms, q.Guests)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// cached serves key from Redis or falls through to fetch. Cache errors are
// logged and never fail the search; provider errors are never cached.
func cached[T any](ctx context.Context, client *redis.Client, logger *zap.Logger, key string, ttl time.Duration, fetch func() ([]T, error)) ([]T, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []T
		if err := json.Unmarshal(raw, &out); err == nil {
			logger.Debug("search cache hit", zap.String("key", key))
			return out, nil
		}
		logger.Warn("discarding corrupt search cache entry", zap.String("key", key))
	case err != redis.Nil:
		logger.Warn("search cache read failed", zap.String("key", key), zap.Error(err))
	}

	out, err := fetch()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Warn("search cache write failed", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}
