package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"monastery360/models"

	"github.com/go-redis/redis/v8"
)

const (
	sessionKeyPrefix = "planner:session:"
	maxTxRetries     = 10
)

// RedisSessionStore keeps each session as a JSON value with a sliding TTL.
// Updates run under WATCH so concurrent writers to one session never lose
// each other's changes.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (r *RedisSessionStore) Create(ctx context.Context, state models.WizardState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal planner session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(state.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store planner session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.WizardState, error) {
	raw, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load planner session: %w", err)
	}
	var state models.WizardState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to parse planner session %s: %w", sessionID, err)
	}
	return &state, nil
}

func (r *RedisSessionStore) Update(ctx context.Context, sessionID string, fn UpdateFunc) (*models.WizardState, error) {
	key := sessionKey(sessionID)
	var next models.WizardState

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to load planner session: %w", err)
		}
		var cur models.WizardState
		if err := json.Unmarshal(raw, &cur); err != nil {
			return fmt.Errorf("failed to parse planner session %s: %w", sessionID, err)
		}

		next, err = fn(cur)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal planner session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &next, nil
	}
	return nil, fmt.Errorf("planner session %s: too much contention, gave up after %d attempts", sessionID, maxTxRetries)
}

func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	n, err := r.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete planner session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
