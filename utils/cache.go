package utils

import (
	"context"
	"fmt"
	"time"

	"monastery360/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionClient holds planner sessions.
	SessionClient *redis.Client
	// CacheClient caches search results.
	CacheClient *redis.Client
)

// NewRedisClient connects to the configured Redis server on db and pings it.
func NewRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (db %d): %w", db, err)
	}
	return client, nil
}

// InitSessionStore connects the planner session client.
func InitSessionStore() (*redis.Client, error) {
	client, err := NewRedisClient(config.AppConfig.RedisSessionDB)
	if err != nil {
		return nil, err
	}
	SessionClient = client
	return client, nil
}

// InitCache connects the search cache client.
func InitCache() (*redis.Client, error) {
	client, err := NewRedisClient(config.AppConfig.RedisCacheDB)
	if err != nil {
		return nil, err
	}
	CacheClient = client
	return client, nil
}

// CloseRedis closes whichever clients were opened.
func CloseRedis() {
	for _, c := range []*redis.Client{SessionClient, CacheClient} {
		if c != nil {
			c.Close()
		}
	}
}
