package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB archive. An empty URL disables the itinerary archive.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Planner sessions: "redis" or "memory".
	SessionStore      string `mapstructure:"SESSION_STORE"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Simulated latencies of the stand-in providers.
	FlightSearchLatencyMS int `mapstructure:"FLIGHT_SEARCH_LATENCY_MS"`
	HotelSearchLatencyMS  int `mapstructure:"HOTEL_SEARCH_LATENCY_MS"`
	DeliveryLatencyMS     int `mapstructure:"DELIVERY_LATENCY_MS"`

	// Zero disables the search result cache. Cache hits skip the simulated
	// provider latency, so it stays off unless set.
	SearchCacheTTLSeconds int `mapstructure:"SEARCH_CACHE_TTL_SECONDS"`

	RemindersEnabled bool `mapstructure:"REMINDERS_ENABLED"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_NAME", "monastery360")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("REDIS_CACHE_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("SESSION_STORE", "redis")
	v.SetDefault("SESSION_TTL_MINUTES", 30)
	v.SetDefault("FLIGHT_SEARCH_LATENCY_MS", 1500)
	v.SetDefault("HOTEL_SEARCH_LATENCY_MS", 1500)
	v.SetDefault("DELIVERY_LATENCY_MS", 2000)
	v.SetDefault("SEARCH_CACHE_TTL_SECONDS", 0)
	v.SetDefault("REMINDERS_ENABLED", false)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SessionTTL is how long an idle planner session survives.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c Config) FlightSearchLatency() time.Duration {
	return time.Duration(c.FlightSearchLatencyMS) * time.Millisecond
}

func (c Config) HotelSearchLatency() time.Duration {
	return time.Duration(c.HotelSearchLatencyMS) * time.Millisecond
}

func (c Config) DeliveryLatency() time.Duration {
	return time.Duration(c.DeliveryLatencyMS) * time.Millisecond
}

func (c Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.SearchCacheTTLSeconds) * time.Second
}
