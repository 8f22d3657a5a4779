package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// const dsn = "host=localhost user=postgres password=password dbname=shareit port=5432 sslmode=disable TimeZone=UTC"

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02T15:04:05"

const SHARER_HEADER = "X-Sharer-User-Id"

const BOOKING_EVENTS_TOPIC = "bookings"

type DatePolicy string

const (
	// DATE_POLICY_ORDERED only requires end to be after start.
	DATE_POLICY_ORDERED DatePolicy = "ordered"
	// DATE_POLICY_FUTURE additionally requires both ends of the window to lie in the future.
	DATE_POLICY_FUTURE DatePolicy = "future"
)

func GetDatePolicy() DatePolicy {
	switch p := DatePolicy(os.Getenv("BOOKING_DATE_POLICY")); p {
	case DATE_POLICY_FUTURE:
		return p
	case "", DATE_POLICY_ORDERED:
		return DATE_POLICY_ORDERED
	default:
		log.Printf("Unknown BOOKING_DATE_POLICY %q, using %q\n", p, DATE_POLICY_ORDERED)
		return DATE_POLICY_ORDERED
	}
}

func GetPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "9090"
}

func GetCacheTTL() time.Duration {
	raw := os.Getenv("BOOKING_CACHE_TTL")
	if raw == "" {
		return time.Minute
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid BOOKING_CACHE_TTL %q: %s\n", raw, err.Error())
		return time.Minute
	}
	return ttl
}

// GetBookingRateLimit returns a ulule/limiter formatted rate, e.g. "30-M".
func GetBookingRateLimit() string {
	if rate := os.Getenv("RATE_LIMIT_BOOKINGS"); rate != "" {
		return rate
	}
	return "30-M"
}

func IsMaintenanceMode() bool {
	mm := os.Getenv("MAINTENANCE_MODE")
	if mm == "" {
		return false
	}
	on, err := strconv.ParseBool(mm)
	if err != nil {
		return true
	}
	return on
}

func IsLocal() bool {
	return os.Getenv("API_ENV") == "local"
}

func GetKafkaBroker() string {
	return os.Getenv("KAFKA_BROKER")
}

func UseMemoryStore() bool {
	on, _ := strconv.ParseBool(os.Getenv("USE_MEMORY_STORE"))
	return on
}
