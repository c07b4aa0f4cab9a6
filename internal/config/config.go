package config

import (
	"errors"
	"fmt"
	"os"
	"poi-map-service/internal/domain"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type Config struct {
	Port     string
	DBDriver string
	DBPath   string
	DBURL    string
	SeedPath string

	RouteProvider string
	OSRMBaseURL   string
	OSRMProfile   string
	ORSAPIKey     string
	ORSProfile    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RouteCacheTTL time.Duration

	SessionTTL    time.Duration
	DefaultCenter domain.Coordinates
	DefaultZoom   int

	LogLevel  string
	LogFormat string
}

// Load reads the service configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          Get("PORT", "8080"),
		DBDriver:      strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:        Get("DB_PATH", "data/app.db"),
		DBURL:         os.Getenv("DATABASE_URL"),
		SeedPath:      Get("SEED_PATH", "data/seeds/pois.json"),
		RouteProvider: strings.ToLower(Get("ROUTE_PROVIDER", "osrm")),
		OSRMBaseURL:   Get("OSRM_BASE_URL", "https://router.project-osrm.org"),
		OSRMProfile:   Get("OSRM_PROFILE", "driving"),
		ORSAPIKey:     os.Getenv("ORS_API_KEY"),
		ORSProfile:    Get("ORS_PROFILE", "driving-car"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASS"),
		LogLevel:      Get("LOG_LEVEL", "info"),
		LogFormat:     Get("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(Get("REDIS_DB", "0")); err != nil || cfg.RedisDB < 0 {
		return nil, fmt.Errorf("load config: REDIS_DB must be a non-negative integer")
	}
	if cfg.RouteCacheTTL, err = time.ParseDuration(Get("ROUTE_CACHE_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("load config: ROUTE_CACHE_TTL: %w", err)
	}
	if cfg.RouteCacheTTL <= 0 {
		return nil, fmt.Errorf("load config: ROUTE_CACHE_TTL must be positive, got %s", cfg.RouteCacheTTL)
	}
	if cfg.SessionTTL, err = time.ParseDuration(Get("SESSION_TTL", "30m")); err != nil {
		return nil, fmt.Errorf("load config: SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("load config: SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.DefaultZoom, err = strconv.Atoi(Get("DEFAULT_ZOOM", "13")); err != nil {
		return nil, fmt.Errorf("load config: DEFAULT_ZOOM: %w", err)
	}
	if cfg.DefaultCenter, err = ParseCoordinates(Get("DEFAULT_CENTER", "10.78,106.70")); err != nil {
		return nil, fmt.Errorf("load config: DEFAULT_CENTER: %w", err)
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if strings.TrimSpace(cfg.DBURL) == "" {
			return nil, errors.New("load config: DATABASE_URL is required for postgres")
		}
	default:
		return nil, fmt.Errorf("load config: unknown DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.RouteProvider {
	case "osrm":
	case "ors":
		if strings.TrimSpace(cfg.ORSAPIKey) == "" {
			return nil, errors.New("load config: ORS_API_KEY is required for the ors provider")
		}
	default:
		return nil, fmt.Errorf("load config: unknown ROUTE_PROVIDER %q", cfg.RouteProvider)
	}

	return cfg, nil
}

// ParseCoordinates parses "lat,lon".
func ParseCoordinates(s string) (domain.Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinates{}, fmt.Errorf("parse coordinates %q: want lat,lon", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse coordinates %q: latitude: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse coordinates %q: longitude: %w", s, err)
	}

	c := domain.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("parse coordinates %q: out of range", s)
	}
	return c, nil
}
