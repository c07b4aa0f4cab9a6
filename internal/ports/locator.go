package ports

import (
	"context"
	"errors"
	"poi-map-service/internal/domain"
)

var (
	ErrGeolocationUnsupported = errors.New("geolocation is not supported")
	ErrGeolocationDenied      = errors.New("geolocation permission denied")
	ErrGeolocationUnavailable = errors.New("position unavailable")
	ErrGeolocationTimeout     = errors.New("geolocation timed out")
)

// Source of the user's current position.
type Locator interface {
	// Return the current position or one of the ErrGeolocation* errors.
	Locate(ctx context.Context) (domain.Coordinates, error)
}
