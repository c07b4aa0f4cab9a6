package geolocation

import (
	"context"
	"fmt"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
)

// Error codes of the browser Geolocation API (GeolocationPositionError.code).
const (
	CodePermissionDenied    = 1
	CodePositionUnavailable = 2
	CodeTimeout             = 3
)

// BrowserReport adapts the result of a client-side geolocation attempt to
// the Locator port. Either Lat/Lon are set, or ErrorCode/Unsupported say why
// no position is available.
type BrowserReport struct {
	Lat         *float64
	Lon         *float64
	ErrorCode   int
	Unsupported bool
	Message     string
}

func (r BrowserReport) Locate(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}

	var err error
	switch {
	case r.Unsupported:
		err = ports.ErrGeolocationUnsupported
	case r.ErrorCode == CodePermissionDenied:
		err = ports.ErrGeolocationDenied
	case r.ErrorCode == CodeTimeout:
		err = ports.ErrGeolocationTimeout
	case r.ErrorCode != 0, r.Lat == nil, r.Lon == nil:
		err = ports.ErrGeolocationUnavailable
	}

	if err != nil {
		if r.Message != "" {
			return domain.Coordinates{}, fmt.Errorf("%w: %s", err, r.Message)
		}
		return domain.Coordinates{}, err
	}

	return domain.Coordinates{Lat: *r.Lat, Lon: *r.Lon}, nil
}

// Fixed always answers with the same position or error.
type Fixed struct {
	Coordinates domain.Coordinates
	Err         error
}

func (f Fixed) Locate(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	if f.Err != nil {
		return domain.Coordinates{}, f.Err
	}
	return f.Coordinates, nil
}
