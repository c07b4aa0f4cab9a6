package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"poi-map-service/internal/config"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/services"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// Map a service error to its HTTP status and write it.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var transport *ports.TransportError

	switch {
	case errors.Is(err, services.ErrUnknownSession),
		errors.Is(err, services.ErrUnknownPOI):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, ports.ErrNoRoute):
		writeError(w, r, http.StatusNotFound, "no route found between start and end")
	case errors.Is(err, services.ErrMissingSelection):
		writeError(w, r, http.StatusConflict, "select both a start and an end before routing")
	case errors.Is(err, ports.ErrGeolocationUnsupported),
		errors.Is(err, ports.ErrGeolocationDenied),
		errors.Is(err, ports.ErrGeolocationUnavailable),
		errors.Is(err, ports.ErrGeolocationTimeout),
		errors.Is(err, services.ErrNoCoordinate):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrInvalidCoordinates),
		errors.Is(err, services.ErrInvalidFilter):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &transport):
		slog.WarnContext(r.Context(), "routing provider unreachable", "provider", transport.Provider, "err", err)
		writeError(w, r, http.StatusBadGateway, "routing provider unavailable")
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// Decode a single JSON object from the request body into v. On failure it
// writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// Parse a required "lat,lon" query parameter.
func coordParam(r *http.Request, name string) (domain.Coordinates, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return domain.Coordinates{}, fmt.Errorf("%s is required", name)
	}
	c, err := config.ParseCoordinates(raw)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Parse a list of points given as repeated name=lat,lon parameters or as one
// "lat,lon|lat,lon|..." value. present is false only when the parameter is
// absent; a present parameter without points is an error.
func pointsParam(r *http.Request, name string) (points []domain.Coordinates, present bool, err error) {
	values, present := r.URL.Query()[name]
	if !present {
		// Query() silently drops pairs it cannot parse, such as ones holding a
		// raw ';'.
		if _, err := url.ParseQuery(r.URL.RawQuery); err != nil {
			return nil, true, fmt.Errorf("%s: %w", name, err)
		}
		return nil, false, nil
	}

	for _, v := range values {
		for _, p := range strings.Split(v, "|") {
			if strings.TrimSpace(p) == "" {
				continue
			}
			c, err := config.ParseCoordinates(p)
			if err != nil {
				return nil, true, fmt.Errorf("%s: %w", name, err)
			}
			points = append(points, c)
		}
	}
	if len(points) == 0 {
		return nil, true, fmt.Errorf("%s has no lat,lon points", name)
	}
	return points, true, nil
}

// Parse an optional float query parameter; nil when absent.
func floatParam(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}
