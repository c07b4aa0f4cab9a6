package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/obs"
	"poi-map-service/internal/ports"
	"time"
)

const orsName = "ors"

// OpenRouteService error codes meaning "no path", as opposed to bad input.
const (
	orsRouteNotFound    = 2009
	orsPointNotRoutable = 2010
)

// ORSRouteProvider implements RouteProvider using the OpenRouteService
// directions endpoint.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

func NewORSRouteProvider(apiKey, profile string, timeout time.Duration) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if profile == "" {
		profile = "driving-car"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	provider := &ORSRouteProvider{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: profile,
	}

	return provider, nil
}

// Point the provider at another deployment (self-hosted ORS, tests).
func (o *ORSRouteProvider) WithBaseURL(baseURL string) *ORSRouteProvider {
	o.baseURL = baseURL
	return o
}

func (o *ORSRouteProvider) Name() string { return orsName + ":" + o.profile }

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

type orsErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Request a route between start and end from /v2/directions/{profile}/geojson.
func (o *ORSRouteProvider) Route(
	ctx context.Context,
	start domain.Coordinates,
	end domain.Coordinates,
) (_ domain.Route, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{start.CoordsToList(), end.CoordsToList()},
	})
	if err != nil {
		return domain.Route{}, &ports.TransportError{Provider: orsName, Err: fmt.Errorf("marshal directions request: %w", err)}
	}

	req, err := newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), o.apiKey)
	if err != nil {
		return domain.Route{}, &ports.TransportError{Provider: orsName, Err: err}
	}

	resp, err := o.session.Do(req)
	if err != nil {
		return domain.Route{}, &ports.TransportError{Provider: orsName, Err: fmt.Errorf("execute request: %w", err)}
	}

	body, err := readBody(resp)
	if err != nil {
		return domain.Route{}, &ports.TransportError{Provider: orsName, Err: err}
	}

	if resp.StatusCode >= 400 {
		var orsErr orsErrorResponse
		if json.Unmarshal(body, &orsErr) == nil {
			switch orsErr.Error.Code {
			case orsRouteNotFound, orsPointNotRoutable:
				return domain.Route{}, fmt.Errorf("ors route: %s: %w", orsErr.Error.Message, ports.ErrNoRoute)
			}
		}
		return domain.Route{}, &ports.TransportError{Provider: orsName, Err: statusError(resp.StatusCode, body)}
	}

	var decoded directionsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return domain.Route{}, &ports.TransportError{Provider: orsName, Err: fmt.Errorf("decode directions response: %w", err)}
	}

	if len(decoded.Features) == 0 {
		return domain.Route{}, fmt.Errorf("ors route: empty feature list: %w", ports.ErrNoRoute)
	}

	f := decoded.Features[0]
	path, err := pathFromLonLat(f.Geometry.Coordinates)
	if err != nil {
		return domain.Route{}, &ports.TransportError{Provider: orsName, Err: err}
	}

	return domain.Route{
		Path:            path,
		DistanceMeters:  f.Properties.Summary.Distance,
		DurationSeconds: f.Properties.Summary.Duration,
	}, nil
}
