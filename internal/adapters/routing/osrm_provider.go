package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/obs"
	"poi-map-service/internal/ports"
	"strconv"
	"strings"
	"time"
)

const osrmName = "osrm"

// OSRMRouteProvider implements RouteProvider on the OSRM HTTP route service.
//
// Requests are never retried: a failed routing attempt is terminal for the
// user action that triggered it. The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	profile string
}

func NewOSRMRouteProvider(baseURL, profile string, timeout time.Duration) (*OSRMRouteProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base url is empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("OSRM base url: %w", err)
	}
	if profile == "" {
		profile = "driving"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &OSRMRouteProvider{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
		profile: profile,
	}, nil
}

func (o *OSRMRouteProvider) Name() string { return osrmName + ":" + o.profile }

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Request the fastest driving route between start and end.
func (o *OSRMRouteProvider) Route(
	ctx context.Context,
	start domain.Coordinates,
	end domain.Coordinates,
) (_ domain.Route, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s;%s",
		o.baseURL, o.profile, lonLat(start), lonLat(end),
	)

	req, err := newRequest(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return domain.Route{}, &ports.TransportError{Provider: osrmName, Err: err}
	}
	q := req.URL.Query()
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	req.URL.RawQuery = q.Encode()

	resp, err := o.session.Do(req)
	if err != nil {
		return domain.Route{}, &ports.TransportError{Provider: osrmName, Err: fmt.Errorf("execute request: %w", err)}
	}

	body, err := readBody(resp)
	if err != nil {
		return domain.Route{}, &ports.TransportError{Provider: osrmName, Err: err}
	}

	// OSRM reports routing failures (NoRoute, NoSegment, ...) as 4xx with a
	// JSON code; anything else outside 2xx is a service failure.
	var decoded osrmResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode >= 500 || (resp.StatusCode >= 400 && (decodeErr != nil || decoded.Code == "")) {
		return domain.Route{}, &ports.TransportError{Provider: osrmName, Err: statusError(resp.StatusCode, body)}
	}
	if decodeErr != nil {
		return domain.Route{}, &ports.TransportError{Provider: osrmName, Err: fmt.Errorf("decode route response: %w", decodeErr)}
	}

	if decoded.Code != "Ok" {
		return domain.Route{}, fmt.Errorf("osrm route: %s %s: %w", decoded.Code, decoded.Message, ports.ErrNoRoute)
	}
	if len(decoded.Routes) == 0 {
		return domain.Route{}, fmt.Errorf("osrm route: empty route list: %w", ports.ErrNoRoute)
	}

	r := decoded.Routes[0]
	path, err := pathFromLonLat(r.Geometry.Coordinates)
	if err != nil {
		return domain.Route{}, &ports.TransportError{Provider: osrmName, Err: err}
	}

	return domain.Route{
		Path:            path,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
	}, nil
}

func lonLat(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

// pathFromLonLat converts GeoJSON [lon, lat] pairs into coordinates.
func pathFromLonLat(coords [][]float64) ([]domain.Coordinates, error) {
	path := make([]domain.Coordinates, 0, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("invalid coordinate at index %d", i)
		}
		path = append(path, domain.Coordinates{Lat: c[1], Lon: c[0]})
	}
	return path, nil
}
