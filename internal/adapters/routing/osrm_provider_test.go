package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
	"strings"
	"testing"
	"time"
)

var (
	testStart = domain.Coordinates{Lat: 10.7769, Lon: 106.7009}
	testEnd   = domain.Coordinates{Lat: 10.7626, Lon: 106.6602}
)

func newOSRMTestServer(t *testing.T, status int, body string) (*OSRMRouteProvider, *string) {
	t.Helper()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	p, err := NewOSRMRouteProvider(srv.URL, "driving", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p, &gotPath
}

func TestOSRMRouteSuccess(t *testing.T) {
	body := `{"code":"Ok","routes":[{"distance":5234.5,"duration":812.3,
		"geometry":{"type":"LineString","coordinates":[[106.7009,10.7769],[106.68,10.77],[106.6602,10.7626]]}}]}`
	p, gotPath := newOSRMTestServer(t, http.StatusOK, body)

	r, err := p.Route(context.Background(), testStart, testEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(*gotPath, "/route/v1/driving/106.7009,10.7769;106.6602,10.7626?") {
		t.Fatalf("request path = %q", *gotPath)
	}
	if !strings.Contains(*gotPath, "geometries=geojson") || !strings.Contains(*gotPath, "overview=full") {
		t.Fatalf("request query missing options: %q", *gotPath)
	}

	if len(r.Path) != 3 {
		t.Fatalf("path has %d points, want 3", len(r.Path))
	}
	if r.Path[0] != testStart {
		t.Fatalf("first point = %v, want %v (lon/lat swapped?)", r.Path[0], testStart)
	}
	if r.DistanceMeters != 5234.5 || r.DurationSeconds != 812.3 {
		t.Fatalf("distance/duration = %v/%v", r.DistanceMeters, r.DurationSeconds)
	}
}

func TestOSRMRouteNoRoute(t *testing.T) {
	p, _ := newOSRMTestServer(t, http.StatusBadRequest, `{"code":"NoRoute","message":"Impossible route between points"}`)

	_, err := p.Route(context.Background(), testStart, testEnd)
	if !errors.Is(err, ports.ErrNoRoute) {
		t.Fatalf("err = %v, want ErrNoRoute", err)
	}

	var te *ports.TransportError
	if errors.As(err, &te) {
		t.Fatalf("no-route must not be reported as transport error: %v", err)
	}
}

func TestOSRMRouteOkWithoutRoutes(t *testing.T) {
	p, _ := newOSRMTestServer(t, http.StatusOK, `{"code":"Ok","routes":[]}`)

	if _, err := p.Route(context.Background(), testStart, testEnd); !errors.Is(err, ports.ErrNoRoute) {
		t.Fatalf("err = %v, want ErrNoRoute", err)
	}
}

func TestOSRMRouteServerErrorIsTransport(t *testing.T) {
	p, _ := newOSRMTestServer(t, http.StatusBadGateway, `upstream down`)

	_, err := p.Route(context.Background(), testStart, testEnd)
	var te *ports.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if errors.Is(err, ports.ErrNoRoute) {
		t.Fatal("transport failure must not match ErrNoRoute")
	}
}

func TestOSRMRouteMalformedBodyIsTransport(t *testing.T) {
	p, _ := newOSRMTestServer(t, http.StatusOK, `<html>`)

	_, err := p.Route(context.Background(), testStart, testEnd)
	var te *ports.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError", err)
	}
}

func TestOSRMRouteUnreachableIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := NewOSRMRouteProvider(url, "", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = p.Route(context.Background(), testStart, testEnd)
	var te *ports.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if Outcome(err) != "transport" {
		t.Fatalf("Outcome = %q, want transport", Outcome(err))
	}
}
