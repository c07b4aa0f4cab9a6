package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"poi-map-service/internal/ports"
	"testing"
	"time"
)

func newORSTestProvider(t *testing.T, handler http.HandlerFunc) *ORSRouteProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewORSRouteProvider("secret", "driving-car", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p.WithBaseURL(srv.URL)
}

func TestORSRouteSuccess(t *testing.T) {
	p := newORSTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/directions/driving-car/geojson" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "secret" {
			t.Errorf("missing api key header")
		}

		var req directionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Coordinates) != 2 || req.Coordinates[0][0] != testStart.Lon {
			t.Errorf("coordinates = %v, want [lon,lat] pairs", req.Coordinates)
		}

		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[{"geometry":{"coordinates":[[106.7009,10.7769],[106.6602,10.7626]]},
			"properties":{"summary":{"distance":4100.2,"duration":600}}}]}`))
	})

	r, err := p.Route(context.Background(), testStart, testEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Path) != 2 || r.Path[1] != testEnd {
		t.Fatalf("path = %v", r.Path)
	}
	if r.DistanceMeters != 4100.2 || r.DurationSeconds != 600 {
		t.Fatalf("distance/duration = %v/%v", r.DistanceMeters, r.DurationSeconds)
	}
}

func TestORSRouteNotRoutable(t *testing.T) {
	p := newORSTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":2010,"message":"Could not find routable point"}}`))
	})

	if _, err := p.Route(context.Background(), testStart, testEnd); !errors.Is(err, ports.ErrNoRoute) {
		t.Fatalf("err = %v, want ErrNoRoute", err)
	}
}

func TestORSRouteForbiddenIsTransport(t *testing.T) {
	p := newORSTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Access to this API has been disallowed"}`))
	})

	_, err := p.Route(context.Background(), testStart, testEnd)
	var te *ports.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError", err)
	}
}

func TestNewORSRouteProviderRequiresKey(t *testing.T) {
	if _, err := NewORSRouteProvider("", "", 0); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
