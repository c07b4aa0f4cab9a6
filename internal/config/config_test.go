package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ROUTE_PROVIDER", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("ROUTE_CACHE_TTL", "")
	t.Setenv("DEFAULT_CENTER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.RouteProvider != "osrm" {
		t.Fatalf("defaults = %q/%q, want sqlite/osrm", cfg.DBDriver, cfg.RouteProvider)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("session ttl = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.DefaultCenter.Lat != 10.78 || cfg.DefaultCenter.Lon != 106.70 {
		t.Fatalf("default center = %v", cfg.DefaultCenter)
	}
}

func TestLoadRequiresORSKey(t *testing.T) {
	t.Setenv("ROUTE_PROVIDER", "ors")
	t.Setenv("ORS_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without ORS_API_KEY")
	}
}

func TestLoadRejectsNonPositiveTTLs(t *testing.T) {
	for _, key := range []string{"ROUTE_CACHE_TTL", "SESSION_TTL"} {
		for _, v := range []string{"0", "0s", "-5m"} {
			t.Run(key+"="+v, func(t *testing.T) {
				t.Setenv(key, v)
				if _, err := Load(); err == nil {
					t.Fatalf("expected error for %s=%s", key, v)
				}
			})
		}
	}
}

func TestParseCoordinatesAcceptsZero(t *testing.T) {
	c, err := ParseCoordinates("0, 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 0 || c.Lon != 0 {
		t.Fatalf("got %v, want 0,0", c)
	}

	if _, err := ParseCoordinates("95,10"); err == nil {
		t.Fatal("expected out of range error")
	}
}
