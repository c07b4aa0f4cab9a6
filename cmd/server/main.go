package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"poi-map-service/internal/adapters/cache"
	"poi-map-service/internal/adapters/geolocation"
	"poi-map-service/internal/adapters/mapview"
	"poi-map-service/internal/adapters/repositories"
	"poi-map-service/internal/adapters/routing"
	"poi-map-service/internal/api"
	"poi-map-service/internal/api/dto"
	"poi-map-service/internal/config"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/db"
	"poi-map-service/internal/platform/obs"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const (
	routeTimeout  = 15 * time.Second
	evictInterval = time.Minute
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis, OSRM/ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("load config", err)
	}
	obs.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, dialect, err := db.Connect(cfg.DBDriver, cfg.DBPath, cfg.DBURL)
	if err != nil {
		fatal("open database", err)
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, conn, dialect, cfg.SeedPath); err != nil {
		fatal("init database", err)
	}

	// The catalog is loaded once and shared read-only by every session.
	pois, categories, err := loadCatalog(ctx, repositories.NewSQLPOIRepository(conn))
	if err != nil {
		fatal("load catalog", err)
	}
	slog.Info("catalog loaded", "pois", len(pois), "categories", len(categories))

	provider, closeProvider, err := newRouteProvider(ctx, cfg, conn, dialect)
	if err != nil {
		fatal("route provider", err)
	}
	defer closeProvider()

	store := services.NewSessionStore(pois, services.View{Center: cfg.DefaultCenter, Zoom: cfg.DefaultZoom}, cfg.SessionTTL)
	go store.Run(ctx, evictInterval)

	router := api.NewRouter(pois, categories, store, provider, browserLocator, newSceneView)

	// Write timeout leaves room for a slow routing provider.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      routeTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "err", err)
		}
	}()

	slog.Info("server listening", "addr", srv.Addr, "route_provider", cfg.RouteProvider, "db", cfg.DBDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal("serve", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect db.Dialect, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, fs.ErrNotExist) {
		slog.Warn("seed file not found, skipping seed", "path", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(ctx, conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

func loadCatalog(ctx context.Context, repo ports.POIRepository) ([]*domain.PointOfInterest, []domain.Category, error) {
	pois, err := repo.ListPOIs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	categories, err := repo.ListCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	return pois, categories, nil
}

// Build the routing chain: cache in front of the instrumented HTTP provider.
// Redis backs the cache when REDIS_ADDR is set, the SQL database otherwise.
func newRouteProvider(ctx context.Context, cfg *config.Config, conn *sql.DB, dialect db.Dialect) (ports.RouteProvider, func(), error) {
	var (
		base ports.RouteProvider
		name string
	)

	switch cfg.RouteProvider {
	case "ors":
		p, err := routing.NewORSRouteProvider(cfg.ORSAPIKey, cfg.ORSProfile, routeTimeout)
		if err != nil {
			return nil, nil, err
		}
		base, name = p, p.Name()
	default:
		p, err := routing.NewOSRMRouteProvider(cfg.OSRMBaseURL, cfg.OSRMProfile, routeTimeout)
		if err != nil {
			return nil, nil, err
		}
		base, name = p, p.Name()
	}
	instrumented := routing.NewInstrumentedProvider(base, name)

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("route cache: ping redis %s: %w", cfg.RedisAddr, err)
		}

		slog.Info("route cache", "backend", "redis", "addr", cfg.RedisAddr, "ttl", cfg.RouteCacheTTL)
		rc := cache.NewRedisRouteCache(client, cfg.RouteCacheTTL)
		return routing.NewCachingProvider(instrumented, rc, name), func() { client.Close() }, nil
	}

	sc := cache.NewSQLRouteCache(conn, dialect, cfg.RouteCacheTTL)
	if n, err := sc.Purge(ctx); err != nil {
		slog.Warn("route cache purge failed", "err", err)
	} else if n > 0 {
		slog.Info("route cache purged", "expired", n)
	}

	slog.Info("route cache", "backend", "sql", "ttl", cfg.RouteCacheTTL)
	return routing.NewCachingProvider(instrumented, sc, name), func() {}, nil
}

func browserLocator(req dto.LocationRequest) ports.Locator {
	return geolocation.BrowserReport{
		Lat:         req.Lat,
		Lon:         req.Lon,
		ErrorCode:   req.ErrorCode,
		Unsupported: req.Unsupported,
		Message:     req.Message,
	}
}

func newSceneView() ports.MapView { return mapview.NewScene() }
