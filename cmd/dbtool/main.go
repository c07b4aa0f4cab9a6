package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"poi-map-service/internal/adapters/cache"
	"poi-map-service/internal/adapters/osm"
	"poi-map-service/internal/adapters/repositories"
	"poi-map-service/internal/config"
	"poi-map-service/internal/geo"
	"poi-map-service/internal/platform/db"
	"poi-map-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const usage = `usage: dbtool <command> [flags]

commands:
  init                       create the schema
  seed [-file path]          load categories and points from a JSON seed
  import-osm -bbox s,w,n,e   import eating places from OpenStreetMap
  purge-cache                delete expired cached routes
`

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("load config", err)
	}
	obs.Setup(cfg.LogLevel, cfg.LogFormat)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	conn, dialect, err := db.Connect(cfg.DBDriver, cfg.DBPath, cfg.DBURL)
	if err != nil {
		fatal("open database", err)
	}
	defer conn.Close()

	ctx := context.Background()

	slog.Info("initializing database schema")
	if err := repositories.InitSchema(conn); err != nil {
		fatal("schema initialization failed", err)
	}

	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "init":
		slog.Info("schema ready")

	case "seed":
		fs := flag.NewFlagSet("seed", flag.ExitOnError)
		file := fs.String("file", cfg.SeedPath, "seed JSON file")
		_ = fs.Parse(args)

		if err := repositories.SeedFromJSON(ctx, conn, dialect, *file); err != nil {
			fatal("seeding failed", err)
		}
		slog.Info("seeding complete", "file", *file)

	case "import-osm":
		fs := flag.NewFlagSet("import-osm", flag.ExitOnError)
		bbox := fs.String("bbox", "", "south,west,north,east")
		endpoint := fs.String("endpoint", config.Get("OVERPASS_URL", osm.DefaultEndpoint), "Overpass API endpoint")
		timeout := fs.Duration("timeout", 90*time.Second, "request timeout")
		_ = fs.Parse(args)

		box, err := parseBBox(*bbox)
		if err != nil {
			fatal("import-osm", err)
		}

		importer := osm.NewImporter(*endpoint, *timeout)
		pois, categories, err := importer.Fetch(ctx, box)
		if err != nil {
			fatal("import-osm", err)
		}
		if err := repositories.UpsertPOIs(ctx, conn, dialect, categories, pois); err != nil {
			fatal("import-osm", err)
		}
		slog.Info("import complete", "pois", len(pois), "categories", len(categories))

	case "purge-cache":
		n, err := cache.NewSQLRouteCache(conn, dialect, 0).Purge(ctx)
		if err != nil {
			fatal("purge-cache", err)
		}
		slog.Info("route cache purged", "expired", n)

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}

func parseBBox(s string) (geo.BBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geo.BBox{}, fmt.Errorf("bbox %q: want south,west,north,east", s)
	}

	sw, err := config.ParseCoordinates(parts[0] + "," + parts[1])
	if err != nil {
		return geo.BBox{}, fmt.Errorf("bbox: %w", err)
	}
	ne, err := config.ParseCoordinates(parts[2] + "," + parts[3])
	if err != nil {
		return geo.BBox{}, fmt.Errorf("bbox: %w", err)
	}
	if sw.Lat >= ne.Lat || sw.Lon >= ne.Lon {
		return geo.BBox{}, fmt.Errorf("bbox %q: south-west must be below and left of north-east", s)
	}
	return geo.BBox{SouthWest: sw, NorthEast: ne}, nil
}
