package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/db"
	"strings"
)

// Initialize the database schema. The DDL is valid for SQLite and Postgres.
func InitSchema(conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCategoriesQuery := `
	CREATE TABLE IF NOT EXISTS categories (
		category_id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createPOIsQuery := `
	CREATE TABLE IF NOT EXISTS pois (
		poi_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category_id TEXT REFERENCES categories(category_id),
		address TEXT NOT NULL DEFAULT '',
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		price_level INTEGER NOT NULL DEFAULT 1,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		load_order INTEGER NOT NULL DEFAULT 0
	);
	`

	createPromotionsQuery := `
	CREATE TABLE IF NOT EXISTS poi_promotions (
		poi_id TEXT NOT NULL REFERENCES pois(poi_id),
		label TEXT NOT NULL,
		PRIMARY KEY (poi_id, label)
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		expires_at BIGINT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pois_category
	ON pois(category_id);
	`

	statements := []string{
		createCategoriesQuery,
		createPOIsQuery,
		createPromotionsQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type CategorySeed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type POISeed struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	CategoryID string   `json:"category_id"`
	Address    string   `json:"address"`
	Rating     float64  `json:"rating"`
	PriceLevel int      `json:"price_level"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	Promotions []string `json:"promotions"`
}

type Seed struct {
	Categories []CategorySeed `json:"categories"`
	POIs       []POISeed      `json:"pois"`
}

// Populate the database with categories and points of interest from a JSON file.
func SeedFromJSON(ctx context.Context, conn *sql.DB, dialect db.Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed pois: read %q: %w", jsonPath, err)
	}

	var data Seed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed pois: parse json: %w", err)
	}

	categories := make([]domain.Category, 0, len(data.Categories))
	for i, c := range data.Categories {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return fmt.Errorf("seed pois: category at index %d: id cannot be empty", i+1)
		}
		categories = append(categories, domain.Category{ID: id, Name: strings.TrimSpace(c.Name)})
	}

	pois := make([]*domain.PointOfInterest, 0, len(data.POIs))
	for i, item := range data.POIs {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("seed pois: item at index %d: id cannot be empty", i+1)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed pois: item %q: name cannot be empty", id)
		}

		p := &domain.PointOfInterest{
			ID:         id,
			Name:       name,
			CategoryID: strings.TrimSpace(item.CategoryID),
			Address:    strings.TrimSpace(item.Address),
			Rating:     item.Rating,
			PriceLevel: item.PriceLevel,
			Promotions: item.Promotions,
		}
		if item.Lat != nil && item.Lon != nil {
			p.Coordinates = &domain.Coordinates{Lat: *item.Lat, Lon: *item.Lon}
		}
		pois = append(pois, p)
	}

	if err := UpsertPOIs(ctx, conn, dialect, categories, pois); err != nil {
		return fmt.Errorf("seed pois: %w", err)
	}
	return nil
}

// Insert or update categories and points in one transaction. Points keep the
// order of the slice as their load order.
func UpsertPOIs(
	ctx context.Context,
	conn *sql.DB,
	dialect db.Dialect,
	categories []domain.Category,
	pois []*domain.PointOfInterest,
) error {
	if conn == nil {
		return errors.New("upsert pois: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert pois: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ph := dialect.Placeholder

	catStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO categories (category_id, name)
	VALUES (%s, %s)
	ON CONFLICT (category_id) DO UPDATE
	SET name = excluded.name;
	`, ph(1), ph(2)))
	if err != nil {
		return fmt.Errorf("upsert pois: prepare category insert: %w", err)
	}
	defer catStmt.Close()

	for _, c := range categories {
		if _, err := catStmt.ExecContext(ctx, c.ID, c.Name); err != nil {
			return fmt.Errorf("upsert pois: insert category_id=%q: %w", c.ID, err)
		}
	}

	poiStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO pois (
		poi_id,
		name,
		category_id,
		address,
		rating,
		price_level,
		lat,
		lon,
		load_order
	)
	VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)
	ON CONFLICT (poi_id) DO UPDATE
	SET name = excluded.name,
		category_id = excluded.category_id,
		address = excluded.address,
		rating = excluded.rating,
		price_level = excluded.price_level,
		lat = excluded.lat,
		lon = excluded.lon,
		load_order = excluded.load_order;
	`, ph(1), ph(2), ph(3), ph(4), ph(5), ph(6), ph(7), ph(8), ph(9)))
	if err != nil {
		return fmt.Errorf("upsert pois: prepare poi insert: %w", err)
	}
	defer poiStmt.Close()

	clearPromoStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`DELETE FROM poi_promotions WHERE poi_id = %s;`, ph(1)))
	if err != nil {
		return fmt.Errorf("upsert pois: prepare promotion delete: %w", err)
	}
	defer clearPromoStmt.Close()

	promoStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO poi_promotions (poi_id, label)
	VALUES (%s, %s)
	ON CONFLICT (poi_id, label) DO NOTHING;
	`, ph(1), ph(2)))
	if err != nil {
		return fmt.Errorf("upsert pois: prepare promotion insert: %w", err)
	}
	defer promoStmt.Close()

	for i, p := range pois {
		var lat, lon sql.NullFloat64
		if p.Coordinates != nil {
			lat = sql.NullFloat64{Float64: p.Coordinates.Lat, Valid: true}
			lon = sql.NullFloat64{Float64: p.Coordinates.Lon, Valid: true}
		}

		var category sql.NullString
		if p.CategoryID != "" {
			category = sql.NullString{String: p.CategoryID, Valid: true}
		}

		priceLevel := p.PriceLevel
		if priceLevel < 1 {
			priceLevel = 1
		}

		if _, err := poiStmt.ExecContext(ctx, p.ID, p.Name, category, p.Address, p.Rating, priceLevel, lat, lon, i); err != nil {
			return fmt.Errorf("upsert pois: insert poi_id=%q: %w", p.ID, err)
		}

		if _, err := clearPromoStmt.ExecContext(ctx, p.ID); err != nil {
			return fmt.Errorf("upsert pois: clear promotions poi_id=%q: %w", p.ID, err)
		}
		for _, label := range p.Promotions {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			if _, err := promoStmt.ExecContext(ctx, p.ID, label); err != nil {
				return fmt.Errorf("upsert pois: insert promotion poi_id=%q: %w", p.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert pois: commit tx: %w", err)
	}

	return nil
}
