package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/obs"
)

// SQL-backed implementation of the POIRepository port (SQLite or Postgres).
type SQLPOIRepository struct{ DB *sql.DB }

func NewSQLPOIRepository(conn *sql.DB) *SQLPOIRepository {
	return &SQLPOIRepository{DB: conn}
}

// Return all points of interest in load order, promotions attached.
func (s *SQLPOIRepository) ListPOIs(ctx context.Context) (_ []*domain.PointOfInterest, err error) {
	defer obs.Time(ctx, "repo.ListPOIs")(&err)

	if s.DB == nil {
		return nil, errors.New("sql poi repository: DB is nil")
	}

	query := `
	SELECT
		p.poi_id,
		p.name,
		COALESCE(p.category_id, ''),
		COALESCE(c.name, ''),
		p.address,
		p.rating,
		p.price_level,
		p.lat,
		p.lon
	FROM pois p
	LEFT JOIN categories c ON c.category_id = p.category_id
	ORDER BY p.load_order, p.poi_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pois: query pois table: %w", err)
	}
	defer rows.Close()

	pois := make([]*domain.PointOfInterest, 0, 64)
	byID := make(map[string]*domain.PointOfInterest)
	for rows.Next() {
		var p domain.PointOfInterest
		var lat, lon sql.NullFloat64
		err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Category, &p.Address, &p.Rating, &p.PriceLevel, &lat, &lon)
		if err != nil {
			return nil, fmt.Errorf("list pois: scan row: %w", err)
		}
		if lat.Valid && lon.Valid {
			p.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
		}
		pois = append(pois, &p)
		byID[p.ID] = &p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pois: row iteration: %w", err)
	}

	promoRows, err := s.DB.QueryContext(ctx, `
	SELECT poi_id, label
	FROM poi_promotions
	ORDER BY poi_id, label;
	`)
	if err != nil {
		return nil, fmt.Errorf("list pois: query poi_promotions table: %w", err)
	}
	defer promoRows.Close()

	for promoRows.Next() {
		var id, label string
		if err := promoRows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("list pois: scan promotion row: %w", err)
		}
		if p, ok := byID[id]; ok {
			p.Promotions = append(p.Promotions, label)
			p.HasPromotion = true
		}
	}

	if err := promoRows.Err(); err != nil {
		return nil, fmt.Errorf("list pois: promotion row iteration: %w", err)
	}

	return pois, nil
}

// Return all categories ordered by name.
func (s *SQLPOIRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if s.DB == nil {
		return nil, errors.New("sql poi repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT category_id, name
	FROM categories
	ORDER BY name, category_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: query categories table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Category, 0, 16)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("list categories: scan row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: row iteration: %w", err)
	}

	return out, nil
}
