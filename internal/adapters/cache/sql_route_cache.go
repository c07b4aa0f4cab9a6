package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/db"
	"poi-map-service/internal/platform/obs"
	"strings"
	"time"
)

// SQL-backed route cache (SQLite or Postgres). Keys are expected to be
// consistent (see routing.CacheKey) by the caller.
type SQLRouteCache struct {
	DB      *sql.DB
	Dialect db.Dialect
	TTL     time.Duration
	now     func() time.Time
}

func NewSQLRouteCache(conn *sql.DB, dialect db.Dialect, ttl time.Duration) *SQLRouteCache {
	return &SQLRouteCache{DB: conn, Dialect: dialect, TTL: ttl, now: time.Now}
}

// Fetch a cached route that has not expired.
func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sql.Get")(&err)

	if s.DB == nil {
		return domain.Route{}, false, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return domain.Route{}, false, errors.New("get route cache: key must not be empty")
	}

	q := fmt.Sprintf(`
	SELECT payload
	FROM route_cache
	WHERE cache_key = %s
		AND expires_at > %s;
	`, s.Dialect.Placeholder(1), s.Dialect.Placeholder(2))

	var payload string
	err = s.DB.QueryRowContext(ctx, q, key, s.now().Unix()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Route{}, false, nil
	}
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	r, err := decodeRoute([]byte(payload))
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache: decode %q: %w", key, err)
	}
	return r, true, nil
}

// Store or replace the cached route for key.
func (s *SQLRouteCache) Put(ctx context.Context, key string, r domain.Route) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	payload, err := encodeRoute(r)
	if err != nil {
		return fmt.Errorf("insert route cache: encode: %w", err)
	}

	q := fmt.Sprintf(`
	INSERT INTO route_cache (cache_key, payload, expires_at)
	VALUES (%s, %s, %s)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = excluded.payload,
		expires_at = excluded.expires_at;
	`, s.Dialect.Placeholder(1), s.Dialect.Placeholder(2), s.Dialect.Placeholder(3))

	expires := s.now().Add(s.TTL).Unix()
	if _, err := s.DB.ExecContext(ctx, q, key, string(payload), expires); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}

// Remove expired entries and return how many were deleted.
func (s *SQLRouteCache) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("route cache: db is nil")
	}

	q := fmt.Sprintf(`DELETE FROM route_cache WHERE expires_at <= %s;`, s.Dialect.Placeholder(1))
	res, err := s.DB.ExecContext(ctx, q, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge route cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge route cache: rows affected: %w", err)
	}
	return n, nil
}
