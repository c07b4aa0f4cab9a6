package services

import (
	"context"
	"errors"
	"log/slog"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/metrics"
	"sync"
	"time"
)

var ErrUnknownSession = errors.New("unknown session")

// In-memory registry of map sessions. Sessions idle for longer than the TTL
// are evicted.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	catalog  []*domain.PointOfInterest
	view     View
	ttl      time.Duration
	now      func() time.Time
}

// The catalog is shared read-only; every session gets its own copy.
func NewSessionStore(catalog []*domain.PointOfInterest, view View, ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		catalog:  catalog,
		view:     view,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (st *SessionStore) Create() *Session {
	s := newSession(st.catalog, st.view, st.now)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	return s
}

func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	if st.expired(s) {
		delete(st.sessions, id)
		metrics.ActiveSessions.Set(float64(len(st.sessions)))
		return nil, ErrUnknownSession
	}
	return s, nil
}

// Delete a session. It reports whether the session existed.
func (st *SessionStore) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	_, ok := st.sessions[id]
	delete(st.sessions, id)
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	return ok
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Remove idle sessions and return how many were removed.
func (st *SessionStore) Evict() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, id)
			n++
		}
	}
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	return n
}

// Evict idle sessions every interval until ctx is done.
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Evict(); n > 0 {
				slog.Info("evicted idle sessions", "count", n, "remaining", st.Len())
			}
		}
	}
}

func (st *SessionStore) expired(s *Session) bool {
	return st.ttl > 0 && st.now().Sub(s.LastSeen()) > st.ttl
}
