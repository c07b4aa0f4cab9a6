package services

import (
	"errors"
	"testing"
	"time"
)

func TestSessionStoreLifecycle(t *testing.T) {
	st := NewSessionStore(catalogFixture(), View{Center: center, Zoom: 13}, time.Minute)

	a := st.Create()
	b := st.Create()
	if a.ID == b.ID {
		t.Fatal("session ids must be unique")
	}
	if st.Len() != 2 {
		t.Fatalf("len = %d, want 2", st.Len())
	}

	got, err := st.Get(a.ID)
	if err != nil || got != a {
		t.Fatalf("Get = %v, %v", got, err)
	}

	if !st.Delete(a.ID) {
		t.Fatal("delete should report an existing session")
	}
	if st.Delete(a.ID) {
		t.Fatal("second delete should report false")
	}
	if _, err := st.Get(a.ID); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("err = %v, want ErrUnknownSession", err)
	}
}

func TestSessionStoreEvictsIdleSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	st := NewSessionStore(catalogFixture(), View{}, 30*time.Minute)
	st.now = func() time.Time { return now }

	idle := st.Create()
	now = now.Add(20 * time.Minute)
	active := st.Create()

	now = now.Add(15 * time.Minute)
	if n := st.Evict(); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
	if _, err := st.Get(idle.ID); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("idle session err = %v", err)
	}
	if _, err := st.Get(active.ID); err != nil {
		t.Fatalf("active session err = %v", err)
	}

	// Any operation keeps a session alive.
	now = now.Add(25 * time.Minute)
	active.ClearOrigin()
	now = now.Add(10 * time.Minute)
	if _, err := st.Get(active.ID); err != nil {
		t.Fatalf("touched session err = %v", err)
	}
}
