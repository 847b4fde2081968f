package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lessonlab/quizroom/internal/quiz"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := LoadSession(t.TempDir())
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return s
}

func TestPollAdoptsFetchedRooms(t *testing.T) {
	stub, c := newTestAPI(t)
	room := quiz.NewRoom("Physics", "Velocity")
	stub.setRooms([]quiz.Room{room})

	session := newTestSession(t)
	var updated [][]quiz.Room
	p := NewPoller(c, session, time.Second, testLogger(), func(rooms []quiz.Room) {
		updated = append(updated, rooms)
	})

	p.Poll(context.Background())

	rooms := p.Rooms()
	if len(rooms) != 1 || rooms[0].ID != room.ID {
		t.Fatalf("snapshot = %+v, want fetched room", rooms)
	}
	if len(session.CachedRooms) != 1 {
		t.Errorf("session cache = %+v, want mirror of snapshot", session.CachedRooms)
	}
	if session.CachedAt.IsZero() {
		t.Error("expected CachedAt to be set")
	}
	if len(updated) != 1 {
		t.Errorf("onUpdate ran %d times, want 1", len(updated))
	}
}

func TestPollKeepsSnapshotOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	session := newTestSession(t)
	session.CacheRooms([]quiz.Room{quiz.NewRoom("Physics", "Velocity")})

	p := NewPoller(New(srv.URL), session, time.Second, testLogger(), nil)
	p.Poll(context.Background())

	if rooms := p.Rooms(); len(rooms) != 1 {
		t.Errorf("snapshot = %+v, want cached room kept", rooms)
	}
}

func TestPollDiscardsEmptyListOverCache(t *testing.T) {
	stub, c := newTestAPI(t)
	room := quiz.NewRoom("Physics", "Velocity")
	stub.setRooms([]quiz.Room{room})

	session := newTestSession(t)
	p := NewPoller(c, session, time.Second, testLogger(), nil)
	p.Poll(context.Background())

	// Server-side wipe: the fetch succeeds but the backing store has
	// been replaced with nothing. The cache wins.
	stub.setRooms(nil)
	p.Poll(context.Background())

	if rooms := p.Rooms(); len(rooms) != 1 || rooms[0].ID != room.ID {
		t.Errorf("snapshot = %+v, want cached room kept over empty fetch", rooms)
	}
}

func TestPollEmptyOverEmptyIsFine(t *testing.T) {
	_, c := newTestAPI(t)

	session := newTestSession(t)
	p := NewPoller(c, session, time.Second, testLogger(), nil)
	p.Poll(context.Background())

	if rooms := p.Rooms(); len(rooms) != 0 {
		t.Errorf("snapshot = %+v, want empty", rooms)
	}
}

func TestNewPollerSeedsFromSessionCache(t *testing.T) {
	_, c := newTestAPI(t)

	session := newTestSession(t)
	session.CacheRooms([]quiz.Room{quiz.NewRoom("Physics", "Velocity")})

	p := NewPoller(c, session, time.Second, testLogger(), nil)
	if rooms := p.Rooms(); len(rooms) != 1 {
		t.Errorf("initial snapshot = %+v, want session cache", rooms)
	}
}
