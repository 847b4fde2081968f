package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lessonlab/quizroom/internal/quiz"
	"github.com/lessonlab/quizroom/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRouter(t *testing.T) *chi.Mux {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	r := chi.NewRouter()
	addRoutes(r, testLogger(), st, "http://quiz.local", "")
	return r
}

func seedRoom(t *testing.T, r http.Handler) quiz.Room {
	t.Helper()
	room := quiz.NewRoom("Physics", "Velocity")
	room.AddTeam("Alpha", false)

	body, _ := json.Marshal([]quiz.Room{room})
	req := httptest.NewRequest(http.MethodPost, "/api/rooms", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("seeding rooms: status %d: %s", w.Code, w.Body.String())
	}
	return room
}

func TestListRoomsEmpty(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %q, want empty array", got)
	}
}

func TestReplaceAndListRooms(t *testing.T) {
	r := testRouter(t)
	room := seedRoom(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var rooms []quiz.Room
	if err := json.NewDecoder(w.Body).Decode(&rooms); err != nil {
		t.Fatalf("decoding rooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != room.ID {
		t.Fatalf("rooms = %+v, want the seeded room", rooms)
	}
	if rooms[0].Teams[0].Name != "Alpha" {
		t.Errorf("teams = %+v, want Alpha", rooms[0].Teams)
	}
}

func TestReplaceRoomsRejectsNonArray(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`{"id":"r1"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-array body, got %d", w.Code)
	}
}

// failStore satisfies store.Store but refuses writes, for the 500 path.
type failStore struct{}

func (failStore) Load(context.Context) (quiz.Document, error) { return quiz.DefaultDocument(), nil }
func (failStore) Save(context.Context, quiz.Document) error   { return errors.New("disk full") }
func (failStore) Close() error                                { return nil }

func TestReplaceRoomsStoreFailure(t *testing.T) {
	r := chi.NewRouter()
	addRoutes(r, testLogger(), failStore{}, "http://quiz.local", "")

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`[]`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on store failure, got %d", w.Code)
	}
}

func TestRoomQR(t *testing.T) {
	r := testRouter(t)
	room := seedRoom(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+room.ID+"/qr.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("expected PNG bytes")
	}
}

func TestRoomQRNotFound(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/nope/qr.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSessionRoutesAreNoops(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("GET session = %d %q, want 200 null", w.Code, w.Body.String())
	}

	for _, method := range []string{http.MethodPost, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/session", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s session = %d, want 200", method, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"email":"teacher@school.com","password":"teacher123"}`, http.StatusOK},
		{"wrong password", `{"email":"teacher@school.com","password":"nope"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"student@school.com","password":"teacher123"}`, http.StatusUnauthorized},
		{"missing fields", `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.name, w.Code, tt.status)
		}
	}
}
