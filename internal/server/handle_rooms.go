package server

import (
	"log/slog"
	"net/http"

	"github.com/lessonlab/quizroom/internal/quiz"
	"github.com/lessonlab/quizroom/internal/store"
)

// handleListRooms returns the shared rooms array. Reads never fail with
// an error status: any store problem degrades to an empty array so
// polling clients fall back to their local cache instead of erroring.
func handleListRooms(logger *slog.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := st.Load(r.Context())
		if err != nil {
			logger.Error("loading document for rooms list", "error", err)
			writeJSON(w, http.StatusOK, []quiz.Room{})
			return
		}
		if doc.Rooms == nil {
			doc.Rooms = []quiz.Room{}
		}
		writeJSON(w, http.StatusOK, doc.Rooms)
	}
}

// handleReplaceRooms replaces the stored rooms array wholesale. The
// body must be a JSON array of rooms; anything else is a 400. This is
// a last-writer-wins write with no concurrency control: a client
// pushing a stale list silently clobbers concurrent writes.
func handleReplaceRooms(logger *slog.Logger, st store.Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rooms []quiz.Room
		if err := readJSON(r, &rooms); err != nil {
			writeError(w, http.StatusBadRequest, "request body must be an array of rooms")
			return
		}

		doc, err := st.Load(r.Context())
		if err != nil {
			logger.Error("loading document before rooms replace", "error", err)
			doc = quiz.DefaultDocument()
		}
		doc.Rooms = rooms

		if err := st.Save(r.Context(), doc); err != nil {
			logger.Error("saving rooms", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save rooms")
			return
		}

		broker.Publish(ChangeEvent{Type: "rooms_updated", Rooms: len(rooms), LastUpdated: doc.LastUpdated})
		writeSuccess(w)
	}
}
