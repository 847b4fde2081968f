package server

import (
	"log/slog"
	"net/http"

	"github.com/lessonlab/quizroom/internal/quiz"
	"github.com/lessonlab/quizroom/internal/store"
)

// DataUpdate is the merge body for POST /api/data. Only fields that are
// present overwrite; the document has exactly one mergeable field.
type DataUpdate struct {
	Rooms *[]quiz.Room `json:"rooms"`
}

func handleGetData(logger *slog.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := st.Load(r.Context())
		if err != nil {
			logger.Error("loading document", "error", err)
			doc = quiz.DefaultDocument()
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func handleMergeData(logger *slog.Logger, st store.Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update DataUpdate
		if err := readJSON(r, &update); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		doc, err := st.Load(r.Context())
		if err != nil {
			logger.Error("loading document before merge", "error", err)
			doc = quiz.DefaultDocument()
		}
		if update.Rooms != nil {
			doc.Rooms = *update.Rooms
		}

		if err := st.Save(r.Context(), doc); err != nil {
			logger.Error("saving merged document", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save data")
			return
		}

		broker.Publish(ChangeEvent{Type: "data_updated", Rooms: len(doc.Rooms), LastUpdated: doc.LastUpdated})
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": doc})
	}
}

func handleReplaceData(logger *slog.Logger, st store.Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc quiz.Document
		if err := readJSON(r, &doc); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := st.Save(r.Context(), doc); err != nil {
			logger.Error("replacing document", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save data")
			return
		}

		broker.Publish(ChangeEvent{Type: "data_updated", Rooms: len(doc.Rooms), LastUpdated: doc.LastUpdated})
		writeSuccess(w)
	}
}
