package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/lessonlab/quizroom/internal/store"
)

func addRoutes(r chi.Router, logger *slog.Logger, st store.Store, baseURL, spaDir string) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("QuizRoom API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, st))

	// Shared rooms list: the polling surface every client lives on.
	r.Get("/api/rooms", handleListRooms(logger, st))
	r.Post("/api/rooms", handleReplaceRooms(logger, st, broker))
	r.Get("/api/rooms/{id}/qr.png", handleRoomQR(st, baseURL))

	// Whole-document access.
	r.Get("/api/data", handleGetData(logger, st))
	r.Post("/api/data", handleMergeData(logger, st, broker))
	r.Put("/api/data", handleReplaceData(logger, st, broker))

	// Session lives entirely in client-local storage; these are no-ops
	// kept for wire compatibility.
	r.Get("/api/session", handleSessionGet())
	r.Post("/api/session", handleSessionNoop())
	r.Delete("/api/session", handleSessionNoop())

	r.Post("/api/login", handleLogin())

	// Change hints for clients that want to poll immediately on writes.
	r.Get("/api/events", handleEvents(broker))

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
