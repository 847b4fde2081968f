package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"github.com/lessonlab/quizroom/internal/store"
)

const qrSize = 300

// handleRoomQR renders a PNG QR code for a room's join URL, so students
// can scan into the lobby with the room pre-selected.
func handleRoomQR(st store.Store, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		doc, err := st.Load(r.Context())
		if err != nil || doc.FindRoom(id) == nil {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}

		joinURL := fmt.Sprintf("%s/?room=%s", baseURL, url.QueryEscape(id))
		png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate QR code")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		w.Write(png)
	}
}
