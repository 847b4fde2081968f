package server

import "net/http"

// Session state lives entirely in each client's local storage; nothing
// about it is shared. These routes survive only so older clients that
// still call them get a clean answer.

func handleSessionGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, nil)
	}
}

func handleSessionNoop() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "session is stored client-side",
		})
	}
}
