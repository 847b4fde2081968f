package server

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// The presenter login is a hardcoded credential check, not a security
// boundary: the session flag lives in the client's local storage and
// nothing server-side is gated on it.
const teacherEmail = "teacher@school.com"

var teacherPasswordHash = func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("teacher123"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return hash
}()

// LoginRequest is the request body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		if req.Email != teacherEmail ||
			bcrypt.CompareHashAndPassword(teacherPasswordHash, []byte(req.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		writeSuccess(w)
	}
}
