package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/lessonlab/quizroom/internal/quiz"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the generic mutation acknowledgement.
type SuccessResponse struct {
	Success bool `json:"success"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "QuizRoom API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Polling API over the shared classroom quiz document.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports whether the document store is reachable.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/rooms
	getRooms, _ := r.NewOperationContext(http.MethodGet, "/api/rooms")
	getRooms.SetSummary("List rooms")
	getRooms.SetDescription("Returns the shared rooms array. Always 200; store failures degrade to an empty array.")
	getRooms.AddRespStructure([]quiz.Room{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getRooms)

	// POST /api/rooms
	postRooms, _ := r.NewOperationContext(http.MethodPost, "/api/rooms")
	postRooms.SetSummary("Replace rooms")
	postRooms.SetDescription("Replaces the stored rooms array wholesale. Last writer wins.")
	postRooms.AddReqStructure([]quiz.Room{})
	postRooms.AddRespStructure(SuccessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postRooms.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postRooms.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(postRooms)

	// GET /api/rooms/{id}/qr.png
	getQR, _ := r.NewOperationContext(http.MethodGet, "/api/rooms/{id}/qr.png")
	getQR.SetSummary("Room join QR code")
	getQR.SetDescription("PNG QR code encoding the room's join URL.")
	getQR.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("image/png"))
	getQR.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getQR)

	// GET /api/data
	getData, _ := r.NewOperationContext(http.MethodGet, "/api/data")
	getData.SetSummary("Get document")
	getData.SetDescription("Returns the whole persisted document.")
	getData.AddRespStructure(quiz.Document{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getData)

	// POST /api/data
	postData, _ := r.NewOperationContext(http.MethodPost, "/api/data")
	postData.SetSummary("Merge document")
	postData.SetDescription("Merges the provided fields into the stored document.")
	postData.AddReqStructure(DataUpdate{})
	postData.AddRespStructure(SuccessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postData.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(postData)

	// PUT /api/data
	putData, _ := r.NewOperationContext(http.MethodPut, "/api/data")
	putData.SetSummary("Replace document")
	putData.SetDescription("Replaces the entire persisted document.")
	putData.AddReqStructure(quiz.Document{})
	putData.AddRespStructure(SuccessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putData.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(putData)

	// POST /api/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/login")
	postLogin.SetSummary("Presenter login")
	postLogin.SetDescription("Checks the hardcoded presenter credential. The session flag is kept client-side.")
	postLogin.AddReqStructure(LoginRequest{})
	postLogin.AddRespStructure(SuccessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("Document change stream")
	getEvents.SetDescription("Server-Sent Events feed announcing document writes; a hint to poll immediately.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(spec)
	}
}
