package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"concurseiro-challenge-service/internal/app"
	"concurseiro-challenge-service/internal/domain"
)

// Handler exposes the daily-challenge use cases over REST. Requests carry a
// shared-secret apiKey query parameter; there is no per-user auth here, the
// student apps call through their own backend.
type Handler struct {
	service *app.ChallengeService
	apiKey  string
}

func NewHandler(service *app.ChallengeService, apiKey string) *Handler {
	return &Handler{service: service, apiKey: apiKey}
}

// Register wires the handler's routes into the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/daily-challenge", h.handleDailyChallenge)
	mux.HandleFunc("/api/daily-challenge/attempt", h.handleAttempt)
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleDailyChallenge returns today's challenge items for a student,
// generating them on the first request of the day.
func (h *Handler) handleDailyChallenge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	studentID, challengeType, ok := h.authorize(w, r)
	if !ok {
		return
	}

	challenge, err := h.service.GetDailyChallenge(r.Context(), studentID, challengeType)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge.Items)
}

type attemptRequest struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// handleAttempt appends an attempt to today's challenge.
func (h *Handler) handleAttempt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	studentID, challengeType, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var body attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid attempt payload")
		return
	}

	challenge, err := h.service.SubmitAttempt(r.Context(), studentID, challengeType, domain.QuestionAttempt{
		QuestionID:     body.QuestionID,
		SelectedAnswer: body.SelectedAnswer,
		IsCorrect:      body.IsCorrect,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

// authorize validates the shared key and the required query parameters.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (string, domain.ChallengeType, bool) {
	if !keyMatches(r.URL.Query().Get("apiKey"), h.apiKey) {
		writeError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
		return "", "", false
	}
	studentID := r.URL.Query().Get("studentId")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "missing studentId")
		return "", "", false
	}
	challengeType := domain.ChallengeType(r.URL.Query().Get("challengeType"))
	if !challengeType.Valid() {
		writeError(w, http.StatusBadRequest, domain.ErrUnknownChallengeType.Error())
		return "", "", false
	}
	return studentID, challengeType, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrStudentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAINotConfigured):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownChallengeType), errors.Is(err, domain.ErrChallengeNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("daily challenge request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// keyMatches compares the shared secret in constant time. An empty configured
// key rejects everything rather than waving requests through.
func keyMatches(provided, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
