package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"interviewcoach/db"
	"interviewcoach/services/catalog"
	"interviewcoach/services/session"

	"github.com/gorilla/mux"
)

type CreateSessionRequest struct {
	UserID        string `json:"user_id,omitempty"`
	SessionType   string `json:"session_type,omitempty"`
	DurationLimit int    `json:"duration_limit,omitempty"`
}

type StartProblemRequest struct {
	ProblemID string `json:"problem_id"`
}

type UserMessageRequest struct {
	Message string `json:"message"`
}

type CompleteProblemRequest struct {
	SolutionCorrect  bool     `json:"solution_correct"`
	CodeQualityScore *float64 `json:"code_quality_score,omitempty"`
}

type InterviewHandler struct {
	sessions *session.Service
	catalog  *catalog.Service
	users    db.UserRepository
	history  db.HistoryRepository
}

// NewInterviewHandler wires the session endpoints. users and history may be
// nil; the dependent features are then skipped or unavailable.
func NewInterviewHandler(sessions *session.Service, problemCatalog *catalog.Service, users db.UserRepository, history db.HistoryRepository) *InterviewHandler {
	return &InterviewHandler{
		sessions: sessions,
		catalog:  problemCatalog,
		users:    users,
		history:  history,
	}
}

func (h *InterviewHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/interviews/create", h.CreateSession).Methods("POST")
	router.HandleFunc("/interviews/active", h.ActiveSessions).Methods("GET")
	router.HandleFunc("/interviews/history", h.SessionHistory).Methods("GET")
	router.HandleFunc("/interviews/{id}", h.GetSession).Methods("GET")
	router.HandleFunc("/interviews/{id}/problems/start", h.StartProblem).Methods("POST")
	router.HandleFunc("/interviews/{id}/message", h.ProcessMessage).Methods("POST")
	router.HandleFunc("/interviews/{id}/problems/complete", h.CompleteProblem).Methods("POST")
	router.HandleFunc("/interviews/{id}/analytics", h.GetAnalytics).Methods("GET")
	router.HandleFunc("/interviews/{id}/end", h.EndSession).Methods("POST")
}

func (h *InterviewHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received create session request")

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode create session request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	sess, err := h.sessions.CreateSession(req.UserID, req.SessionType, req.DurationLimit)
	if err != nil {
		log.Printf("[ERROR] Session creation failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, sess)
}

func (h *InterviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	sess, err := h.sessions.GetSession(sessionID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, sess)
}

func (h *InterviewHandler) StartProblem(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	log.Printf("[INFO] Received start problem request for session %s", sessionID)

	var req StartProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode start problem request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if req.ProblemID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "problem_id is required")
		return
	}

	problem, err := h.catalog.Get(req.ProblemID)
	if err != nil {
		log.Printf("[ERROR] Problem lookup failed: %v", err)
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	result, err := h.sessions.StartProblem(sessionID, problem)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *InterviewHandler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req UserMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode message request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if req.Message == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.sessions.ProcessUserMessage(sessionID, req.Message)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *InterviewHandler) CompleteProblem(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	log.Printf("[INFO] Received complete problem request for session %s", sessionID)

	var req CompleteProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode complete problem request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	metric, err := h.sessions.CompleteProblem(sessionID, req.SolutionCorrect, req.CodeQualityScore)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, metric)
}

func (h *InterviewHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	analytics, err := h.sessions.GetSessionAnalytics(sessionID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, analytics)
}

func (h *InterviewHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	log.Printf("[INFO] Received end session request for session %s", sessionID)

	sess, err := h.sessions.GetSession(sessionID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	userID := sess.UserID

	analytics, err := h.sessions.CloseSession(sessionID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	if userID != "" && h.users != nil {
		if err := h.users.IncrementInterviewCount(r.Context(), userID); err != nil {
			log.Printf("[ERROR] Failed to increment interview count for user %s: %v", userID, err)
		}
	}

	h.writeJSONResponse(w, http.StatusOK, analytics)
}

func (h *InterviewHandler) ActiveSessions(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.sessions.ActiveSessions())
}

func (h *InterviewHandler) SessionHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	if h.history == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Session history is not configured")
		return
	}

	records, err := h.history.GetSessionHistory(userID, 20)
	if err != nil {
		log.Printf("[ERROR] Failed to load session history for user %s: %v", userID, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, records)
}

func (h *InterviewHandler) writeSessionError(w http.ResponseWriter, err error) {
	log.Printf("[ERROR] Session operation failed: %v", err)

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrSessionExpired):
		h.writeErrorResponse(w, http.StatusGone, err.Error())
	case errors.Is(err, session.ErrNoActiveProblem), errors.Is(err, session.ErrNoActiveConversation):
		h.writeErrorResponse(w, http.StatusConflict, err.Error())
	default:
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *InterviewHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *InterviewHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
