package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"interviewcoach/models"
	"interviewcoach/services/career"

	"github.com/gorilla/mux"
)

type CareerHandler struct {
	career *career.Service
}

func NewCareerHandler(careerService *career.Service) *CareerHandler {
	return &CareerHandler{career: careerService}
}

func (h *CareerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/career/chat", h.Chat).Methods("POST")
}

// Chat runs one turn of the career guidance agent. The full message list is
// sent back so the client can carry the conversation forward.
func (h *CareerHandler) Chat(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received career chat request")

	if h.career == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Career guidance agent is not configured")
		return
	}

	var req models.CareerChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode career chat JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if len(req.Messages) == 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "At least one message is required")
		return
	}

	response, err := h.career.ProcessMessage(req.Messages)
	if err != nil {
		log.Printf("[ERROR] Career agent failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to process chat message")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

func (h *CareerHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *CareerHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
