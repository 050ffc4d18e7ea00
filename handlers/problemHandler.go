package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"interviewcoach/models"
	"interviewcoach/services/catalog"
	"interviewcoach/services/problemindex"

	"github.com/gorilla/mux"
)

type RecommendationRequest struct {
	UserID           string                   `json:"user_id"`
	History          []models.AttemptRecord   `json:"history,omitempty"`
	TargetDifficulty models.ProblemDifficulty `json:"target_difficulty,omitempty"`
}

type ProblemHandler struct {
	catalog *catalog.Service
	index   *problemindex.Service
}

// NewProblemHandler wires the catalog endpoints. index may be nil when
// similarity search is not configured.
func NewProblemHandler(problemCatalog *catalog.Service, index *problemindex.Service) *ProblemHandler {
	return &ProblemHandler{catalog: problemCatalog, index: index}
}

func (h *ProblemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/problems", h.ListProblems).Methods("GET")
	router.HandleFunc("/problems", h.AddProblem).Methods("POST")
	router.HandleFunc("/problems/search", h.SearchProblems).Methods("POST")
	router.HandleFunc("/problems/recommendations", h.Recommend).Methods("POST")
	router.HandleFunc("/problems/stats", h.Statistics).Methods("GET")
	router.HandleFunc("/problems/{id}", h.GetProblem).Methods("GET")
	router.HandleFunc("/problems/{id}", h.UpdateProblem).Methods("PATCH")
	router.HandleFunc("/problems/{id}/similar", h.SimilarProblems).Methods("GET")
}

func (h *ProblemHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	if query := r.URL.Query().Get("q"); query != "" {
		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				limit = parsed
			}
		}
		h.writeJSONResponse(w, http.StatusOK, h.catalog.SearchText(query, limit))
		return
	}

	h.writeJSONResponse(w, http.StatusOK, h.catalog.All())
}

func (h *ProblemHandler) AddProblem(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received add problem request")

	var problem models.Problem
	if err := json.NewDecoder(r.Body).Decode(&problem); err != nil {
		log.Printf("[ERROR] Failed to decode problem JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.catalog.Add(&problem); err != nil {
		log.Printf("[ERROR] Failed to add problem: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, &problem)
}

func (h *ProblemHandler) SearchProblems(w http.ResponseWriter, r *http.Request) {
	var filter models.ProblemFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		log.Printf("[ERROR] Failed to decode problem filter JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, h.catalog.Search(filter))
}

func (h *ProblemHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode recommendation request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	recommendations := h.catalog.Recommend(req.UserID, req.History, req.TargetDifficulty)
	h.writeJSONResponse(w, http.StatusOK, recommendations)
}

func (h *ProblemHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.catalog.Statistics())
}

func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	problem, err := h.catalog.Get(id)
	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, problem)
}

func (h *ProblemHandler) UpdateProblem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Printf("[INFO] Received update problem request for %s", id)

	var req models.UpdateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode problem update JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	problem, err := h.catalog.Update(id, &req)
	if err != nil {
		if errors.Is(err, catalog.ErrProblemNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[ERROR] Failed to update problem %s: %v", id, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, problem)
}

func (h *ProblemHandler) SimilarProblems(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if h.index == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Problem similarity index is not configured")
		return
	}

	problem, err := h.catalog.Get(id)
	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	ids, err := h.index.QuerySimilar(problem, 5)
	if err != nil {
		log.Printf("[ERROR] Similar problem query failed for %s: %v", id, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	similar := make([]*models.Problem, 0, len(ids))
	for _, similarID := range ids {
		if p, getErr := h.catalog.Get(similarID); getErr == nil {
			similar = append(similar, p)
		}
	}

	h.writeJSONResponse(w, http.StatusOK, similar)
}

func (h *ProblemHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *ProblemHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
