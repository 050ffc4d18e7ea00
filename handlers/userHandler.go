package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"interviewcoach/db"
	"interviewcoach/models"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	users db.UserRepository
}

func NewUserHandler(users db.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.CreateUser).Methods("POST")
	router.HandleFunc("/users/by-email", h.GetUserByEmail).Methods("GET")
	router.HandleFunc("/users/{id}", h.GetUser).Methods("GET")
	router.HandleFunc("/users/{id}", h.UpdateUser).Methods("PATCH")
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received create user request")

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode user JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if req.Email == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := h.users.CreateUser(r.Context(), &req)
	if err != nil {
		if errors.Is(err, db.ErrUserExists) {
			h.writeErrorResponse(w, http.StatusConflict, err.Error())
			return
		}
		log.Printf("[ERROR] Failed to create user: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	log.Printf("[INFO] Created user %s", user.UserID)
	h.writeJSONResponse(w, http.StatusCreated, user)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[ERROR] Failed to get user %s: %v", id, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, user)
}

func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[ERROR] Failed to get user by email: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode user update JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[ERROR] Failed to update user %s: %v", id, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, user)
}

func (h *UserHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *UserHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
