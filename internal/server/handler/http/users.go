// Package http provides the HTTP handlers for the onboarding REST API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nstepanova/onboard/internal/models"
	"github.com/nstepanova/onboard/internal/service"
)

// UserService defines the interface for user operations required by the
// HTTP handlers.
type UserService interface {
	// Create finds or creates a user by email. The bool is true when a
	// new record was created.
	Create(ctx context.Context, email, password string) (*models.User, bool, error)
	// Update applies a merge-patch to the user with the given id.
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	// List returns the id/email projection of every user.
	List(ctx context.Context) ([]models.UserSummary, error)
}

// UserHandler handles HTTP requests for user creation, update and listing.
type UserHandler struct {
	// UserService performs the underlying user operations.
	UserService UserService
	// Logger records store-layer failures; their detail is never returned
	// to the caller.
	Logger *zap.Logger
}

// CreateUserRequest represents the JSON payload for user creation.
// Some clients send a step value on step-1 submit; creation always
// starts at step 1, so it is accepted and ignored.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Step     int    `json:"step"`
}

// UpdateUserRequest represents the merge-patch payload for PUT
// /api/users/{id}. Absent fields are left untouched; unknown fields are
// ignored.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	AboutMe   *string `json:"aboutMe"`
	Birthdate *string `json:"birthdate"`
	Street    *string `json:"street"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Zip       *string `json:"zip"`
	Step      *int    `json:"step"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service-layer errors to status codes: validation
// failures are 400, missing records 404, everything else is a generic 500
// with the detail logged only.
func (h *UserHandler) writeServiceError(w http.ResponseWriter, err error) {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSONError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, models.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "user not found")
	default:
		h.Logger.Error("store error", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

// Create handles POST /api/users. A new user answers 201; an existing
// user still on step 1 answers 200 with the same record (idempotent
// find-or-create); an existing user already past step 1 answers 409.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, created, err := h.UserService.Create(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if !created && user.Step > 1 {
		writeJSONError(w, http.StatusConflict, "user already exists")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, user)
}

// parseBirthdate accepts the wire formats the clients send: a plain date
// or a full RFC 3339 timestamp.
func parseBirthdate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Update handles PUT /api/users/{id}. Only fields present in the body
// are modified.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request")
		return
	}

	patch := models.UserPatch{
		Email:    req.Email,
		Password: req.Password,
		AboutMe:  req.AboutMe,
		Street:   req.Street,
		City:     req.City,
		State:    req.State,
		Zip:      req.Zip,
		Step:     req.Step,
	}
	if req.Birthdate != nil {
		birthdate, err := parseBirthdate(*req.Birthdate)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid birthdate")
			return
		}
		patch.Birthdate = &birthdate
	}

	user, err := h.UserService.Update(r.Context(), id, patch)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// List handles GET /api/users. The response carries only id and email.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		h.Logger.Error("store error", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	writeJSON(w, http.StatusOK, users)
}
