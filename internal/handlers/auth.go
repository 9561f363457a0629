package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"

	"github.com/mwalcott/todo-api/internal/auth"
	"github.com/mwalcott/todo-api/internal/repo"
)

// pqUniqueViolation is the postgres error code for a unique constraint violation.
const pqUniqueViolation = "23505"

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Secret   []byte
}

// ==========================
// Signup (POST /users)
// ==========================
// Creates the user and returns it together with a token, so a fresh
// signup is immediately authenticated.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required,min=3"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, "username must be at least 3 characters", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.Create(r.Context(), input.Username)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			JSONError(w, fmt.Sprintf("username %q already exists", input.Username), http.StatusBadRequest)
			return
		}
		slog.Error("signup: create user failed", "username", input.Username, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	token, err := auth.Issue(h.Secret, user.ID, user.Username)
	if err != nil {
		slog.Error("signup: issue token failed", "user_id", user.ID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"token":    token,
	}, http.StatusCreated)
}

// ==========================
// Login (POST /auth/login)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required,min=3"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, "username must be at least 3 characters", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByUsername(r.Context(), input.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, fmt.Sprintf("user %q not found", input.Username), http.StatusNotFound)
			return
		}
		slog.Error("login: lookup failed", "username", input.Username, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	token, err := auth.Issue(h.Secret, user.ID, user.Username)
	if err != nil {
		slog.Error("login: issue token failed", "user_id", user.ID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, map[string]string{"token": token}, http.StatusOK)
}
