package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mwalcott/todo-api/internal/middleware"
	"github.com/mwalcott/todo-api/internal/models"
	"github.com/mwalcott/todo-api/internal/repo"
)

// TodoHandler serves the todo CRUD endpoints. All of them sit behind
// the JWT middleware, so the caller's identity is in the context.
type TodoHandler struct {
	Repo *repo.TodoRepo
}

// ==========================
// List Todos (owned by caller)
// ==========================
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	todos, err := h.Repo.ListByOwner(r.Context(), caller.ID)
	if err != nil {
		slog.Error("list todos failed", "owner_id", caller.ID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}

	JSON(w, todos, http.StatusOK)
}

// ==========================
// Get Todo By ID
// ==========================
// Looks up by id only. Ownership is deliberately not checked here (or
// on update/delete); only the list endpoint filters by owner.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		JSONError(w, "invalid todo id", http.StatusBadRequest)
		return
	}

	todo, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, fmt.Sprintf("todo %q not found", idStr), http.StatusNotFound)
			return
		}
		slog.Error("get todo failed", "id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, todo, http.StatusOK)
}

// ==========================
// Create Todo
// ==========================
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Title string `json:"title" validate:"required,min=1"`
		Body  string `json:"body"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, "title is required", http.StatusBadRequest)
		return
	}

	todo, err := h.Repo.Create(r.Context(), input.Title, input.Body, caller.ID)
	if err != nil {
		slog.Error("create todo failed", "owner_id", caller.ID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, todo, http.StatusCreated)
}

// ==========================
// Update Todo (partial, id in body)
// ==========================
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID     int     `json:"id"`
		Title  *string `json:"title"`
		Body   *string `json:"body"`
		Status *string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.ID <= 0 {
		fields["id"] = "must be a positive integer"
	}
	if input.Title != nil && *input.Title == "" {
		fields["title"] = "must not be empty"
	}
	if input.Status != nil && !models.ValidStatus(*input.Status) {
		fields["status"] = "must be inprogress or completed"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	todo, err := h.Repo.Update(r.Context(), input.ID, input.Title, input.Body, input.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, fmt.Sprintf("todo %q not found", strconv.Itoa(input.ID)), http.StatusNotFound)
			return
		}
		slog.Error("update todo failed", "id", input.ID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, todo, http.StatusOK)
}

// ==========================
// Delete Todo (id in body)
// ==========================
// Returns the deleted row, matching the update endpoint's shape.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID int `json:"id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.ID <= 0 {
		JSONError(w, "id must be a positive integer", http.StatusBadRequest)
		return
	}

	todo, err := h.Repo.Delete(r.Context(), input.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, fmt.Sprintf("todo %q not found", strconv.Itoa(input.ID)), http.StatusNotFound)
			return
		}
		slog.Error("delete todo failed", "id", input.ID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, todo, http.StatusOK)
}
