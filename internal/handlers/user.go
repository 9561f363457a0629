package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mwalcott/todo-api/internal/models"
	"github.com/mwalcott/todo-api/internal/repo"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo *repo.UserRepo
}

// ==========================
// List Users
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("list users failed", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	JSON(w, users, http.StatusOK)
}
