package todos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/todo-api/internal/logutil"
	"github.com/ayush/todo-api/internal/middleware"
	"github.com/ayush/todo-api/internal/models"
	"github.com/ayush/todo-api/internal/store"
)

// TodoStore defines the interface for todo persistence. Every operation is
// scoped to the owning user.
type TodoStore interface {
	CreateTodo(ctx context.Context, ownerID int64, text string) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error
}

// Handler holds todo-related HTTP handlers. All of them run behind the auth
// gate and take the caller's identity from the request context.
type Handler struct {
	todos TodoStore
}

func NewHandler(todos TodoStore) *Handler {
	return &Handler{todos: todos}
}

// List returns the caller's todos. An empty list serializes as [] rather
// than null.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
		return
	}

	list, err := h.todos.ListByOwner(r.Context(), user.ID)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("list todos")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Todo{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Create adds a todo owned by the caller, initialized as not completed.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
		return
	}

	var req models.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	todo, err := h.todos.CreateTodo(r.Context(), user.ID, req.Task)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("create todo")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.CreateTodoResponse{ID: todo.ID, Task: todo.Text})
}

// Delete removes one of the caller's todos. A todo owned by someone else
// gets the same 404 as one that never existed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, `{"error":"invalid id"}`, http.StatusBadRequest)
		return
	}

	if err := h.todos.DeleteByIDAndOwner(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"todo not found"}`, http.StatusNotFound)
			return
		}
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("delete todo")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
