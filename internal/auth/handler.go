package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayush/todo-api/internal/logutil"
	"github.com/ayush/todo-api/internal/models"
	"github.com/ayush/todo-api/internal/store"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	hasher *Hasher
	tokens *Issuer
}

func NewHandler(users UserStore, hasher *Hasher, tokens *Issuer) *Handler {
	return &Handler{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new user. Duplicate usernames are rejected by the
// database's unique constraint, not a pre-check, so concurrent registrations
// of the same name race safely to exactly one winner.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, `{"error":"username and password are required"}`, http.StatusBadRequest)
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	if _, err := h.users.CreateUser(r.Context(), req.Username, hashed); err != nil {
		if errors.Is(err, store.ErrConflict) {
			http.Error(w, `{"error":"username already taken"}`, http.StatusBadRequest)
			return
		}
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("create user")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.RegisterResponse{Message: "user registered"})
}

// Login verifies credentials and returns a signed bearer token. A wrong
// password and an unknown username produce the same response, so the
// endpoint never reveals whether a username exists.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
			return
		}
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("fetch user")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	if err := h.hasher.Verify(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
			return
		}
		// Malformed stored hash is an internal fault, not bad credentials.
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Str("username", req.Username).Msg("verify password")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("issue token")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.LoginResponse{Token: token, Username: user.Username})
}
