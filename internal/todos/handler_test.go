package todos

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"

	"github.com/ayush/todo-api/internal/auth"
	"github.com/ayush/todo-api/internal/middleware"
	"github.com/ayush/todo-api/internal/models"
	"github.com/ayush/todo-api/internal/store"
)

// fakeTodoStore is an in-memory TodoStore with the same owner-scoping
// semantics as the real table.
type fakeTodoStore struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]models.Todo
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{todos: map[int64]models.Todo{}}
}

func (f *fakeTodoStore) CreateTodo(ctx context.Context, ownerID int64, text string) (*models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := models.Todo{ID: f.nextID, Text: text, Completed: false, OwnerID: ownerID}
	f.todos[t.ID] = t
	return &t, nil
}

func (f *fakeTodoStore) ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []models.Todo
	for id := int64(1); id <= f.nextID; id++ {
		if t, ok := f.todos[id]; ok && t.OwnerID == ownerID {
			list = append(list, t)
		}
	}
	return list, nil
}

func (f *fakeTodoStore) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.todos[id]
	if !ok || t.OwnerID != ownerID {
		return fmt.Errorf("todo %d: %w", id, store.ErrNotFound)
	}
	delete(f.todos, id)
	return nil
}

// newTestRouter wires the handler behind the auth gate the same way the
// server does.
func newTestRouter(todos TodoStore, tokens *auth.Issuer) http.Handler {
	h := NewHandler(todos)
	r := chi.NewRouter()
	r.Route("/todos", func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func issueFor(t *testing.T, tokens *auth.Issuer, id int64, username string) string {
	t.Helper()
	token, err := tokens.Issue(id, username)
	require.NoError(t, err)
	return token
}

func TestTodosRequireToken(t *testing.T) {
	tokens := auth.NewIssuer("test-secret")
	router := newTestRouter(newFakeTodoStore(), tokens)

	apitest.Handler(router).
		Get("/todos").
		Expect(t).
		Status(http.StatusForbidden).
		End()

	apitest.Handler(router).
		Get("/todos").
		Header("Authorization", "garbage").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestCreateAndListTodos(t *testing.T) {
	tokens := auth.NewIssuer("test-secret")
	router := newTestRouter(newFakeTodoStore(), tokens)
	alice := issueFor(t, tokens, 1, "alice")

	apitest.Handler(router).
		Get("/todos").
		Header("Authorization", alice).
		Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()

	apitest.Handler(router).
		Post("/todos").
		Header("Authorization", alice).
		JSON(`{"task":"buy milk"}`).
		Expect(t).
		Status(http.StatusCreated).
		Body(`{"id":1,"task":"buy milk"}`).
		End()

	apitest.Handler(router).
		Get("/todos").
		Header("Authorization", alice).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 1)).
		Assert(jsonpath.Equal(`$[0].text`, "buy milk")).
		Assert(jsonpath.Equal(`$[0].completed`, false)).
		End()
}

func TestTodosAreOwnerScoped(t *testing.T) {
	tokens := auth.NewIssuer("test-secret")
	todos := newFakeTodoStore()
	router := newTestRouter(todos, tokens)
	alice := issueFor(t, tokens, 1, "alice")
	bob := issueFor(t, tokens, 2, "bob")

	apitest.Handler(router).
		Post("/todos").
		Header("Authorization", alice).
		JSON(`{"task":"alice's secret"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	// Bob sees none of Alice's todos.
	apitest.Handler(router).
		Get("/todos").
		Header("Authorization", bob).
		Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()

	// Bob deleting Alice's todo looks exactly like deleting nothing.
	apitest.Handler(router).
		Delete("/todos/1").
		Header("Authorization", bob).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	// Alice's todo survived.
	apitest.Handler(router).
		Get("/todos").
		Header("Authorization", alice).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 1)).
		End()
}

func TestDeleteTodoTwice(t *testing.T) {
	tokens := auth.NewIssuer("test-secret")
	router := newTestRouter(newFakeTodoStore(), tokens)
	alice := issueFor(t, tokens, 1, "alice")

	apitest.Handler(router).
		Post("/todos").
		Header("Authorization", alice).
		JSON(`{"task":"buy milk"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.Handler(router).
		Delete("/todos/1").
		Header("Authorization", alice).
		Expect(t).
		Status(http.StatusNoContent).
		End()

	apitest.Handler(router).
		Delete("/todos/1").
		Header("Authorization", alice).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.Handler(router).
		Get("/todos").
		Header("Authorization", alice).
		Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()
}

func TestDeleteInvalidID(t *testing.T) {
	tokens := auth.NewIssuer("test-secret")
	router := newTestRouter(newFakeTodoStore(), tokens)
	alice := issueFor(t, tokens, 1, "alice")

	apitest.Handler(router).
		Delete("/todos/not-a-number").
		Header("Authorization", alice).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}
