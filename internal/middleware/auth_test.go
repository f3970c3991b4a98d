package middleware

import (
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"

	"github.com/ayush/todo-api/internal/auth"
)

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewIssuer("test-secret")

	var count uint32
	var seen AuthUser
	protected := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddUint32(&count, 1)
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// No token at all.
	apitest.Handler(protected).
		Get("/").
		Expect(t).
		Status(http.StatusForbidden).
		Body(`{"error":"No token provided"}`).
		End()

	// Garbage token.
	apitest.Handler(protected).
		Get("/").
		Header("Authorization", "garbage").
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(`{"error":"Invalid token"}`).
		End()

	// The raw signed token, no "Bearer " prefix.
	token, err := tokens.Issue(7, "alice")
	require.NoError(t, err)
	apitest.Handler(protected).
		Get("/").
		Header("Authorization", token).
		Expect(t).
		Status(http.StatusOK).
		End()

	require.EqualValues(t, 1, count, "handler should run only for the valid token")
	require.Equal(t, AuthUser{ID: 7, Username: "alice"}, seen)
}

func TestRequireAuthRejectsExpired(t *testing.T) {
	tokens := auth.NewIssuer("test-secret")
	protected := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an expired token")
	}))

	expired, err := auth.NewIssuerWithTTL("test-secret", -time.Minute).Issue(7, "alice")
	require.NoError(t, err)

	apitest.Handler(protected).
		Get("/").
		Header("Authorization", expired).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}
