package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ayush/todo-api/internal/auth"
	"github.com/ayush/todo-api/internal/config"
	"github.com/ayush/todo-api/internal/middleware"
	"github.com/ayush/todo-api/internal/store"
	"github.com/ayush/todo-api/internal/todos"
)

func main() {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "todo-api").
		Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect")
	}
	defer pgPool.Close()
	pgStore := store.NewPostgresStore(pgPool)
	if err := pgStore.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("postgres migrate")
	}

	// ── Auth ─────────────────────────────────────────────────
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewIssuer(cfg.JWTSecret)

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(pgStore, hasher, tokens)
	todoHandler := todos.NewHandler(pgStore)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("To-Do API is running"))
	})

	// Auth routes (public)
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Todo routes (protected)
	r.Route("/todos", func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/", todoHandler.List)
		r.Post("/", todoHandler.Create)
		r.Delete("/{id}", todoHandler.Delete)
	})

	// Static front-end (optional)
	if cfg.StaticDir != "" {
		fs := http.StripPrefix("/app", http.FileServer(http.Dir(cfg.StaticDir)))
		r.Handle("/app/*", fs)
	}

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		IdleTimeout:  5 * time.Minute,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
