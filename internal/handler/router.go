package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taskboard/taskboard-go/internal/middleware"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig holds the dependencies of the HTTP API.
type RouterConfig struct {
	Logger *slog.Logger
	DB     Pinger
	Tokens middleware.TokenVerifier
	Auth   *AuthHandler
	Tasks  *TaskHandler
}

// NewRouter builds the HTTP API. Task routes and /auth/me sit behind the JWT guard.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", handleHealth(cfg.DB))

	r.Post("/auth/signUp", cfg.Auth.HandleSignUp)
	r.Post("/auth/signIn", cfg.Auth.HandleSignIn)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.Tokens))
		r.Get("/auth/me", cfg.Auth.HandleMe)

		r.Route("/task", func(r chi.Router) {
			r.Post("/", cfg.Tasks.HandleCreate)
			r.Get("/", cfg.Tasks.HandleList)
			r.Get("/{id}", cfg.Tasks.HandleGet)
			r.Patch("/{id}", cfg.Tasks.HandleUpdate)
			r.Delete("/{id}", cfg.Tasks.HandleDelete)
		})
	})

	return r
}

func handleHealth(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse("database unavailable"))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
