package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mwalcott/todo-api/internal/config"
	"github.com/mwalcott/todo-api/internal/handlers"
	"github.com/mwalcott/todo-api/internal/middleware"
	"github.com/mwalcott/todo-api/internal/repo"
)

// newRouter builds the full handler chain. Split from main so tests can
// run the router against a mock database.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(database)
	todoRepo := repo.NewTodoRepo(database)

	secret := []byte(cfg.JWTSecret)
	authH := &handlers.AuthHandler{UserRepo: userRepo, Secret: secret}
	userH := &handlers.UserHandler{Repo: userRepo}
	todoH := &handlers.TodoHandler{Repo: todoRepo}

	hsts := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(hsts))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := middleware.AuthRateLimiter()

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

		// Public: signup and login only.
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/users", authH.Signup)
			r.Post("/auth/login", authH.Login)
		})

		// Everything else requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTMiddleware(secret))
			r.Get("/users", userH.ListUsers)
			r.Get("/todos", todoH.ListTodos)
			r.Get("/todos/{id}", todoH.GetTodo)
			r.Post("/todos", todoH.CreateTodo)
			r.Patch("/todos", todoH.UpdateTodo)
			r.Delete("/todos", todoH.DeleteTodo)
		})
	})

	return r
}
