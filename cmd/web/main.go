package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

//go:embed static
var staticFS embed.FS

const (
	defaultPort = "3000"
	defaultAPI  = "http://localhost:8080"
	envWebPort  = "WEB_PORT"
	envAPIURL   = "TODO_API_URL"
)

// The web server does two things: serve the embedded single-page
// client, and proxy /api to the API server so the browser talks to a
// single origin and no CORS setup is needed.
func main() {
	port := getEnv(envWebPort, defaultPort)
	apiBase := getEnv(envAPIURL, defaultAPI)

	apiURL, err := url.Parse(apiBase)
	if err != nil {
		slog.Error("invalid API URL", "url", apiBase, "err", err)
		os.Exit(1)
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		slog.Error("static assets missing", "err", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	proxy := httputil.NewSingleHostReverseProxy(apiURL)
	r.Handle("/api/*", proxy)

	r.Handle("/*", http.FileServer(http.FS(static)))

	slog.Info("web UI running", "addr", "http://localhost:"+port, "api", apiBase)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
