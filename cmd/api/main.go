package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mwalcott/todo-api/internal/config"
	"github.com/mwalcott/todo-api/internal/db"
	"github.com/mwalcott/todo-api/internal/repo"
	"github.com/mwalcott/todo-api/internal/stats"
)

func main() {
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	// The signing secret has no default: without it every issued token
	// would be forgeable, so refuse to start.
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
	)
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Run(cfg.DatabaseURL()); err != nil {
		slog.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	stats.Run(repo.NewUserRepo(database), repo.NewTodoRepo(database))

	r := newRouter(database, cfg)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}
}
