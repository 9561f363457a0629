package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mwalcott/todo-api/internal/metrics"
	"github.com/mwalcott/todo-api/internal/models"
	"github.com/mwalcott/todo-api/internal/repo"
)

// Run starts a background job that refreshes the todo and user gauges
// every minute. Observability only; it never touches request handling.
func Run(userRepo *repo.UserRepo, todoRepo *repo.TodoRepo) *cron.Cron {
	c := cron.New()

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		Refresh(ctx, userRepo, todoRepo)
	}

	if _, err := c.AddFunc("@every 1m", refresh); err != nil {
		slog.Error("stats: schedule refresh", "err", err)
		return c
	}

	// Prime the gauges so /metrics is meaningful before the first tick.
	refresh()
	c.Start()
	return c
}

// Refresh reads current counts and updates the gauges. Split out so
// tests can drive it directly without the cron schedule.
func Refresh(ctx context.Context, userRepo *repo.UserRepo, todoRepo *repo.TodoRepo) {
	users, err := userRepo.Count(ctx)
	if err != nil {
		slog.Error("stats: count users", "err", err)
	} else {
		metrics.SetUsersTotal(users)
	}

	counts, err := todoRepo.CountByStatus(ctx)
	if err != nil {
		slog.Error("stats: count todos", "err", err)
		return
	}
	// Always set both statuses so a drained status drops back to zero.
	for _, status := range []string{models.StatusInProgress, models.StatusCompleted} {
		metrics.SetTodosByStatus(status, counts[status])
	}
}
