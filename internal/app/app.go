package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"teambattles/config"
	"teambattles/internal/arena"
	"teambattles/internal/notification"
	"teambattles/internal/scheduler"
	"teambattles/internal/state"
)

// App bundles a ready scheduler with the resources it holds open.
type App struct {
	Scheduler     *scheduler.Scheduler
	store         state.Store
	notifications *notification.Service
}

// New wires the arena client, state store and notifiers from cfg. Extra
// options are applied to the scheduler after the defaults.
func New(ctx context.Context, cfg *config.Config, opts ...scheduler.Option) (*App, error) {
	store, err := state.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	client := arena.New(cfg.OAuthToken, cfg.Tournament,
		arena.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second}),
		arena.WithDryRun(cfg.DryRun),
	)

	notifications := notification.NewService(cfg)

	opts = append([]scheduler.Option{
		scheduler.WithNotifier(notifications),
		scheduler.WithDryRun(cfg.DryRun),
	}, opts...)
	s := scheduler.New(client, store, opts...)

	return &App{Scheduler: s, store: store, notifications: notifications}, nil
}

func (a *App) Close() error {
	nerr := a.notifications.Close()
	if err := a.store.Close(); err != nil {
		return err
	}
	return nerr
}
