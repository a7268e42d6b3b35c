// internal/state/factory.go
package state

import (
	"context"
	"fmt"
	"log"

	"teambattles/config"

	"github.com/redis/go-redis/v9"
)

// Open returns the Store selected by STATE_BACKEND.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StateBackend {
	case "", "file":
		log.Printf("Using state file %s", cfg.StateFile)
		return NewFileStore(cfg.StateFile), nil
	case "redis":
		log.Printf("Using redis state at %s (key %s)", cfg.RedisAddress, cfg.StateKey)
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddress, err)
		}
		return NewRedisStore(client, cfg.StateKey), nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres state backend")
		}
		log.Printf("Using postgres state")
		return OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown STATE_BACKEND %q", cfg.StateBackend)
	}
}
