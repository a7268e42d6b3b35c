package state

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the state document under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Load(ctx context.Context) (State, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to read state key %s: %w", r.key, err)
	}
	return Decode(data)
}

func (r *RedisStore) Save(ctx context.Context, s State) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write state key %s: %w", r.key, err)
	}
	log.Printf("Saved state to redis key %s: lastTournamentDayNum=%d", r.key, s.LastTournamentDayNum)
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
