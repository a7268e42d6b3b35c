package queue

import (
	"context"
	"time"

	"teambattles/internal/models"
)

// BatchQueue delivers a batch trigger at a given time.
type BatchQueue interface {
	Enqueue(ctx context.Context, payload models.BatchPayload, deliverAt time.Time) error
	Close() error
}
