package tasks

import (
	"encoding/json"
	"fmt"

	"teambattles/internal/models"

	"github.com/hibiken/asynq"
)

const (
	TypeCreateBatch = "tournaments:create_batch"
)

// NewCreateBatchTask creates a new asynq task from a batch payload.
func NewCreateBatchTask(payload models.BatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeCreateBatch, data), nil
}

// ParseCreateBatchPayload deserializes a payload from an asynq task.
func ParseCreateBatchPayload(t *asynq.Task) (models.BatchPayload, error) {
	var payload models.BatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return payload, nil
}

// BatchTaskID is the unique task id for the batch starting on date, so a
// batch is never queued twice.
func BatchTaskID(date string) string {
	return "batch-" + date
}
