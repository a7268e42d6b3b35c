package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"teambattles/internal/models"
	"teambattles/internal/schedule"

	"github.com/hibiken/asynq"
)

// BatchRunner runs one batch of tournament creations.
type BatchRunner interface {
	Run(ctx context.Context, today time.Time) (models.RunSummary, error)
}

// TaskEnqueuer abstracts the ability to enqueue tasks, enabling test mocking.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// CreateBatchHandler processes batch tasks from the Redis queue and chains
// the following batch when an enqueuer is set.
type CreateBatchHandler struct {
	runner   BatchRunner
	enqueuer TaskEnqueuer
	now      func() time.Time
}

func NewCreateBatchHandler(runner BatchRunner, enqueuer TaskEnqueuer) *CreateBatchHandler {
	return &CreateBatchHandler{runner: runner, enqueuer: enqueuer, now: time.Now}
}

// ProcessTask never asks asynq to retry: a retried batch would create the
// same tournaments twice.
func (h *CreateBatchHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := ParseCreateBatchPayload(t)
	if err != nil {
		return fmt.Errorf("failed to parse task payload: %v: %w", err, asynq.SkipRetry)
	}

	today, err := schedule.ResolveToday(payload.Date, h.now())
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	log.Printf("Processing batch for %s", schedule.FormatDate(today))

	// Worker shutdown must not abort a batch halfway
	summary, err := h.runner.Run(context.WithoutCancel(ctx), today)
	if err != nil {
		return fmt.Errorf("batch for %s: %v: %w", summary.Date, err, asynq.SkipRetry)
	}
	if summary.Failed > 0 {
		log.Printf("Batch for %s finished with %d failures", summary.Date, summary.Failed)
	}

	if h.enqueuer == nil {
		return nil
	}
	if err := h.scheduleNextBatch(today); err != nil {
		return fmt.Errorf("failed to schedule next batch after %s: %v: %w", summary.Date, err, asynq.SkipRetry)
	}
	return nil
}

func (h *CreateBatchHandler) scheduleNextBatch(today time.Time) error {
	runAt := schedule.NextBatchTime(today)
	date := schedule.FormatDate(runAt)

	task, err := NewCreateBatchTask(models.BatchPayload{Date: date})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	info, err := h.enqueuer.Enqueue(task,
		asynq.ProcessAt(runAt),
		asynq.TaskID(BatchTaskID(date)),
		asynq.MaxRetry(0),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		log.Printf("Batch for %s is already queued", date)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Printf("Scheduled next batch for %s, task ID: %s, processing at: %s",
		date, info.ID, runAt.Format(time.RFC3339))
	return nil
}
