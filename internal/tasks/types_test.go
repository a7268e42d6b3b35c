package tasks

import (
	"testing"

	"teambattles/internal/models"

	"github.com/hibiken/asynq"
)

func TestNewCreateBatchTask(t *testing.T) {
	t.Run("WithDate", func(t *testing.T) {
		task, err := NewCreateBatchTask(models.BatchPayload{Date: "2025-10-08"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if task.Type() != TypeCreateBatch {
			t.Errorf("Expected task type %q, got %q", TypeCreateBatch, task.Type())
		}

		parsed, err := ParseCreateBatchPayload(task)
		if err != nil {
			t.Fatalf("Failed to parse payload: %v", err)
		}
		if parsed.Date != "2025-10-08" {
			t.Errorf("Date mismatch: got %q, want %q", parsed.Date, "2025-10-08")
		}
	})

	t.Run("EmptyDateOmitted", func(t *testing.T) {
		task, err := NewCreateBatchTask(models.BatchPayload{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if string(task.Payload()) != "{}" {
			t.Errorf("Expected empty JSON object, got %s", task.Payload())
		}
	})
}

func TestParseCreateBatchPayload_InvalidJSON(t *testing.T) {
	task := asynq.NewTask(TypeCreateBatch, []byte("not-valid-json"))

	if _, err := ParseCreateBatchPayload(task); err == nil {
		t.Error("Expected error for invalid JSON, got nil")
	}
}

func TestBatchTaskID(t *testing.T) {
	if got := BatchTaskID("2025-10-10"); got != "batch-2025-10-10" {
		t.Errorf("Expected batch-2025-10-10, got %s", got)
	}
}
