package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"teambattles/internal/models"
	"teambattles/internal/schedule"
)

// BatchRunner runs one batch of tournament creations.
type BatchRunner interface {
	Run(ctx context.Context, today time.Time) (models.RunSummary, error)
}

// BatchEnqueuer schedules a future batch trigger.
type BatchEnqueuer interface {
	Enqueue(ctx context.Context, payload models.BatchPayload, deliverAt time.Time) error
}

// BatchResponse is written back to the caller once the batch was attempted.
type BatchResponse struct {
	Date                 string `json:"date"`
	Succeeded            int    `json:"succeeded"`
	Failed               int    `json:"failed"`
	LastTournamentDayNum int    `json:"lastTournamentDayNum"`
	StateUpdated         bool   `json:"stateUpdated"`
	DryRun               bool   `json:"dryRun"`
	NextBatch            string `json:"nextBatch,omitempty"`
	Error                string `json:"error,omitempty"`
}

// CreateBatchHandler runs one batch per request. Once tournaments were
// attempted it always answers 200 so the queue never redelivers the request.
func CreateBatchHandler(w http.ResponseWriter, r *http.Request, runner BatchRunner, enqueuer BatchEnqueuer) {
	createBatch(w, r, runner, enqueuer, time.Now())
}

func createBatch(w http.ResponseWriter, r *http.Request, runner BatchRunner, enqueuer BatchEnqueuer, now time.Time) {
	payload, err := parseRequestPayload(r)
	if err != nil {
		log.Printf("ERROR: %v", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	today, err := schedule.ResolveToday(payload.Date, now)
	if err != nil {
		log.Printf("ERROR: %v", err)
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	// A started batch always runs to the end, even if the caller goes away
	ctx := context.WithoutCancel(r.Context())

	summary, runErr := runner.Run(ctx, today)

	resp := BatchResponse{
		Date:                 summary.Date,
		Succeeded:            summary.Succeeded,
		Failed:               summary.Failed,
		LastTournamentDayNum: summary.LastTournamentDayNum,
		StateUpdated:         summary.StateUpdated,
		DryRun:               summary.DryRun,
	}

	if runErr != nil {
		log.Printf("ERROR: batch for %s: %v", summary.Date, runErr)
		resp.Error = runErr.Error()
	} else if enqueuer != nil {
		next, err := scheduleNextBatch(ctx, enqueuer, today)
		if err != nil {
			log.Printf("ERROR: %v", err)
			resp.Error = err.Error()
		} else {
			resp.NextBatch = next
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func parseRequestPayload(r *http.Request) (models.BatchPayload, error) {
	var payload models.BatchPayload

	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<10))
	if err != nil {
		return payload, fmt.Errorf("failed to read request body: %w", err)
	}

	log.Printf("Raw body: %s", body)

	if strings.TrimSpace(string(body)) == "" {
		return payload, nil
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, fmt.Errorf("invalid request payload: %w", err)
	}

	return payload, nil
}

func scheduleNextBatch(ctx context.Context, enqueuer BatchEnqueuer, today time.Time) (string, error) {
	runAt := schedule.NextBatchTime(today)
	date := schedule.FormatDate(runAt)

	if err := enqueuer.Enqueue(ctx, models.BatchPayload{Date: date}, runAt); err != nil {
		return "", fmt.Errorf("failed to schedule next batch for %s: %w", date, err)
	}

	log.Printf("Scheduled next batch for %s at %s", date, runAt.Format(time.RFC3339))
	return date, nil
}
