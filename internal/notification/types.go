package notification

import (
	"context"
	"time"

	"teambattles/internal/models"
)

type NotificationResult struct {
	ID        string
	Success   bool
	Error     error
	Timestamp time.Time
}

type Notifier interface {
	// SendNotification returns immediately; delivery is reported on the channel.
	SendNotification(ctx context.Context, message string) (<-chan NotificationResult, error)
	FormatMessage(summary models.RunSummary) string
	Close() error
}

type NotifierConfig struct {
	Config map[string]string
}
