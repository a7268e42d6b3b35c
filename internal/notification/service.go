package notification

import (
	"context"
	"log"
	"time"

	"teambattles/config"
	"teambattles/internal/models"
)

const sendTimeout = 30 * time.Second

type Service struct {
	notifiers []Notifier
}

// NewService discovers the notifiers enabled by cfg. A service without
// notifiers is valid and does nothing.
func NewService(cfg *config.Config) *Service {
	s := &Service{}
	if discordNotifier := tryCreateDiscordNotifier(cfg); discordNotifier != nil {
		s.notifiers = append(s.notifiers, discordNotifier)
	}
	return s
}

func tryCreateDiscordNotifier(cfg *config.Config) Notifier {
	nc, err := LoadDiscordConfig(cfg)
	if err != nil {
		log.Printf("Discord notifier disabled: %v", err)
		return nil
	}

	notifier, err := NewDiscordNotifier(nc)
	if err != nil {
		log.Printf("Failed to create Discord notifier: %v", err)
		return nil
	}

	log.Printf("Discord notifier created successfully")
	return notifier
}

// NotifyRun delivers the summary to every notifier, waiting for each result.
func (s *Service) NotifyRun(ctx context.Context, summary models.RunSummary) {
	if len(s.notifiers) == 0 {
		return
	}
	for i, notifier := range s.notifiers {
		s.sendToNotifier(ctx, notifier, summary, i)
	}
}

func (s *Service) sendToNotifier(ctx context.Context, notifier Notifier, summary models.RunSummary, index int) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	message := notifier.FormatMessage(summary)
	resultChan, err := notifier.SendNotification(ctx, message)
	if err != nil {
		log.Printf("Notifier %d failed to send notification: %v", index, err)
		return
	}

	select {
	case result := <-resultChan:
		if !result.Success {
			log.Printf("Notifier %d notification failed: %v", index, result.Error)
		} else {
			log.Printf("Notifier %d notification sent successfully: %s", index, result.ID)
		}
	case <-ctx.Done():
		log.Printf("Notifier %d notification timed out", index)
	}
}

// Close shuts down every notifier, returning the last error seen.
func (s *Service) Close() error {
	var lastErr error
	for _, notifier := range s.notifiers {
		if err := notifier.Close(); err != nil {
			log.Printf("Error closing notifier: %v", err)
			lastErr = err
		}
	}
	return lastErr
}
