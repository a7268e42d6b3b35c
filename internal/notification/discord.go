package notification

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"teambattles/config"
	"teambattles/internal/models"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

const (
	// Discord rejects messages longer than this
	maxMessageLength = 2000
	maxErrorLength   = 200
)

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(config NotifierConfig) (*DiscordNotifier, error) {
	token := config.Config["DISCORD_BOT_TOKEN"]
	if token == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN not found in config")
	}
	channelID := config.Config["DISCORD_CHANNEL_ID"]
	if channelID == "" {
		return nil, fmt.Errorf("DISCORD_CHANNEL_ID not found in config")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}, nil
}

// SendNotification posts message to the configured channel over the REST API.
func (d *DiscordNotifier) SendNotification(ctx context.Context, message string) (<-chan NotificationResult, error) {
	resultChan := make(chan NotificationResult, 1)
	notificationID := uuid.New().String()

	go func() {
		defer close(resultChan)

		result := NotificationResult{
			ID:        notificationID,
			Timestamp: time.Now(),
		}

		log.Printf("Sending Discord message to channel %s", d.channelID)

		_, err := d.session.ChannelMessageSend(d.channelID, message, discordgo.WithContext(ctx))
		if err != nil {
			result.Error = fmt.Errorf("failed to send Discord message: %w", err)
		} else {
			result.Success = true
		}

		resultChan <- result
	}()

	return resultChan, nil
}

func (d *DiscordNotifier) Close() error {
	if d.session != nil {
		return d.session.Close()
	}
	return nil
}

// FormatMessage renders a run summary as a Discord message.
func (d *DiscordNotifier) FormatMessage(summary models.RunSummary) string {
	var b strings.Builder

	header := "♟️ Team battles for " + summary.Date
	if summary.DryRun {
		header += " (dry run)"
	}
	b.WriteString("**" + header + "**\n")
	fmt.Fprintf(&b, "Created %d/%d", summary.Succeeded, summary.Attempted)
	if summary.Failed > 0 {
		fmt.Fprintf(&b, ", %d failed", summary.Failed)
	}
	b.WriteString("\n\n")

	for _, r := range summary.Results {
		if r.OK() {
			url := r.URL
			if url == "" {
				url = "url unknown"
			}
			fmt.Fprintf(&b, "✅ %s: %s\n", r.Tournament.Name, url)
		} else {
			fmt.Fprintf(&b, "❌ %s: %s\n", r.Tournament.Name, truncate(singleLine(r.Err.Error()), maxErrorLength))
		}
	}

	if summary.StateUpdated {
		fmt.Fprintf(&b, "\nNext batch starts at day %d", summary.LastTournamentDayNum+1)
	} else {
		fmt.Fprintf(&b, "\nState unchanged (last day %d)", summary.LastTournamentDayNum)
	}
	return truncate(b.String(), maxMessageLength)
}

// singleLine collapses whitespace runs, which HTML error bodies are full of.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most limit bytes on a rune boundary, marking the cut.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	const ellipsis = "…"
	cut := limit - len(ellipsis)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}

// LoadDiscordConfig builds the notifier config from the application config.
func LoadDiscordConfig(cfg *config.Config) (NotifierConfig, error) {
	nc := NotifierConfig{
		Config: make(map[string]string),
	}

	if cfg.DiscordToken == "" {
		return nc, fmt.Errorf("DISCORD_BOT_TOKEN environment variable is required")
	}
	if cfg.DiscordChannelID == "" {
		return nc, fmt.Errorf("DISCORD_CHANNEL_ID environment variable is required")
	}

	nc.Config["DISCORD_BOT_TOKEN"] = cfg.DiscordToken
	nc.Config["DISCORD_CHANNEL_ID"] = cfg.DiscordChannelID
	return nc, nil
}
