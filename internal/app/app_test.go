package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"teambattles/config"
	"teambattles/internal/scheduler"
	"teambattles/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DryRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(statePath, []byte(`{"lastTournamentDayNum": 40}`), 0644))

	cfg := &config.Config{
		OAuthToken:            "lip_abc123",
		DryRun:                true,
		RequestTimeoutSeconds: 5,
		StateBackend:          "file",
		StateFile:             statePath,
		Tournament: config.TournamentConfig{
			Server:     "https://lichess.example",
			HostTeamID: "lmao-team",
			Minutes:    90,
			ClockTime:  3,
			Variant:    "standard",
			Teams:      []string{"lmao-team", "darkonteams"},
		},
	}

	var delays []time.Duration
	a, err := New(context.Background(), cfg, scheduler.WithSleep(func(d time.Duration) { delays = append(delays, d) }))
	require.NoError(t, err)
	defer a.Close()

	today := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)
	summary, err := a.Scheduler.Run(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Succeeded)
	assert.True(t, summary.DryRun)
	assert.Equal(t, 0, scheduler.ExitCode(summary, err))
	assert.Len(t, delays, 3)

	for _, r := range summary.Results {
		assert.Equal(t, "https://lichess.example/team/lmao-team/arena/pending", r.URL)
	}

	saved, err := state.NewFileStore(statePath).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, saved.LastTournamentDayNum)
}

func TestNew_UnknownStateBackend(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StateBackend: "etcd"})
	assert.Error(t, err)
}
