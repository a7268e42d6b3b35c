package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server = "https://lichess.example"
hostTeamId = "lmao-team"
timezone = "Europe/London"
minutes = 90
clockTime = 3
clockIncrement = 2
rated = true
variant = "standard"
teams = ["lmao-team", "darkonteams", "rooks-and-rolls"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_MissingToken(t *testing.T) {
	t.Setenv("OAUTH_TOKEN", "")
	path := writeConfig(t, sampleConfig)

	_, err := LoadConfig(path)
	assert.True(t, errors.Is(err, ErrMissingToken), "expected ErrMissingToken, got %v", err)
}

func TestLoadConfig_ReadsFileAndEnv(t *testing.T) {
	t.Setenv("OAUTH_TOKEN", "lip_abc123")
	t.Setenv("DRY_RUN", "1")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "15")
	path := writeConfig(t, sampleConfig)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "lip_abc123", cfg.OAuthToken)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 15, cfg.RequestTimeoutSeconds)
	assert.Equal(t, "file", cfg.StateBackend)
	assert.Equal(t, "state.json", cfg.StateFile)

	tc := cfg.Tournament
	assert.Equal(t, "https://lichess.example", tc.Server)
	assert.Equal(t, "lmao-team", tc.HostTeamID)
	assert.Equal(t, 90, tc.Minutes)
	assert.Equal(t, 3.0, tc.ClockTime)
	assert.Equal(t, 2, tc.ClockIncrement)
	assert.True(t, tc.Rated)
	assert.Equal(t, []string{"lmao-team", "darkonteams", "rooks-and-rolls"}, tc.Teams)
}

func TestLoadRedisConfig_WithoutTokenOrFile(t *testing.T) {
	t.Setenv("OAUTH_TOKEN", "")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("REDIS_ADDRESS", "redis.internal:6380")
	t.Setenv("REDIS_PASSWORD", "s3cret")
	t.Setenv("REDIS_DB", "2")

	rc := LoadRedisConfig()
	assert.Equal(t, "redis.internal:6380", rc.Address)
	assert.Equal(t, "s3cret", rc.Password)
	assert.Equal(t, 2, rc.DB)
}

func TestLoadRedisConfig_Defaults(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_DB", "-1")

	rc := LoadRedisConfig()
	assert.Equal(t, "localhost:6379", rc.Address)
	assert.Empty(t, rc.Password)
	assert.Equal(t, 0, rc.DB)
}

func TestLoadConfig_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("OAUTH_TOKEN", "lip_abc123")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "soon")
	path := writeConfig(t, sampleConfig)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.RequestTimeoutSeconds)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("OAUTH_TOKEN", "lip_abc123")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadTournamentConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `hostTeamId = "lmao-team"`)

	tc, err := LoadTournamentConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://lichess.org", tc.Server)
	assert.Equal(t, "UTC", tc.Timezone)
	assert.Equal(t, "standard", tc.Variant)
	assert.Equal(t, 120, tc.Minutes)
	assert.Equal(t, 3.0, tc.ClockTime)
	assert.False(t, tc.DryRun)
}

func TestLoadTournamentConfig_RequiresHostTeam(t *testing.T) {
	path := writeConfig(t, `teams = ["a", "b"]`)

	_, err := LoadTournamentConfig(path)
	assert.Error(t, err)
}

func TestLoadTournamentConfig_RejectsNegativeIncrement(t *testing.T) {
	path := writeConfig(t, "hostTeamId = \"lmao-team\"\nclockIncrement = -1\n")

	_, err := LoadTournamentConfig(path)
	assert.Error(t, err)
}

func TestIsDryRun(t *testing.T) {
	testCases := map[string]bool{
		"1":     true,
		"true":  true,
		"":      false,
		"0":     false,
		"false": false,
		"yes":   false,
		"TRUE":  false,
	}
	for val, want := range testCases {
		t.Run(val, func(t *testing.T) {
			assert.Equal(t, want, IsDryRun(val))
		})
	}
}
