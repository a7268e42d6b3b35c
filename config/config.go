// config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"
)

// ErrMissingToken is returned when OAUTH_TOKEN is not set.
var ErrMissingToken = errors.New("OAUTH_TOKEN environment variable is required")

// TournamentConfig holds the team battle settings read from the TOML config file.
type TournamentConfig struct {
	Server         string   `toml:"server"`
	HostTeamID     string   `toml:"hostTeamId"`
	Timezone       string   `toml:"timezone"` // informational, all times are UTC
	Minutes        int      `toml:"minutes"`
	ClockTime      float64  `toml:"clockTime"`      // minutes
	ClockIncrement int      `toml:"clockIncrement"` // seconds
	Rated          bool     `toml:"rated"`
	Variant        string   `toml:"variant"`
	Teams          []string `toml:"teams"`
	DryRun         bool     `toml:"dryRun"`
}

type Config struct {
	Env        string
	ConfigFile string

	OAuthToken            string
	DryRun                bool
	RequestTimeoutSeconds int

	Tournament TournamentConfig

	// State persistence
	StateBackend string
	StateFile    string
	StateKey     string
	DatabaseURL  string

	// Cloud Tasks configuration (HTTP mode)
	ProjectID         string
	QueueID           string
	LocationID        string
	UseEmulator       bool
	CloudTasksAddress string
	HandlerAddress    string

	// Redis configuration (worker mode)
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Discord run summaries
	DiscordToken     string
	DiscordChannelID string
}

// LoadConfig reads the environment and the tournament file at path. An empty
// path falls back to CONFIG_FILE, then config.toml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = getEnvOrDefault("CONFIG_FILE", "config.toml")
	}

	cfg := &Config{
		Env:        os.Getenv("APP_ENV"),
		ConfigFile: path,

		OAuthToken: os.Getenv("OAUTH_TOKEN"),
		RequestTimeoutSeconds: func() int {
			if val, ok := os.LookupEnv("REQUEST_TIMEOUT_SECONDS"); ok {
				intVal, err := cast.ToIntE(val)
				if err == nil && intVal > 0 {
					return intVal
				}
				log.Printf("Invalid REQUEST_TIMEOUT_SECONDS value '%s', using default of 30 seconds", val)
			}
			return 30
		}(),

		StateBackend: getEnvOrDefault("STATE_BACKEND", "file"),
		StateFile:    getEnvOrDefault("STATE_FILE", "state.json"),
		StateKey:     getEnvOrDefault("STATE_KEY", "teambattles:state"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		// Cloud Tasks (HTTP mode)
		ProjectID:         os.Getenv("GCP_PROJECT_ID"),
		QueueID:           os.Getenv("CLOUD_TASKS_QUEUE"),
		LocationID:        os.Getenv("GCP_LOCATION"),
		UseEmulator:       os.Getenv("USE_TASKS_EMULATOR") == "true",
		CloudTasksAddress: os.Getenv("CLOUD_TASKS_EMULATOR_HOST"),
		HandlerAddress:    os.Getenv("HANDLER_HOST"),

		DiscordToken:     os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
	}

	redisCfg := LoadRedisConfig()
	cfg.RedisAddress = redisCfg.Address
	cfg.RedisPassword = redisCfg.Password
	cfg.RedisDB = redisCfg.DB

	if cfg.OAuthToken == "" {
		return nil, ErrMissingToken
	}

	tc, err := LoadTournamentConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.Tournament = tc
	cfg.DryRun = tc.DryRun || IsDryRun(os.Getenv("DRY_RUN"))
	return cfg, nil
}

// RedisConfig is the connection subset needed by queue-only tools.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LoadRedisConfig reads REDIS_ADDRESS, REDIS_PASSWORD and REDIS_DB only.
func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB: func() int {
			if val, ok := os.LookupEnv("REDIS_DB"); ok {
				intVal, err := cast.ToIntE(val)
				if err == nil && intVal >= 0 {
					return intVal
				}
				log.Printf("Invalid REDIS_DB value '%s', using 0", val)
			}
			return 0
		}(),
	}
}

// LoadTournamentConfig decodes and validates the TOML tournament settings.
func LoadTournamentConfig(path string) (TournamentConfig, error) {
	var tc TournamentConfig

	content, err := os.ReadFile(path)
	if err != nil {
		return tc, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	md, err := toml.Decode(string(content), &tc)
	if err != nil {
		return tc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	for _, undecoded := range md.Undecoded() {
		log.Printf("WARNING: undecoded configuration key %q will not be used", undecoded.String())
	}

	if err := checkTournamentConfig(&tc); err != nil {
		return tc, err
	}
	return tc, nil
}

func checkTournamentConfig(tc *TournamentConfig) error {
	if tc.HostTeamID == "" {
		return errors.New("hostTeamId is required")
	}
	if tc.Server == "" {
		tc.Server = "https://lichess.org"
	}
	if tc.Timezone == "" {
		tc.Timezone = "UTC"
	}
	if tc.Variant == "" {
		tc.Variant = "standard"
	}
	if tc.Minutes <= 0 {
		tc.Minutes = 120
	}
	if tc.ClockTime <= 0 {
		tc.ClockTime = 3
	}
	if tc.ClockIncrement < 0 {
		return fmt.Errorf("clockIncrement must be >= 0, got %d", tc.ClockIncrement)
	}
	return nil
}

// IsDryRun reports whether a DRY_RUN value enables simulation mode.
func IsDryRun(val string) bool {
	return val == "1" || val == "true"
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
