package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"teambattles/config"
	"teambattles/internal/app"
	"teambattles/internal/schedule"
	"teambattles/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(0)

	configPath := flag.String("config", "", "Path to the TOML tournament config (default $CONFIG_FILE or config.toml)")
	date := flag.String("date", "", "First day of the batch as YYYY-MM-DD (default today, UTC)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	today, err := schedule.ResolveToday(*date, time.Now())
	if err != nil {
		log.Fatalf("Failed to resolve date: %v", err)
	}

	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	summary, runErr := a.Scheduler.Run(ctx, today)
	if err := a.Close(); err != nil {
		log.Printf("Failed to close resources: %v", err)
	}

	if summary.DryRun {
		log.Println("Dry run complete, no tournaments were created")
	}

	code := scheduler.ExitCode(summary, runErr)
	if code != 0 {
		log.Printf("Finished with errors: %d failed", summary.Failed)
	}
	os.Exit(code)
}
