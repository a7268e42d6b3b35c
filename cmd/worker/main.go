package main

import (
	"context"
	"log"

	"teambattles/config"
	"teambattles/internal/app"
	"teambattles/internal/tasks"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(0)

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	client := asynq.NewClient(redisOpt)
	defer client.Close()

	// One batch at a time so creation requests stay spaced out
	srv := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 1})

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeCreateBatch, tasks.NewCreateBatchHandler(a.Scheduler, client))

	log.Printf("Worker listening on %s", cfg.RedisAddress)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Worker stopped: %v", err)
	}
}
