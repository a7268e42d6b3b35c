package main

import (
	"flag"
	"log"
	"time"

	"teambattles/config"
	"teambattles/internal/models"
	"teambattles/internal/schedule"
	"teambattles/internal/tasks"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(0)

	date := flag.String("date", "", "First day of the batch as YYYY-MM-DD (default today, UTC)")
	delay := flag.Duration("delay", 0, "Delay before the batch runs")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	redisCfg := config.LoadRedisConfig()

	today, err := schedule.ResolveToday(*date, time.Now())
	if err != nil {
		log.Fatalf("Failed to resolve date: %v", err)
	}
	batchDate := schedule.FormatDate(today)

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	defer client.Close()

	task, err := tasks.NewCreateBatchTask(models.BatchPayload{Date: batchDate})
	if err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}

	opts := []asynq.Option{
		asynq.TaskID(tasks.BatchTaskID(batchDate)),
		asynq.MaxRetry(0),
	}
	if *delay > 0 {
		opts = append(opts, asynq.ProcessIn(*delay))
	}

	info, err := client.Enqueue(task, opts...)
	if err != nil {
		log.Fatalf("Failed to enqueue task: %v", err)
	}

	log.Printf("Task enqueued successfully:")
	log.Printf("  ID:       %s", info.ID)
	log.Printf("  Queue:    %s", info.Queue)
	log.Printf("  Date:     %s", batchDate)
	if *delay > 0 {
		log.Printf("  Delay:    %v", *delay)
	}
}
