package main

import (
	"log"
	"net/http"
	"os"

	"teambattles/config"
	"teambattles/internal/app"
	"teambattles/internal/handlers"
	"teambattles/internal/queue"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
)

func handler(w http.ResponseWriter, r *http.Request) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Printf("ERROR: failed to load config: %v", err)
		http.Error(w, "Configuration error", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Printf("ERROR: failed to initialize: %v", err)
		http.Error(w, "Initialization error", http.StatusInternalServerError)
		return
	}
	defer a.Close()

	var enqueuer handlers.BatchEnqueuer
	if cfg.QueueID != "" {
		taskQueue, err := queue.NewCloudTasksQueue(ctx, cfg)
		if err != nil {
			log.Printf("WARNING: next batch will not be chained: %v", err)
		} else {
			defer taskQueue.Close()
			enqueuer = taskQueue
		}
	}

	handlers.CreateBatchHandler(w, r, a.Scheduler, enqueuer)
}

func main() {
	log.SetFlags(0)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	funcframework.RegisterHTTPFunction("/", handler)
	if err := funcframework.Start(port); err != nil {
		log.Fatalf("Failed to start function: %v", err)
	}
}
