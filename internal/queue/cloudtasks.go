package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"teambattles/config"
	"teambattles/internal/models"
	"teambattles/internal/tasks"

	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// CloudTasksQueue implements BatchQueue using Google Cloud Tasks HTTP targets.
type CloudTasksQueue struct {
	client TasksClient
	cfg    *config.Config
}

// NewCloudTasksQueue creates a new CloudTasksQueue.
func NewCloudTasksQueue(ctx context.Context, cfg *config.Config) (*CloudTasksQueue, error) {
	if cfg.ProjectID == "" || cfg.LocationID == "" || cfg.QueueID == "" || cfg.HandlerAddress == "" {
		return nil, fmt.Errorf("GCP_PROJECT_ID, GCP_LOCATION, CLOUD_TASKS_QUEUE and HANDLER_HOST are required")
	}
	client, err := newTasksClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}
	return &CloudTasksQueue{client: client, cfg: cfg}, nil
}

func (q *CloudTasksQueue) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s",
		q.cfg.ProjectID, q.cfg.LocationID, q.cfg.QueueID)
}

// Enqueue names the task after the batch date; Cloud Tasks rejects a second
// task with the same name, which is treated as already scheduled.
func (q *CloudTasksQueue) Enqueue(ctx context.Context, payload models.BatchPayload, deliverAt time.Time) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	queuePath := q.queuePath()

	task := &taskspb.Task{
		Name: queuePath + "/tasks/" + tasks.BatchTaskID(payload.Date),
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        q.cfg.HandlerAddress,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payloadJSON,
			},
		},
		ScheduleTime: timestamppb.New(deliverAt),
	}

	req := &taskspb.CreateTaskRequest{
		Parent: queuePath,
		Task:   task,
	}

	log.Printf("Enqueuing batch for %s scheduled at %s", payload.Date, deliverAt.Format(time.RFC3339))

	_, err = q.client.CreateTask(ctx, req)
	if status.Code(err) == codes.AlreadyExists {
		log.Printf("Batch for %s is already queued", payload.Date)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (q *CloudTasksQueue) Close() error {
	return q.client.Close()
}
