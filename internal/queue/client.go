package queue

import (
	"context"
	"fmt"
	"log"

	"teambattles/config"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// TasksClient is the part of the Cloud Tasks API the batch queue uses.
type TasksClient interface {
	CreateTask(ctx context.Context, req *taskspb.CreateTaskRequest) (*taskspb.Task, error)
	Close() error
}

// newTasksClient talks to the local emulator when enabled, otherwise to
// Cloud Tasks with default credentials.
func newTasksClient(ctx context.Context, cfg *config.Config) (TasksClient, error) {
	var opts []option.ClientOption
	if useEmulator(cfg) {
		log.Printf("Using Cloud Tasks emulator at %s", cfg.CloudTasksAddress)
		conn, err := grpc.NewClient(cfg.CloudTasksAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("failed to dial emulator %s: %w", cfg.CloudTasksAddress, err)
		}
		opts = append(opts, option.WithGRPCConn(conn))
	}

	client, err := cloudtasks.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &gcpTasksClient{client: client}, nil
}

// gcpTasksClient drops the variadic call options of the generated client.
type gcpTasksClient struct {
	client *cloudtasks.Client
}

func (g *gcpTasksClient) CreateTask(ctx context.Context, req *taskspb.CreateTaskRequest) (*taskspb.Task, error) {
	return g.client.CreateTask(ctx, req)
}

func (g *gcpTasksClient) Close() error {
	return g.client.Close()
}

func useEmulator(cfg *config.Config) bool {
	return (cfg.Env == "local" || cfg.UseEmulator) && cfg.CloudTasksAddress != ""
}
