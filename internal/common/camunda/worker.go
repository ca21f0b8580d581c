// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// HandlerFunc processes one Zeebe job. Completion and failure are reported
// through the job client, not the return path.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// JobObserver receives per-job telemetry from the worker loop.
type JobObserver interface {
	RecordJobProcessed(ctx context.Context, status string)
	RecordJobDuration(ctx context.Context, taskType string, d time.Duration)
}

// CamundaWorker owns one opened job worker subscription.
type CamundaWorker struct {
	worker   worker.JobWorker
	logger   *zap.Logger
	taskType string
}

type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
	Observer      JobObserver
}

// NewWorker opens a job worker for a task type. The subscription starts
// polling immediately.
func NewWorker(
	client zbc.Client,
	taskType string,
	opts WorkerOptions,
	handler HandlerFunc,
	logger *zap.Logger,
) *CamundaWorker {
	wrapped := handler
	if opts.Observer != nil {
		wrapped = func(client worker.JobClient, job entities.Job) {
			start := time.Now()
			handler(client, job)
			opts.Observer.RecordJobDuration(context.Background(), taskType, time.Since(start))
			opts.Observer.RecordJobProcessed(context.Background(), "handled")
		}
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(wrapped)).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Open()

	logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", opts.MaxJobsActive),
		zap.Duration("timeout", opts.Timeout),
	)

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   logger,
		taskType: taskType,
	}
}

// Stop drains and closes the subscription. The Zeebe client itself is owned
// by the caller.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.worker.Close()
}
