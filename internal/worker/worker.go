package worker

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"school-admissions/backend/config"
)

// Worker consumes notification tasks from Redis
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	logger  *zap.Logger
	mu      sync.Mutex
	running bool
}

func NewWorker(cfg *config.RedisConfig, processor *Processor, logger *zap.Logger) *Worker {
	server := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{queueName: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			logger.Warn("task failed",
				zap.String("type", task.Type()),
				zap.Int("retried", retried),
				zap.Error(err),
			)
		}),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeStatusChanged, processor.ProcessTask)

	return &Worker{server: server, mux: mux, logger: logger}
}

// Start begins processing without blocking; signal handling stays with main
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	w.running = true
	w.logger.Info("notification worker started", zap.String("queue", queueName))
	return nil
}

// Stop waits for in-flight tasks and shuts the server down
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.server.Shutdown()
	w.running = false
	w.logger.Info("notification worker stopped")
}
