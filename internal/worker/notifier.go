package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"school-admissions/backend/config"
)

const (
	queueName   = "notifications"
	maxRetry    = 5
	inlineLimit = 15 * time.Second
)

// QueueNotifier enqueues status notifications on Redis
type QueueNotifier struct {
	client *asynq.Client
	logger *zap.Logger
}

// NewQueueNotifier connects an asynq client; it fails when Redis is unreachable
func NewQueueNotifier(cfg *config.RedisConfig, logger *zap.Logger) (*QueueNotifier, error) {
	opt := redisOpt(cfg)

	inspector := asynq.NewInspector(opt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		return nil, err
	}

	return &QueueNotifier{client: asynq.NewClient(opt), logger: logger}, nil
}

func (n *QueueNotifier) NotifyStatusChanged(ctx context.Context, email, name, applicationID, status, comment string) error {
	task, err := NewStatusChangedTask(StatusChangedPayload{
		Email:         email,
		Name:          name,
		ApplicationID: applicationID,
		Status:        status,
		Comment:       comment,
	})
	if err != nil {
		return err
	}

	info, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue(queueName),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return err
	}
	n.logger.Debug("notification enqueued", zap.String("task_id", info.ID), zap.String("application_id", applicationID))
	return nil
}

func (n *QueueNotifier) Close() error {
	return n.client.Close()
}

// InlineNotifier runs the processor in the calling goroutine. Used when
// Redis is disabled.
type InlineNotifier struct {
	processor *Processor
}

func NewInlineNotifier(p *Processor) *InlineNotifier {
	return &InlineNotifier{processor: p}
}

func (n *InlineNotifier) NotifyStatusChanged(ctx context.Context, email, name, applicationID, status, comment string) error {
	// the request may finish before the mail provider answers
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), inlineLimit)
	defer cancel()

	return n.processor.HandleStatusChanged(ctx, StatusChangedPayload{
		Email:         email,
		Name:          name,
		ApplicationID: applicationID,
		Status:        status,
		Comment:       comment,
	})
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
