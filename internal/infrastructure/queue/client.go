package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/config"
	"bloghub-backend/internal/shared"
)

// taskEnqueuer is the part of *asynq.Client the publisher needs.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PublishEnqueuer schedules one-off sweep tasks at a post's publish time.
type PublishEnqueuer struct {
	client taskEnqueuer
}

func NewPublishEnqueuer(client *asynq.Client) *PublishEnqueuer {
	return &PublishEnqueuer{client: client}
}

// EnqueuePublishAt enqueues a sweep that runs at `at`. The task id is derived
// from the post and the time, so rescheduling to the same instant is a no-op.
func (e *PublishEnqueuer) EnqueuePublishAt(ctx context.Context, blogID uuid.UUID, at time.Time) error {
	payload, err := json.Marshal(shared.PublishScheduledPayload{BlogID: blogID.String()})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(shared.TypePublishScheduledBlogs, payload)
	info, err := e.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueBlog),
		asynq.ProcessAt(at),
		asynq.TaskID(PublishTaskID(blogID, at)),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue publish task: %w", err)
	}

	log.Debug().
		Str("task_id", info.ID).
		Str("blog_id", blogID.String()).
		Time("process_at", at).
		Msg("Publish task enqueued")
	return nil
}

func PublishTaskID(blogID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("publish:%s:%d", blogID, at.Unix())
}

// RedisOpt builds the asynq connection options shared by client, server and
// scheduler.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
