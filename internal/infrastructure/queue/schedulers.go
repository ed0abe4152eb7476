package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bloghub-backend/internal/config"
	"bloghub-backend/internal/shared"
	"bloghub-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterJobs registers every periodic task.
func (s *Scheduler) RegisterJobs() error {
	if !s.jobConfig.SweepEnabled {
		logger.Warn("Scheduled publish sweep disabled (SWEEP_ENABLED=false)", map[string]interface{}{})
		return nil
	}
	_, err := s.registerPublishScheduledJob()
	return err
}

// ================================================
// JOB: Publish Scheduled Blogs (SWEEP_CRON, default every minute)
// ================================================
// Empty payload: the worker uses its own clock at run time, so a late
// delivery still sweeps everything due by then.
func (s *Scheduler) registerPublishScheduledJob() (string, error) {
	payload, err := json.Marshal(shared.PublishScheduledPayload{})
	if err != nil {
		return "", err
	}

	task := asynq.NewTask(shared.TypePublishScheduledBlogs, payload)

	entryID, err := s.scheduler.Register(
		s.jobConfig.SweepCron,
		task,
		asynq.Queue(shared.QueueBlog),
		asynq.MaxRetry(0), // lần chạy kế tiếp sẽ quét lại
		asynq.Timeout(time.Minute),
		asynq.Unique(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register PublishScheduledBlogs job", err)
		return "", err
	}

	logger.Info("✓ Registered PublishScheduledBlogs", map[string]interface{}{
		"cron":     s.jobConfig.SweepCron,
		"entry_id": entryID,
	})
	return entryID, nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
