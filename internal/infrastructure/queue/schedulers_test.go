package queue

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/config"
)

func TestScheduler_RegistersSweep(t *testing.T) {
	s := NewScheduler(asynq.RedisClientOpt{Addr: "localhost:6379"}, config.JobConfig{
		SweepCron:    "*/5 * * * *",
		SweepEnabled: true,
	})

	entryID, err := s.registerPublishScheduledJob()
	require.NoError(t, err)
	assert.NotEmpty(t, entryID)
}

func TestScheduler_BadCron(t *testing.T) {
	s := NewScheduler(asynq.RedisClientOpt{Addr: "localhost:6379"}, config.JobConfig{
		SweepCron:    "not a cron",
		SweepEnabled: true,
	})

	assert.Error(t, s.RegisterJobs())
}

func TestScheduler_Disabled(t *testing.T) {
	s := NewScheduler(asynq.RedisClientOpt{Addr: "localhost:6379"}, config.JobConfig{
		SweepCron: "not a cron",
	})

	assert.NoError(t, s.RegisterJobs())
}
