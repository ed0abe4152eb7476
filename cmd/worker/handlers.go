package main

import (
	"github.com/hibiken/asynq"

	blogJob "bloghub-backend/internal/domains/blog/job"
	"bloghub-backend/internal/shared"
	"bloghub-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	publishScheduled *blogJob.PublishScheduledHandler
}

// initializeHandlers lấy handlers đã được wire sẵn trong container
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		publishScheduled: c.PublishScheduledHandler,
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Cron sweep và one-off publish task dùng chung một type
	mux.HandleFunc(shared.TypePublishScheduledBlogs, h.publishScheduled.ProcessTask)
}
