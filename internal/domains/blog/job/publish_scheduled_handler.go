package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"bloghub-backend/internal/domains/blog/service"
	"bloghub-backend/internal/shared"
	"bloghub-backend/internal/shared/utils"
	"bloghub-backend/pkg/logger"
)

// PublishScheduledHandler runs the sweep for both the periodic cron task and
// the one-off tasks enqueued at a post's scheduledFor.
type PublishScheduledHandler struct {
	blogService service.ServiceInterface
}

func NewPublishScheduledHandler(blogService service.ServiceInterface) *PublishScheduledHandler {
	return &PublishScheduledHandler{
		blogService: blogService,
	}
}

func (h *PublishScheduledHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.PublishScheduledPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		// payload hỏng thì retry cũng vô ích
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	result, err := h.blogService.PublishScheduled(ctx, payload.Now)
	if err != nil {
		logger.Error("Failed to publish scheduled blogs", err)
		return fmt.Errorf("publish scheduled blogs: %w", err)
	}

	logger.Info("Scheduled sweep finished", map[string]interface{}{
		"published_count": result.PublishedCount,
		"blog_id":         payload.BlogID,
	})
	return nil
}
