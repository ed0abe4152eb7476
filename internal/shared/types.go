package shared

import (
	"time"

	"github.com/google/uuid"
)

// Task types handled by the worker
const (
	TypePublishScheduledBlogs = "blog:publish_scheduled"
)

// Queue names
const (
	QueueBlog    = "blog"
	QueueDefault = "default"
)

// PublishScheduledPayload is the asynq payload of a sweep task.
// A zero Now means "use the worker clock".
type PublishScheduledPayload struct {
	Now    time.Time `json:"now,omitempty"`
	BlogID string    `json:"blogId,omitempty"` // set for one-off tasks, informational only
}

// Identity is the authenticated caller of a request.
// It is resolved from the bearer token by the auth middleware and passed
// explicitly to every mutating service call.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

