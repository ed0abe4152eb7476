package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/shared"
)

// ServiceInterface defines blog business operations
type ServiceInterface interface {
	// ========================================
	// POSTS
	// ========================================
	Create(ctx context.Context, identity shared.Identity, req model.CreateBlogRequest) (*model.Blog, error)
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*model.Blog, error)
	GetAll(ctx context.Context) ([]model.BlogWithAuthor, error)
	GetByAuthor(ctx context.Context, authorID string) ([]model.Blog, error)
	Search(ctx context.Context, query string, limit int) ([]model.BlogWithAuthor, error)
	Update(ctx context.Context, identity shared.Identity, id string, req model.UpdateBlogRequest) (*model.Blog, error)
	Delete(ctx context.Context, identity shared.Identity, id string) error

	// ========================================
	// ENGAGEMENT
	// ========================================
	ToggleLike(ctx context.Context, identity shared.Identity, id string) (*model.LikeResult, error)
	RecordView(ctx context.Context, id string) (*model.ViewResult, error)

	// ========================================
	// SCHEDULED PUBLISHING
	// ========================================

	// PublishScheduled promotes every post due at now. One store call; no loop.
	PublishScheduled(ctx context.Context, now time.Time) (*model.SweepResult, error)
	CountScheduledDue(ctx context.Context, now time.Time) (int64, error)
}

// PublishEnqueuer schedules a one-off sweep for a post's publish time.
// Implemented by the asynq client in infrastructure/queue.
type PublishEnqueuer interface {
	EnqueuePublishAt(ctx context.Context, blogID uuid.UUID, at time.Time) error
}
