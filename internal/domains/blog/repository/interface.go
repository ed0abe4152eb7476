package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
)

// =====================================================
// BLOG REPOSITORY INTERFACE
// =====================================================

type RepositoryInterface interface {
	// ========================================
	// CRUD Operations
	// ========================================

	// Create inserts a post. Returns ErrSlugExists on a slug unique violation
	// and ErrAuthorNotFound when the author does not exist.
	Create(ctx context.Context, blog *model.Blog) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*model.Blog, error)

	// Update writes every mutable column of the post.
	Update(ctx context.Context, blog *model.Blog) error

	// Delete hard-deletes the post; likes cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// SlugExists reports whether a post other than excludeID holds slug.
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// ========================================
	// LIST Operations
	// ========================================

	// ListWithAuthors returns every post joined with its author, newest first.
	ListWithAuthors(ctx context.Context) ([]model.BlogWithAuthor, error)

	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Blog, error)

	// Search runs a ranked full-text query over published posts.
	Search(ctx context.Context, query string, limit int) ([]model.BlogWithAuthor, error)

	// ========================================
	// COUNTERS
	// ========================================

	ToggleLike(ctx context.Context, blogID, userID uuid.UUID, at time.Time) (*model.LikeResult, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (int, error)

	// ========================================
	// SCHEDULED PUBLISHING
	// ========================================

	// PublishDue flips every unpublished post with scheduled_for <= now in a
	// single statement and returns the number of rows changed.
	PublishDue(ctx context.Context, now time.Time) (int64, error)

	// CountDue counts what PublishDue would change, without writing.
	CountDue(ctx context.Context, now time.Time) (int64, error)
}
