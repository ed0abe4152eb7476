package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/pkg/cache"
)

// cachedRepository adds a cache-aside layer for single post reads in front
// of another RepositoryInterface. Every write that can change a cached post
// evicts its key.
type cachedRepository struct {
	RepositoryInterface
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRepository(inner RepositoryInterface, c cache.Cache) RepositoryInterface {
	return &cachedRepository{
		RepositoryInterface: inner,
		cache:               c,
		ttl:                 model.CacheTTL,
	}
}

func (r *cachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	key := model.CacheKey(id)

	var cached model.Blog
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	}

	b, err := r.RepositoryInterface.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, b, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	return b, nil
}

func (r *cachedRepository) Update(ctx context.Context, b *model.Blog) error {
	if err := r.RepositoryInterface.Update(ctx, b); err != nil {
		return err
	}
	r.evict(ctx, b.ID)
	return nil
}

func (r *cachedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.RepositoryInterface.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *cachedRepository) ToggleLike(ctx context.Context, blogID, userID uuid.UUID, at time.Time) (*model.LikeResult, error) {
	res, err := r.RepositoryInterface.ToggleLike(ctx, blogID, userID, at)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, blogID)
	return res, nil
}

func (r *cachedRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	views, err := r.RepositoryInterface.IncrementViews(ctx, id)
	if err != nil {
		return 0, err
	}
	r.evict(ctx, id)
	return views, nil
}

// PublishDue does not know which rows it touched, so a non-zero sweep drops
// every cached post.
func (r *cachedRepository) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.RepositoryInterface.PublishDue(ctx, now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if err := r.cache.DeletePattern(ctx, model.CacheKeyPrefix+"*"); err != nil {
			log.Warn().Err(err).Msg("cache invalidation after sweep failed")
		}
	}
	return n, nil
}

func (r *cachedRepository) evict(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, model.CacheKey(id)); err != nil {
		log.Warn().Err(err).Str("blog_id", id.String()).Msg("cache invalidation failed")
	}
}
