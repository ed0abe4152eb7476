package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/repository"
	"bloghub-backend/internal/shared"
	"bloghub-backend/internal/shared/apperror"
	"bloghub-backend/internal/shared/utils"
)

type blogService struct {
	repo     repository.RepositoryInterface
	enqueuer PublishEnqueuer // optional
	now      func() time.Time
	randIntn func(n int) int
}

// NewBlogService creates the blog service. enqueuer may be nil, in which case
// scheduled posts rely on the periodic sweep alone.
func NewBlogService(repo repository.RepositoryInterface, enqueuer PublishEnqueuer) ServiceInterface {
	return &blogService{
		repo:     repo,
		enqueuer: enqueuer,
		now:      time.Now,
		randIntn: rand.IntN,
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *blogService) Create(ctx context.Context, identity shared.Identity, req model.CreateBlogRequest) (*model.Blog, error) {
	// 1. Author mặc định là caller
	if strings.TrimSpace(req.Author) == "" {
		req.Author = identity.UserID.String()
	}

	// 2. Validate input
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	authorID, err := uuid.Parse(req.Author)
	if err != nil {
		return nil, model.ErrInvalidAuthorID
	}
	if authorID != identity.UserID {
		return nil, model.ErrAuthorMismatch
	}

	// 3. The client-supplied slug must not already be taken
	requested := utils.GenerateSlug(req.Slug)
	if requested == "" {
		return nil, model.ErrInvalidSlugInput
	}
	taken, err := s.repo.SlugExists(ctx, requested, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, model.ErrSlugExists
	}

	// 4. The stored slug is always derived from the title
	title := strings.TrimSpace(req.Title)
	slug, err := s.deriveSlug(ctx, title, uuid.Nil)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	blog := &model.Blog{
		ID:        uuid.New(),
		Slug:      slug,
		Title:     title,
		Excerpt:   strings.TrimSpace(req.Excerpt),
		Content:   req.Content,
		Author:    authorID,
		Tags:      utils.NormalizeTags(req.Tags),
		Category:  strings.TrimSpace(req.Category),
		Images:    req.Images,
		Featured:  req.Featured,
		ReadTime:  model.CalculateReadTime(req.Content),
		Likes:     []model.Like{},
		CreatedAt: req.CreatedAt.UTC(),
		UpdatedAt: now,
	}
	if req.SEO != nil {
		blog.SEO = *req.SEO
	}
	if req.ScheduledFor != nil {
		at := req.ScheduledFor.UTC()
		blog.ScheduledFor = &at
	}
	if req.Published {
		blog.MarkPublished(now)
	}

	// 5. Persist
	if err := s.repo.Create(ctx, blog); err != nil {
		if errors.Is(err, model.ErrSlugExists) || errors.Is(err, model.ErrAuthorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create blog: %w", err)
	}

	log.Info().
		Str("blog_id", blog.ID.String()).
		Str("slug", blog.Slug).
		Bool("published", blog.Published).
		Msg("Blog created")

	s.schedulePublish(ctx, blog, now)
	return blog, nil
}

// =====================================================
// READS
// =====================================================

func (s *blogService) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	blogID, err := parseBlogID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, blogID)
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, model.ErrBlogNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

// GetAll returns an empty list, not an error, when there are no posts.
func (s *blogService) GetAll(ctx context.Context) ([]model.BlogWithAuthor, error) {
	blogs, err := s.repo.ListWithAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

func (s *blogService) GetByAuthor(ctx context.Context, authorID string) ([]model.Blog, error) {
	id, err := uuid.Parse(authorID)
	if err != nil {
		return nil, model.ErrInvalidAuthorID
	}

	blogs, err := s.repo.ListByAuthor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list blogs by author: %w", err)
	}
	if len(blogs) == 0 {
		return nil, model.ErrNoAuthorBlogs
	}
	return blogs, nil
}

func (s *blogService) Search(ctx context.Context, query string, limit int) ([]model.BlogWithAuthor, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.ErrEmptySearchQuery
	}

	switch {
	case limit <= 0:
		limit = model.DefaultSearchLimit
	case limit > model.MaxSearchLimit:
		limit = model.MaxSearchLimit
	}

	blogs, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search blogs: %w", err)
	}
	return blogs, nil
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (s *blogService) Update(ctx context.Context, identity shared.Identity, id string, req model.UpdateBlogRequest) (*model.Blog, error) {
	blogID, err := parseBlogID(id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}
	if !req.HasChanges() {
		return nil, model.ErrNothingToUpdate
	}

	blog, err := s.repo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !blog.IsAuthoredBy(identity.UserID) {
		return nil, model.ErrNotAuthor
	}

	now := s.now().UTC()

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != blog.Title {
			slug, err := s.deriveSlug(ctx, title, blog.ID)
			if err != nil {
				return nil, err
			}
			blog.Title = title
			blog.Slug = slug
		}
	}
	if req.Content != nil && *req.Content != blog.Content {
		blog.Content = *req.Content
		blog.ReadTime = model.CalculateReadTime(blog.Content)
	}
	if req.Excerpt != nil {
		blog.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Tags != nil {
		blog.Tags = utils.NormalizeTags(*req.Tags)
	}
	if req.Category != nil {
		blog.Category = strings.TrimSpace(*req.Category)
	}
	if req.Images != nil {
		blog.Images = *req.Images
	}
	if req.Featured != nil {
		blog.Featured = *req.Featured
	}
	if req.SEO != nil {
		blog.SEO = *req.SEO
	}
	if req.ScheduledFor != nil {
		at := req.ScheduledFor.UTC()
		blog.ScheduledFor = &at
	}
	if req.ClearSchedule {
		// Task đã enqueue vẫn chạy nhưng sweep sẽ bỏ qua post này
		blog.ScheduledFor = nil
	}
	if req.Published != nil {
		if *req.Published {
			blog.MarkPublished(now)
		} else {
			// publishedAt is kept: it records the first publication
			blog.Published = false
		}
	}
	blog.UpdatedAt = now

	if err := s.repo.Update(ctx, blog); err != nil {
		if errors.Is(err, model.ErrBlogNotFound) || errors.Is(err, model.ErrSlugExists) {
			return nil, err
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}

	if req.ScheduledFor != nil {
		s.schedulePublish(ctx, blog, now)
	}
	return blog, nil
}

func (s *blogService) Delete(ctx context.Context, identity shared.Identity, id string) error {
	blogID, err := parseBlogID(id)
	if err != nil {
		return err
	}

	blog, err := s.repo.GetByID(ctx, blogID)
	if err != nil {
		return err
	}
	if !blog.IsAuthoredBy(identity.UserID) {
		return model.ErrNotAuthor
	}

	if err := s.repo.Delete(ctx, blogID); err != nil {
		if errors.Is(err, model.ErrBlogNotFound) {
			return err
		}
		return fmt.Errorf("delete blog: %w", err)
	}

	log.Info().Str("blog_id", blogID.String()).Msg("Blog deleted")
	return nil
}

// =====================================================
// ENGAGEMENT
// =====================================================

func (s *blogService) ToggleLike(ctx context.Context, identity shared.Identity, id string) (*model.LikeResult, error) {
	blogID, err := parseBlogID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.ToggleLike(ctx, blogID, identity.UserID, s.now().UTC())
	if err != nil {
		if errors.Is(err, model.ErrBlogNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	return res, nil
}

func (s *blogService) RecordView(ctx context.Context, id string) (*model.ViewResult, error) {
	blogID, err := parseBlogID(id)
	if err != nil {
		return nil, err
	}

	views, err := s.repo.IncrementViews(ctx, blogID)
	if err != nil {
		if errors.Is(err, model.ErrBlogNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("record view: %w", err)
	}
	return &model.ViewResult{Views: views}, nil
}

// =====================================================
// HELPERS
// =====================================================

// deriveSlug slugifies title. If another post already holds the slug a
// random suffix in [0, SlugSuffixRange) is appended once; a second collision
// surfaces as ErrSlugExists from the store.
func (s *blogService) deriveSlug(ctx context.Context, title string, selfID uuid.UUID) (string, error) {
	slug := utils.GenerateSlug(title)
	if slug == "" {
		return "", model.ErrEmptySlug
	}

	exists, err := s.repo.SlugExists(ctx, slug, selfID)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if exists {
		slug = utils.SuffixSlug(slug, s.randIntn(model.SlugSuffixRange))
	}
	return slug, nil
}

// schedulePublish enqueues a one-off sweep at the post's scheduled time.
// Failures are logged only; the periodic sweep still picks the post up.
func (s *blogService) schedulePublish(ctx context.Context, blog *model.Blog, now time.Time) {
	if s.enqueuer == nil || blog.Published || blog.ScheduledFor == nil || !blog.ScheduledFor.After(now) {
		return
	}
	if err := s.enqueuer.EnqueuePublishAt(ctx, blog.ID, *blog.ScheduledFor); err != nil {
		log.Warn().
			Err(err).
			Str("blog_id", blog.ID.String()).
			Time("scheduled_for", *blog.ScheduledFor).
			Msg("Failed to enqueue scheduled publish")
	}
}

func parseBlogID(id string) (uuid.UUID, error) {
	blogID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, model.ErrInvalidBlogID
	}
	return blogID, nil
}
