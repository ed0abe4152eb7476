package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
)

// memoryRepo mirrors the Postgres repository semantics closely enough for
// service tests: unique slugs, monotonic published_at, predicate sweep.
type memoryRepo struct {
	mu    sync.Mutex
	blogs map[uuid.UUID]model.Blog
	likes map[uuid.UUID]map[uuid.UUID]time.Time
	users map[uuid.UUID]model.AuthorSummary
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		blogs: map[uuid.UUID]model.Blog{},
		likes: map[uuid.UUID]map[uuid.UUID]time.Time{},
		users: map[uuid.UUID]model.AuthorSummary{},
	}
}

func (m *memoryRepo) Create(_ context.Context, b *model.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.blogs {
		if existing.Slug == b.Slug {
			return model.ErrSlugExists
		}
	}
	m.blogs[b.ID] = *b
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blogs[id]
	if !ok {
		return nil, model.ErrBlogNotFound
	}
	return &b, nil
}

func (m *memoryRepo) GetBySlug(_ context.Context, slug string) (*model.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.blogs {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, model.ErrBlogNotFound
}

func (m *memoryRepo) Update(_ context.Context, b *model.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.blogs[b.ID]
	if !ok {
		return model.ErrBlogNotFound
	}
	for id, other := range m.blogs {
		if id != b.ID && other.Slug == b.Slug {
			return model.ErrSlugExists
		}
	}
	updated := *b
	if existing.PublishedAt != nil {
		updated.PublishedAt = existing.PublishedAt
	}
	m.blogs[b.ID] = updated
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blogs[id]; !ok {
		return model.ErrBlogNotFound
	}
	delete(m.blogs, id)
	delete(m.likes, id)
	return nil
}

func (m *memoryRepo) SlugExists(_ context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, b := range m.blogs {
		if b.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) sorted(filter func(model.Blog) bool) []model.Blog {
	out := make([]model.Blog, 0)
	for _, b := range m.blogs {
		if filter(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memoryRepo) withAuthors(blogs []model.Blog) []model.BlogWithAuthor {
	out := make([]model.BlogWithAuthor, 0, len(blogs))
	for _, b := range blogs {
		item := model.BlogWithAuthor{Blog: b}
		if a, ok := m.users[b.Author]; ok {
			a := a
			item.Author = &a
		}
		out = append(out, item)
	}
	return out
}

func (m *memoryRepo) ListWithAuthors(context.Context) ([]model.BlogWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.withAuthors(m.sorted(func(model.Blog) bool { return true })), nil
}

func (m *memoryRepo) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]model.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(b model.Blog) bool { return b.Author == authorID }), nil
}

func (m *memoryRepo) Search(_ context.Context, query string, limit int) ([]model.BlogWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	hits := m.sorted(func(b model.Blog) bool {
		return b.Published && (strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Excerpt), q) ||
			strings.Contains(strings.Join(b.Tags, " "), q))
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return m.withAuthors(hits), nil
}

func (m *memoryRepo) ToggleLike(_ context.Context, blogID, userID uuid.UUID, at time.Time) (*model.LikeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blogs[blogID]; !ok {
		return nil, model.ErrBlogNotFound
	}
	if m.likes[blogID] == nil {
		m.likes[blogID] = map[uuid.UUID]time.Time{}
	}
	res := &model.LikeResult{}
	if _, liked := m.likes[blogID][userID]; liked {
		delete(m.likes[blogID], userID)
	} else {
		m.likes[blogID][userID] = at
		res.Liked = true
	}
	res.Likes = len(m.likes[blogID])
	return res, nil
}

func (m *memoryRepo) IncrementViews(_ context.Context, id uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blogs[id]
	if !ok {
		return 0, model.ErrBlogNotFound
	}
	b.Views++
	m.blogs[id] = b
	return b.Views, nil
}

func (m *memoryRepo) PublishDue(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, b := range m.blogs {
		if b.IsDueAt(now) {
			b.MarkPublished(now)
			b.UpdatedAt = now
			m.blogs[id] = b
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) CountDue(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.blogs {
		if b.IsDueAt(now) {
			n++
		}
	}
	return n, nil
}
