package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/infrastructure/database"
	pkgdb "bloghub-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// blogColumns selects a post plus its likes aggregated as a JSON array.
const blogColumns = `
	b.id, b.slug, b.title, b.excerpt, b.content, b.author, b.tags, b.category,
	b.images, b.published, b.published_at, b.scheduled_for, b.views, b.comments,
	b.read_time, b.featured, b.seo, b.created_at, b.updated_at,
	COALESCE((
		SELECT json_agg(json_build_object('user', l.user_id, 'createdAt', l.created_at) ORDER BY l.created_at)
		FROM blog_likes l
		WHERE l.blog_id = b.id
	), '[]'::json)`

const authorColumns = `u.id, u.name, u.email, u.avatar, u.bio`

// ========================================
// CRUD
// ========================================

func (r *postgresRepository) Create(ctx context.Context, b *model.Blog) error {
	query := `
		INSERT INTO blogs (
			id, slug, title, excerpt, content, author, tags, category, images,
			published, published_at, scheduled_for, views, comments, read_time,
			featured, seo, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19
		)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Slug, b.Title, b.Excerpt, b.Content, b.Author, tagsParam(b.Tags), b.Category, imagesParam(b.Images),
		b.Published, b.PublishedAt, b.ScheduledFor, b.Views, b.Comments, b.ReadTime,
		b.Featured, b.SEO, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, "blogs_slug_key"):
			return model.ErrSlugExists
		case database.IsForeignKeyViolation(err):
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs b WHERE b.id = $1`
	return r.getOne(ctx, query, id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs b WHERE b.slug = $1`
	return r.getOne(ctx, query, slug)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg any) (*model.Blog, error) {
	var b model.Blog
	if err := r.pool.QueryRow(ctx, query, arg).Scan(blogDest(&b)...); err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrBlogNotFound
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}
	fillEmpty(&b)
	return &b, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Blog) error {
	query := `
		UPDATE blogs SET
			slug = $2, title = $3, excerpt = $4, content = $5, tags = $6,
			category = $7, images = $8, published = $9,
			published_at = COALESCE(published_at, $10),
			scheduled_for = $11, read_time = $12, featured = $13, seo = $14,
			updated_at = $15
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.Slug, b.Title, b.Excerpt, b.Content, tagsParam(b.Tags),
		b.Category, imagesParam(b.Images), b.Published,
		b.PublishedAt,
		b.ScheduledFor, b.ReadTime, b.Featured, b.SEO,
		b.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "blogs_slug_key") {
			return model.ErrSlugExists
		}
		return fmt.Errorf("update blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM blogs WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

// ========================================
// LISTS
// ========================================

func (r *postgresRepository) ListWithAuthors(ctx context.Context) ([]model.BlogWithAuthor, error) {
	query := `
		SELECT ` + blogColumns + `, ` + authorColumns + `
		FROM blogs b
		LEFT JOIN users u ON u.id = b.author
		ORDER BY b.created_at DESC
	`
	return r.queryWithAuthors(ctx, query)
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs b WHERE b.author = $1 ORDER BY b.created_at DESC`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("list blogs by author: %w", err)
	}
	defer rows.Close()

	blogs := make([]model.Blog, 0)
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(blogDest(&b)...); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		fillEmpty(&b)
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func (r *postgresRepository) Search(ctx context.Context, query string, limit int) ([]model.BlogWithAuthor, error) {
	sql := `
		SELECT ` + blogColumns + `, ` + authorColumns + `
		FROM blogs b
		LEFT JOIN users u ON u.id = b.author
		WHERE b.published = TRUE
		  AND b.search_vector @@ websearch_to_tsquery('simple', $1)
		ORDER BY ts_rank(b.search_vector, websearch_to_tsquery('simple', $1)) DESC, b.created_at DESC
		LIMIT $2
	`
	return r.queryWithAuthors(ctx, sql, query, limit)
}

func (r *postgresRepository) queryWithAuthors(ctx context.Context, query string, args ...any) ([]model.BlogWithAuthor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	out := make([]model.BlogWithAuthor, 0)
	for rows.Next() {
		var (
			item   model.BlogWithAuthor
			author nullableAuthor
		)
		dest := append(blogDest(&item.Blog), author.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		fillEmpty(&item.Blog)
		item.Author = author.summary()
		out = append(out, item)
	}
	return out, rows.Err()
}

// ========================================
// COUNTERS
// ========================================

// ToggleLike locks the post row so concurrent toggles by the same user
// serialize, then removes the like if present or adds it otherwise.
func (r *postgresRepository) ToggleLike(ctx context.Context, blogID, userID uuid.UUID, at time.Time) (*model.LikeResult, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.LikeResult, error) {
		var locked uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM blogs WHERE id = $1 FOR UPDATE`, blogID).Scan(&locked)
		if err != nil {
			if database.IsNoRows(err) {
				return nil, model.ErrBlogNotFound
			}
			return nil, fmt.Errorf("lock blog: %w", err)
		}

		result := &model.LikeResult{}
		tag, err := tx.Exec(ctx, `DELETE FROM blog_likes WHERE blog_id = $1 AND user_id = $2`, blogID, userID)
		if err != nil {
			return nil, fmt.Errorf("remove like: %w", err)
		}
		if tag.RowsAffected() == 0 {
			_, err = tx.Exec(ctx,
				`INSERT INTO blog_likes (blog_id, user_id, created_at) VALUES ($1, $2, $3)`,
				blogID, userID, at,
			)
			if err != nil {
				return nil, fmt.Errorf("add like: %w", err)
			}
			result.Liked = true
		}

		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM blog_likes WHERE blog_id = $1`, blogID).Scan(&result.Likes); err != nil {
			return nil, fmt.Errorf("count likes: %w", err)
		}
		return result, nil
	})
}

func (r *postgresRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	var views int
	err := r.pool.QueryRow(ctx, `UPDATE blogs SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	if err != nil {
		if database.IsNoRows(err) {
			return 0, model.ErrBlogNotFound
		}
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return views, nil
}

// ========================================
// SCHEDULED PUBLISHING
// ========================================

func (r *postgresRepository) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE blogs
		SET published = TRUE,
		    updated_at = $1,
		    published_at = COALESCE(published_at, $1)
		WHERE published = FALSE
		  AND scheduled_for IS NOT NULL
		  AND scheduled_for <= $1
	`

	tag, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("publish due blogs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) CountDue(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM blogs WHERE published = FALSE AND scheduled_for IS NOT NULL AND scheduled_for <= $1`,
		now,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count due blogs: %w", err)
	}
	return n, nil
}

// ========================================
// SCAN HELPERS
// ========================================

func blogDest(b *model.Blog) []any {
	return []any{
		&b.ID, &b.Slug, &b.Title, &b.Excerpt, &b.Content, &b.Author, &b.Tags, &b.Category,
		&b.Images, &b.Published, &b.PublishedAt, &b.ScheduledFor, &b.Views, &b.Comments,
		&b.ReadTime, &b.Featured, &b.SEO, &b.CreatedAt, &b.UpdatedAt,
		&b.Likes,
	}
}

// fillEmpty keeps empty array columns serialized as [] rather than null.
func fillEmpty(b *model.Blog) {
	if b.Tags == nil {
		b.Tags = []string{}
	}
	if b.Images == nil {
		b.Images = []model.Image{}
	}
	if b.Likes == nil {
		b.Likes = []model.Like{}
	}
}

// tagsParam avoids sending NULL for an empty tag list.
func tagsParam(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// imagesParam keeps the JSONB column an array even when no images are set.
func imagesParam(images []model.Image) []model.Image {
	if images == nil {
		return []model.Image{}
	}
	return images
}

// nullableAuthor receives the LEFT JOIN columns of a missing author.
type nullableAuthor struct {
	ID     *uuid.UUID
	Name   *string
	Email  *string
	Avatar *string
	Bio    *string
}

func (a *nullableAuthor) dest() []any {
	return []any{&a.ID, &a.Name, &a.Email, &a.Avatar, &a.Bio}
}

func (a *nullableAuthor) summary() *model.AuthorSummary {
	if a.ID == nil {
		return nil
	}
	return &model.AuthorSummary{
		ID:     *a.ID,
		Name:   deref(a.Name),
		Email:  deref(a.Email),
		Avatar: deref(a.Avatar),
		Bio:    deref(a.Bio),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
