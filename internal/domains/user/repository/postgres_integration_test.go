//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/domains/user"
	"bloghub-backend/internal/infrastructure/database"
	"bloghub-backend/pkg/cache"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE blog_likes, blogs, users CASCADE`)
	require.NoError(t, err)
	return pool
}

func newUser(email string) *user.User {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return &user.User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        email,
		PasswordHash: strPtr("$2a$10$hash"),
		GoogleID:     strPtr("google-" + email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPostgresRepository_FindByIDArraysAndCache(t *testing.T) {
	pool := newTestPool(t)
	mem := cache.NewMemoryCache()
	repo := NewPostgresRepository(pool, mem)
	ctx := context.Background()

	u := newUser("alice@example.com")
	require.NoError(t, repo.Create(ctx, u))

	followers := []uuid.UUID{uuid.New(), uuid.New()}
	bookmarks := []uuid.UUID{uuid.New()}
	_, err := pool.Exec(ctx,
		`UPDATE users SET followers = $2, bookmarks = $3 WHERE id = $1`,
		u.ID, followers, bookmarks,
	)
	require.NoError(t, err)

	// Lần đầu đọc từ DB: có đủ credential
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, followers, got.Followers)
	assert.Empty(t, got.Following)
	assert.Equal(t, bookmarks, got.Bookmarks)
	assert.True(t, got.HasPassword())
	assert.True(t, mem.Has(userCacheKey(u.ID)))

	// Lần hai từ cache: chỉ có public fields
	cached, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, followers, cached.Followers)
	assert.Nil(t, cached.PasswordHash)
	assert.Nil(t, cached.GoogleID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestPostgresRepository_FindByEmail(t *testing.T) {
	pool := newTestPool(t)
	repo := NewPostgresRepository(pool, cache.NewMemoryCache())
	ctx := context.Background()

	u := newUser("bob@example.com")
	require.NoError(t, repo.Create(ctx, u))
	dup := newUser("bob@example.com")
	dup.GoogleID = nil
	assert.ErrorIs(t, repo.Create(ctx, dup), user.ErrEmailAlreadyExists)

	got, err := repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	require.NotNil(t, got.PasswordHash)
	assert.Equal(t, "$2a$10$hash", *got.PasswordHash)
	assert.Empty(t, got.Followers)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestPostgresRepository_UpdateProfileEvictsCache(t *testing.T) {
	pool := newTestPool(t)
	mem := cache.NewMemoryCache()
	repo := NewPostgresRepository(pool, mem)
	ctx := context.Background()

	u := newUser("carol@example.com")
	require.NoError(t, repo.Create(ctx, u))
	_, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, mem.Has(userCacheKey(u.ID)))

	u.Name = "Carol"
	u.Bio = "writer"
	require.NoError(t, repo.UpdateProfile(ctx, u))
	assert.False(t, mem.Has(userCacheKey(u.ID)))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carol", got.Name)
	assert.Equal(t, "writer", got.Bio)

	ghost := newUser("ghost@example.com")
	assert.ErrorIs(t, repo.UpdateProfile(ctx, ghost), user.ErrUserNotFound)
}

func TestPostgresRepository_CreateRequiresAuthPath(t *testing.T) {
	pool := newTestPool(t)
	repo := NewPostgresRepository(pool, cache.NewMemoryCache())

	u := newUser("dave@example.com")
	u.PasswordHash = nil
	u.GoogleID = nil
	assert.ErrorIs(t, repo.Create(context.Background(), u), user.ErrNoAuthPath)
}
