package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/user"
	"bloghub-backend/internal/infrastructure/database"
	"bloghub-backend/pkg/cache"
)

const userCacheTTL = 15 * time.Minute

// postgresRepository là concrete implementation của user.Repository interface
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository trả về interface để caller không phụ thuộc implementation
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const userColumns = `
	id, name, email, password_hash, avatar, bio, google_id, github_id,
	is_verified, followers, following, bookmarks, created_at, updated_at`

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	if !u.HasAuthPath() {
		return user.ErrNoAuthPath
	}

	query := `
		INSERT INTO users (
			id, name, email, password_hash, avatar, bio,
			google_id, github_id, is_verified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Avatar,
		u.Bio,
		u.GoogleID,
		u.GithubID,
		u.IsVerified,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "users_email_key") {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// FindByID tìm user theo UUID với Redis caching (cache-aside)
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	cacheKey := userCacheKey(id)

	var cached user.User
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, publicProfile(u), userCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("cache set failed")
	}

	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, bio = $4, avatar = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, u.ID, u.Name, u.Email, u.Bio, u.Avatar, u.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "users_email_key") {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	// Invalidate cache sau khi update
	if err := r.cache.Delete(ctx, userCacheKey(u.ID)); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("cache invalidation failed")
	}
	return nil
}

// ========================================
// HELPERS
// ========================================

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Avatar,
		&u.Bio,
		&u.GoogleID,
		&u.GithubID,
		&u.IsVerified,
		&u.Followers,
		&u.Following,
		&u.Bookmarks,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// publicProfile là bản copy không có password hash và third-party ids.
// Chỉ bản này được ghi vào Redis.
func publicProfile(u *user.User) user.User {
	p := *u
	p.PasswordHash = nil
	p.GoogleID = nil
	p.GithubID = nil
	return p
}
