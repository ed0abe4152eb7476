package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/domains/user"
	"bloghub-backend/pkg/cache"
)

func strPtr(s string) *string { return &s }

func TestPublicProfile_DropsCredentials(t *testing.T) {
	u := &user.User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: strPtr("$2a$10$secret"),
		GoogleID:     strPtr("google-123"),
		GithubID:     strPtr("github-456"),
		Followers:    []uuid.UUID{uuid.New()},
	}

	p := publicProfile(u)
	assert.Nil(t, p.PasswordHash)
	assert.Nil(t, p.GoogleID)
	assert.Nil(t, p.GithubID)
	assert.Equal(t, u.Followers, p.Followers)

	// Bản gốc không bị sửa
	assert.True(t, u.HasPassword())
	assert.Equal(t, "google-123", *u.GoogleID)

	// Giá trị lưu trong cache không chứa credential nào
	c := cache.NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, userCacheKey(u.ID), p, time.Minute))

	var raw map[string]interface{}
	found, err := c.Get(ctx, userCacheKey(u.ID), &raw)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Alice", raw["name"])
	for key, v := range raw {
		assert.NotContains(t, []string{"passwordHash", "googleId", "githubId"}, key)
		assert.NotEqual(t, "$2a$10$secret", v)
	}
}
