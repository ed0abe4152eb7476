package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/domains/blog/model"
)

func TestScanHelpers(t *testing.T) {
	var b model.Blog
	dest := blogDest(&b)
	require.Len(t, dest, 20)
	assert.Same(t, &b.Tags, dest[6])

	fillEmpty(&b)
	assert.Equal(t, []string{}, b.Tags)
	assert.Equal(t, []model.Image{}, b.Images)
	assert.Equal(t, []model.Like{}, b.Likes)

	assert.Equal(t, []string{}, tagsParam(nil))
	assert.Equal(t, []string{"go"}, tagsParam([]string{"go"}))
}

func TestNullableAuthor(t *testing.T) {
	var missing nullableAuthor
	assert.Len(t, missing.dest(), 5)
	assert.Nil(t, missing.summary())

	id := uuid.New()
	name := "Alice"
	present := nullableAuthor{ID: &id, Name: &name}
	assert.Equal(t, &model.AuthorSummary{ID: id, Name: "Alice"}, present.summary())
}
