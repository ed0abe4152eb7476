package model

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCalculateReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 1},
		{"one word", "hello", 1},
		{"exactly 200", strings.Repeat("word ", 200), 1},
		{"201 words", strings.Repeat("word ", 201), 2},
		{"400 words", strings.Repeat("w ", 400), 2},
		{"mixed whitespace", "a\tb\nc   d", 1},
		{"1001 words", strings.Repeat("x\n", 1001), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateReadTime(tt.content))
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount("  one two\tthree\n"))
}

func TestMarkPublished_StampsOnce(t *testing.T) {
	b := &Blog{}
	first := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	b.MarkPublished(first)
	assert.True(t, b.Published)
	assert.Equal(t, first, *b.PublishedAt)

	b.Published = false
	b.MarkPublished(first.Add(time.Hour))
	assert.Equal(t, first, *b.PublishedAt)
}

func TestIsDueAt(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&Blog{ScheduledFor: &past}).IsDueAt(now))
	assert.True(t, (&Blog{ScheduledFor: &now}).IsDueAt(now))
	assert.False(t, (&Blog{ScheduledFor: &future}).IsDueAt(now))
	assert.False(t, (&Blog{}).IsDueAt(now))
	assert.False(t, (&Blog{Published: true, ScheduledFor: &past}).IsDueAt(now))
}

func TestNewSweepResult(t *testing.T) {
	r := NewSweepResult(3)
	assert.True(t, r.Success)
	assert.Equal(t, "Published 3 scheduled blog(s).", r.Message)
}

func TestCacheKey(t *testing.T) {
	id := uuid.MustParse("3f1c2a7e-8d7b-4b51-9a51-0c4f7f1b2c3d")
	assert.Equal(t, "blog:3f1c2a7e-8d7b-4b51-9a51-0c4f7f1b2c3d", CacheKey(id))
}

func TestCreateBlogRequestValidate(t *testing.T) {
	now := time.Now()
	valid := CreateBlogRequest{
		Title: "Hello", Excerpt: "short", Content: "body", Author: uuid.NewString(),
		Tags: []string{"go"}, Category: "tech", Slug: "hello", CreatedAt: &now,
	}
	assert.NoError(t, valid.Validate())

	missing := []func(r *CreateBlogRequest){
		func(r *CreateBlogRequest) { r.Title = "" },
		func(r *CreateBlogRequest) { r.Title = "   " },
		func(r *CreateBlogRequest) { r.Excerpt = "" },
		func(r *CreateBlogRequest) { r.Content = "" },
		func(r *CreateBlogRequest) { r.Author = "" },
		func(r *CreateBlogRequest) { r.Author = "not-an-id" },
		func(r *CreateBlogRequest) { r.Tags = nil },
		func(r *CreateBlogRequest) { r.Tags = []string{} },
		func(r *CreateBlogRequest) { r.Category = "" },
		func(r *CreateBlogRequest) { r.Slug = "" },
		func(r *CreateBlogRequest) { r.CreatedAt = nil },
		func(r *CreateBlogRequest) { r.Title = strings.Repeat("t", 201) },
		func(r *CreateBlogRequest) { r.Images = []Image{{URL: "not a url"}} },
	}
	for i, mutate := range missing {
		r := valid
		mutate(&r)
		assert.Error(t, r.Validate(), "case %d", i)
	}
}

func TestUpdateBlogRequest(t *testing.T) {
	assert.False(t, UpdateBlogRequest{}.HasChanges())

	empty := ""
	assert.Error(t, UpdateBlogRequest{Title: &empty}.Validate())

	title := "New"
	req := UpdateBlogRequest{Title: &title}
	assert.True(t, req.HasChanges())
	assert.NoError(t, req.Validate())
}

func TestUpdateBlogRequest_ClearSchedule(t *testing.T) {
	req := UpdateBlogRequest{ClearSchedule: true}
	assert.True(t, req.HasChanges())
	assert.NoError(t, req.Validate())

	at := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	both := UpdateBlogRequest{ScheduledFor: &at, ClearSchedule: true}
	assert.Error(t, both.Validate())
}
