package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =====================================================
// BLOG ENTITY
// =====================================================

type Blog struct {
	ID           uuid.UUID  `json:"id"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Excerpt      string     `json:"excerpt"`
	Content      string     `json:"content"`
	Author       uuid.UUID  `json:"author"`
	Tags         []string   `json:"tags"`
	Category     string     `json:"category"`
	Images       []Image    `json:"images"`
	Published    bool       `json:"published"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	Views        int        `json:"views"`
	Likes        []Like     `json:"likes"`
	Comments     int        `json:"comments"`
	ReadTime     int        `json:"readTime"`
	Featured     bool       `json:"featured"`
	SEO          SEO        `json:"seo"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type SEO struct {
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

type Like struct {
	User      uuid.UUID `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthorSummary is the public part of a user profile embedded in post reads.
type AuthorSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Bio    string    `json:"bio"`
}

// BlogWithAuthor is a post joined with its author. Author is nil when the
// referenced user no longer exists.
type BlogWithAuthor struct {
	Blog
	Author *AuthorSummary `json:"author"`
}

// IsDueAt reports whether the sweep would publish this post at now.
func (b *Blog) IsDueAt(now time.Time) bool {
	return !b.Published && b.ScheduledFor != nil && !b.ScheduledFor.After(now)
}

// MarkPublished flips the flag and stamps PublishedAt the first time only.
func (b *Blog) MarkPublished(now time.Time) {
	b.Published = true
	if b.PublishedAt == nil {
		t := now
		b.PublishedAt = &t
	}
}

func (b *Blog) IsAuthoredBy(userID uuid.UUID) bool {
	return b.Author == userID
}

// CacheKey returns the Redis key of a post: "blog:<id>".
func CacheKey(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", CacheKeyPrefix, id.String())
}

// =====================================================
// DERIVED FIELDS
// =====================================================

// WordCount counts whitespace separated runs.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// CalculateReadTime = max(1, ceil(words / WordsPerMinute))
func CalculateReadTime(content string) int {
	words := WordCount(content)
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// =====================================================
// SWEEP RESULT
// =====================================================

// SweepResult is the payload returned by every sweep trigger.
type SweepResult struct {
	Success        bool   `json:"success"`
	PublishedCount int64  `json:"publishedCount"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
	DryRun         bool   `json:"dryRun,omitempty"`
}

func NewSweepResult(count int64) *SweepResult {
	return &SweepResult{
		Success:        true,
		PublishedCount: count,
		Message:        fmt.Sprintf("Published %d scheduled blog(s).", count),
	}
}

func NewSweepFailure(message string) *SweepResult {
	return &SweepResult{Success: false, Error: message}
}
