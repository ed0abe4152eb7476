package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateBlogRequest - POST /blog/create
type CreateBlogRequest struct {
	Title        string     `json:"title"`
	Excerpt      string     `json:"excerpt"`
	Content      string     `json:"content"`
	Author       string     `json:"author"`
	Tags         []string   `json:"tags"`
	Category     string     `json:"category"`
	Slug         string     `json:"slug"`
	Published    bool       `json:"published"`
	ScheduledFor *time.Time `json:"scheduledFor"`
	CreatedAt    *time.Time `json:"createdAt"`
	Images       []Image    `json:"images"`
	Featured     bool       `json:"featured"`
	SEO          *SEO       `json:"seo"`
}

func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.By(notBlank), validation.By(runeMax(200))),
		validation.Field(&r.Excerpt, validation.Required, validation.By(runeMax(300))),
		validation.Field(&r.Content, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Author, validation.Required, is.UUID),
		validation.Field(&r.Tags, validation.Required, validation.Each(validation.Length(0, 50))),
		validation.Field(&r.Category, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Slug, validation.Required),
		validation.Field(&r.CreatedAt, validation.NotNil),
		validation.Field(&r.Images, validation.Length(0, MaxImages)),
	)
}

// UpdateBlogRequest - PATCH /blog/:id. Nil fields are left untouched.
// ClearSchedule removes a pending schedule; it cannot be combined with
// ScheduledFor.
type UpdateBlogRequest struct {
	Title         *string    `json:"title,omitempty"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	Content       *string    `json:"content,omitempty"`
	Tags          *[]string  `json:"tags,omitempty"`
	Category      *string    `json:"category,omitempty"`
	Images        *[]Image   `json:"images,omitempty"`
	Published     *bool      `json:"published,omitempty"`
	ScheduledFor  *time.Time `json:"scheduledFor,omitempty"`
	ClearSchedule bool       `json:"clearSchedule,omitempty"`
	Featured      *bool      `json:"featured,omitempty"`
	SEO           *SEO       `json:"seo,omitempty"`
}

func (r UpdateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.By(notBlank), validation.By(runeMax(200))),
		validation.Field(&r.Excerpt, validation.By(runeMax(300))),
		validation.Field(&r.Content, validation.NilOrNotEmpty, validation.By(notBlank)),
		validation.Field(&r.Images, validation.By(func(v interface{}) error {
			if imgs, ok := v.(*[]Image); ok && imgs != nil && len(*imgs) > MaxImages {
				return validation.NewError("validation_too_many_images", "too many images")
			}
			return nil
		})),
		validation.Field(&r.ClearSchedule, validation.When(r.ScheduledFor != nil, validation.Empty.Error("cannot be combined with scheduledFor"))),
	)
}

func (r UpdateBlogRequest) HasChanges() bool {
	return r.Title != nil || r.Excerpt != nil || r.Content != nil || r.Tags != nil ||
		r.Category != nil || r.Images != nil || r.Published != nil ||
		r.ScheduledFor != nil || r.ClearSchedule || r.Featured != nil || r.SEO != nil
}

func (i Image) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.URL, validation.Required, is.URL),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

type ViewResult struct {
	Views int `json:"views"`
}

// =====================================================
// RULES
// =====================================================

func notBlank(value interface{}) error {
	iv, _ := validation.Indirect(value)
	s, ok := iv.(string)
	if ok && s != "" && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

func runeMax(max int) validation.RuleFunc {
	return func(value interface{}) error {
		iv, _ := validation.Indirect(value)
		s, _ := iv.(string)
		if len([]rune(strings.TrimSpace(s))) > max {
			return validation.NewError("validation_length_too_long", "the length must be no more than {{.max}}").
				SetParams(map[string]interface{}{"max": max})
		}
		return nil
	}
}
