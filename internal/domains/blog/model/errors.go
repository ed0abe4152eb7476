package model

import "bloghub-backend/internal/shared/apperror"

// Error codes
const (
	ErrCodeBlogNotFound     = "BLOG001"
	ErrCodeSlugExists       = "BLOG002"
	ErrCodeNotAuthor        = "BLOG003"
	ErrCodeAuthorMismatch   = "BLOG004"
	ErrCodeEmptySlug        = "BLOG005"
	ErrCodeNoAuthorBlogs    = "BLOG006"
	ErrCodeEmptyQuery       = "BLOG007"
	ErrCodeNothingToUpdate  = "BLOG008"
	ErrCodeAuthorNotFound   = "BLOG009"
	ErrCodeInvalidSlugInput = "BLOG010"
)

var (
	ErrBlogNotFound     = apperror.NotFound(ErrCodeBlogNotFound, "Blog not found")
	ErrSlugExists       = apperror.Conflict(ErrCodeSlugExists, "Slug already exists")
	ErrNotAuthor        = apperror.Forbidden(ErrCodeNotAuthor, "Only the author can modify this blog")
	ErrAuthorMismatch   = apperror.Forbidden(ErrCodeAuthorMismatch, "Author must be the authenticated user")
	ErrEmptySlug        = apperror.Validation(ErrCodeEmptySlug, "Title must contain at least one letter or digit")
	ErrNoAuthorBlogs    = apperror.NotFound(ErrCodeNoAuthorBlogs, "No blogs found for this author")
	ErrEmptySearchQuery = apperror.Validation(ErrCodeEmptyQuery, "Search query is required")
	ErrNothingToUpdate  = apperror.Validation(ErrCodeNothingToUpdate, "No fields to update")
	ErrAuthorNotFound   = apperror.NotFound(ErrCodeAuthorNotFound, "Author not found")
	ErrInvalidSlugInput = apperror.Validation(ErrCodeInvalidSlugInput, "Slug must contain at least one letter or digit")

	ErrInvalidBlogID   = apperror.InvalidArgument(apperror.CodeInvalidID, "Invalid blog id")
	ErrInvalidAuthorID = apperror.InvalidArgument(apperror.CodeInvalidID, "Invalid author id")
)
