package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/service"
	"bloghub-backend/internal/shared/middleware"
	"bloghub-backend/internal/shared/response"
)

// =====================================================
// BLOG HANDLER
// =====================================================

type BlogHandler struct {
	blogService service.ServiceInterface
}

func NewBlogHandler(blogService service.ServiceInterface) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
	}
}

// =====================================================
// WRITE ENDPOINTS (auth)
// =====================================================

// Create tạo blog mới
// POST /blog/create
func (h *BlogHandler) Create(c *gin.Context) {
	// Step 1: Identity từ auth middleware
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Bind request body
	var req model.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 3: Call service (validation happens there)
	blog, err := h.blogService.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/blog/"+blog.ID.String())
	response.Success(c, http.StatusCreated, "Blog created successfully", blog)
}

// Update sửa blog, chỉ author được phép
// PATCH /blog/:id
func (h *BlogHandler) Update(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	blog, err := h.blogService.Update(c.Request.Context(), identity, c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog updated successfully", blog)
}

// Delete xóa cứng blog
// DELETE /blog/delete/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog deleted successfully", nil)
}

// ToggleLike
// POST /blog/:id/like
func (h *BlogHandler) ToggleLike(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	res, err := h.blogService.ToggleLike(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Like toggled", res)
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// GetAll
// GET /blog/all
func (h *BlogHandler) GetAll(c *gin.Context) {
	blogs, err := h.blogService.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Blogs retrieved", blogs, &response.Meta{Total: len(blogs)})
}

// Search full-text search trên title, tags, excerpt
// GET /blog/search?q=...&limit=...
func (h *BlogHandler) Search(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "limit must be an integer")
			return
		}
		limit = n
	}

	blogs, err := h.blogService.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Search results", blogs, &response.Meta{Total: len(blogs)})
}

// GET /blog/slug/:slug
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	blog, err := h.blogService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog retrieved", blog)
}

// GET /blog/fetch/:authorId
func (h *BlogHandler) GetByAuthor(c *gin.Context) {
	blogs, err := h.blogService.GetByAuthor(c.Request.Context(), c.Param("authorId"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Blogs retrieved", blogs, &response.Meta{Total: len(blogs)})
}

// GET /blog/:id
func (h *BlogHandler) GetByID(c *gin.Context) {
	blog, err := h.blogService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog retrieved", blog)
}

// RecordView
// POST /blog/:id/view
func (h *BlogHandler) RecordView(c *gin.Context) {
	res, err := h.blogService.RecordView(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "View recorded", res)
}

// =====================================================
// SCHEDULED PUBLISHING
// =====================================================

// ScheduledSweep publishes every due post once. The body is the bare sweep
// result, not the usual envelope, so external cron callers can read
// publishedCount directly.
// GET /blog/scheduled-sweep, GET /blog/scheduled-blogs, GET /cron
func (h *BlogHandler) ScheduledSweep(c *gin.Context) {
	res, err := h.blogService.PublishScheduled(c.Request.Context(), time.Time{})
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("Scheduled sweep failed")
		c.JSON(http.StatusInternalServerError, model.NewSweepFailure("Failed to publish scheduled blogs"))
		return
	}

	c.JSON(http.StatusOK, res)
}
