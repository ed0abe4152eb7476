package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloghub-backend/internal/domains/user"
	"bloghub-backend/internal/shared/middleware"
	"bloghub-backend/internal/shared/response"
)

// UserHandler xử lý HTTP requests cho user domain
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/user/"+res.ID.String())
	response.Success(c, http.StatusCreated, "User registered successfully", res)
}

// Login xử lý POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", res)
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// FetchCurrent xử lý GET /user/fetch (requires auth)
func (h *UserHandler) FetchCurrent(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	dto, err := h.service.GetCurrent(c.Request.Context(), identity)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", dto)
}

// GetByID xử lý GET /user/:id (public profile)
func (h *UserHandler) GetByID(c *gin.Context) {
	dto, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", dto)
}

// Edit xử lý PATCH /user/edit (requires auth)
func (h *UserHandler) Edit(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req user.EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.EditProfile(c.Request.Context(), identity, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Profile updated", dto)
}
