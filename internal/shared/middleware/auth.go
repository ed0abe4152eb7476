package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/shared"
	"bloghub-backend/internal/shared/response"
	"bloghub-backend/pkg/jwt"
)

const identityKey = "identity"

// TokenVerifier is satisfied by *jwt.Manager.
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware - Middleware xác thực JWT bearer token.
// The resolved identity is stored on the request context only.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		scheme, token, ok := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify JWT
		claims, err := verifier.ValidateToken(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString("request_id")).Msg("token rejected")
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// 4. Set identity vào context
		c.Set(identityKey, shared.Identity{UserID: userID, Email: claims.Email})
		c.Next()
	}
}

// GetIdentity returns the caller resolved by AuthMiddleware.
func GetIdentity(c *gin.Context) (shared.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return shared.Identity{}, false
	}
	id, ok := v.(shared.Identity)
	return id, ok
}

// SetIdentity is used by tests and by handlers mounted behind a different
// authentication front.
func SetIdentity(c *gin.Context, id shared.Identity) {
	c.Set(identityKey, id)
}
