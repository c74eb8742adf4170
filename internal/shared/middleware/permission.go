package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/response"
)

// PermissionChecker answers whether a user holds a permission.
// Implemented by the role service; declared here to keep the middleware
// decoupled from the domain package.
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID uuid.UUID, permission string) (bool, error)
}

// RequirePermission gates an endpoint on a book permission
// (can_view, can_create, can_edit, can_delete).
// Must run after AuthMiddleware: a missing identity is a 401,
// an identity without the permission is a 403.
func RequirePermission(checker PermissionChecker, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		allowed, err := checker.HasPermission(c.Request.Context(), userID, permission)
		if err != nil {
			log.Error().Err(err).
				Str("user_id", userID.String()).
				Str("permission", permission).
				Msg("Permission check failed")
			response.InternalServerError(c, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			response.Forbidden(c, "missing permission: "+permission)
			c.Abort()
			return
		}

		c.Next()
	}
}
