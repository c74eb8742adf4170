package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-catalog/internal/domains/role/model"
	"library-catalog/internal/domains/role/service"
	"library-catalog/internal/shared/response"
)

// Handler - HTTP handlers for role administration
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListRoles - GET /v1/admin/roles
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to list roles")
		return
	}

	response.Success(c, http.StatusOK, roles)
}

// GetUserRoles - GET /v1/admin/users/:id/roles
func (h *Handler) GetUserRoles(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	roles, err := h.service.GetUserRoles(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "failed to get user roles")
		return
	}

	response.Success(c, http.StatusOK, roles)
}

// AssignRole - POST /v1/admin/users/:id/roles
func (h *Handler) AssignRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req model.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request data")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	err = h.service.AssignRole(c.Request.Context(), userID, req.Role)
	if handleRoleError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user_id": userID, "role": req.Role})
}

// RevokeRole - DELETE /v1/admin/users/:id/roles/:role
func (h *Handler) RevokeRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	err = h.service.RevokeRole(c.Request.Context(), userID, c.Param("role"))
	if handleRoleError(c, err) {
		return
	}

	response.NoContent(c)
}

// handleRoleError maps domain errors to HTTP responses.
// Returns true when the request has been answered.
func handleRoleError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, model.ErrRoleNotFound):
		response.NotFound(c, "role not found")
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, model.ErrRoleNotAssigned):
		response.NotFound(c, "role not assigned to user")
	default:
		response.InternalServerError(c, "internal server error")
	}
	return true
}
