package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/domains/user/service"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
)

// maxPhotoSize caps profile photo uploads at 5 MiB
const maxPhotoSize = 5 << 20

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Handler - HTTP handlers for auth and user profiles
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ============ AUTH ============

// Register - POST /v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request data")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	auth, err := h.service.Register(c.Request.Context(), &req)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login - POST /v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request data")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	auth, err := h.service.Login(c.Request.Context(), &req)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Refresh - POST /v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request data")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), &req)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// ============ PROFILE ============

// GetProfile - GET /v1/users/me
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateProfile - PATCH /v1/users/me
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request data")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ChangePassword - POST /v1/users/me/change-password
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request data")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), userID, &req)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password changed"})
}

// UploadPhoto - POST /v1/users/me/photo (multipart field "photo")
func (h *Handler) UploadPhoto(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "photo file is required")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoSize {
		response.BadRequest(c, "photo must be 5MB or smaller")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedPhotoTypes[contentType] {
		response.BadRequest(c, "photo must be jpeg, png or webp")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		response.InternalServerError(c, "failed to read photo")
		return
	}

	user, err := h.service.UploadProfilePhoto(c.Request.Context(), userID, data, contentType)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ============ ADMIN ============

// ListUsers - GET /v1/admin/users
// Filtering: email= substring match. Paginated like the catalog listings.
func (h *Handler) ListUsers(c *gin.Context) {
	var req model.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.SetDefaults()

	users, total, err := h.service.ListUsers(c.Request.Context(), &req)
	if err != nil {
		response.InternalServerError(c, "failed to list users")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, users, response.NewMeta(req.Page, req.Limit, total))
}

// handleUserError maps domain errors to HTTP responses.
// Returns true when the request has been answered.
func handleUserError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, model.ErrEmailAlreadyExists):
		response.Conflict(c, "email already registered")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid credentials")
	case errors.Is(err, model.ErrUserInactive):
		response.Forbidden(c, "account is inactive")
	case errors.Is(err, model.ErrWrongPassword):
		response.BadRequest(c, "current password is incorrect")
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, "user not found")
	default:
		response.InternalServerError(c, "internal server error")
	}
	return true
}
