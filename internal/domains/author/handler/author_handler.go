package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared/response"
)

// Handler - HTTP handlers for authors
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListAuthors - GET /v1/authors
func (h *Handler) ListAuthors(c *gin.Context) {
	var req model.ListAuthorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.SetDefaults()

	authors, total, err := h.service.ListAuthors(c.Request.Context(), &req)
	if err != nil {
		response.InternalServerError(c, "failed to list authors")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, authors, response.NewMeta(req.Page, req.Limit, total))
}

// GetAuthor - GET /v1/authors/:id
func (h *Handler) GetAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "author not found")
		return
	}

	author, err := h.service.GetAuthorByID(c.Request.Context(), id)
	if handleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, author)
}

// CreateAuthor - POST /v1/authors/create
func (h *Handler) CreateAuthor(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request data")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	author, err := h.service.CreateAuthor(c.Request.Context(), &req)
	if handleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, author)
}

// UpdateAuthor - PUT/PATCH /v1/authors/:id/update
func (h *Handler) UpdateAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "author not found")
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request data")
		return
	}

	if c.Request.Method == http.MethodPut {
		err = req.ValidateFull()
	} else {
		err = req.Validate()
	}
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	author, err := h.service.UpdateAuthor(c.Request.Context(), id, &req)
	if handleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, author)
}

// DeleteAuthor - DELETE /v1/authors/:id/delete
// Cascades to the author's books.
func (h *Handler) DeleteAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "author not found")
		return
	}

	err = h.service.DeleteAuthor(c.Request.Context(), id)
	if handleAuthorError(c, err) {
		return
	}

	response.NoContent(c)
}

// handleAuthorError maps domain errors to HTTP responses.
// Returns true when the request has been answered.
func handleAuthorError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, model.ErrAuthorNotFound):
		response.NotFound(c, "author not found")
	default:
		response.InternalServerError(c, "internal server error")
	}
	return true
}
