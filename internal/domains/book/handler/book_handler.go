package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/response"
)

// Handler - HTTP handlers for the book catalog
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /v1/books
// Filtering: title, author (id or name substring), publication_year.
// Search: search= across title and author name. Ordering: ordering= with
// optional "-" prefix. Unrecognized query parameters are ignored.
func (h *Handler) ListBooks(c *gin.Context) {
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.SetDefaults()

	books, total, err := h.service.ListBooks(c.Request.Context(), &req)
	if err != nil {
		response.InternalServerError(c, "failed to list books")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, response.NewMeta(req.Page, req.Limit, total))
}

// GetBook - GET /v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "book not found")
		return
	}

	book, err := h.service.GetBookByID(c.Request.Context(), id)
	if handleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, book)
}

// CreateBook - POST /v1/books/create
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request data")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), &req)
	if handleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// UpdateBook - PUT/PATCH /v1/books/:id/update
// PUT requires the complete representation, PATCH accepts a subset.
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "book not found")
		return
	}

	var req model.UpdateBookRequest
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

	book, err := h.service.UpdateBook(c.Request.Context(), id, &req)
	if handleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, book)
}

// DeleteBook - DELETE /v1/books/:id/delete
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "book not found")
		return
	}

	err = h.service.DeleteBook(c.Request.Context(), id)
	if handleBookError(c, err) {
		return
	}

	response.NoContent(c)
}

// handleBookError maps domain errors to HTTP responses.
// Returns true when the request has been answered.
func handleBookError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "book not found")
	case errors.Is(err, model.ErrAuthorNotFound):
		response.ErrorResponse(c, http.StatusBadRequest, "AUTHOR_NOT_FOUND", "referenced author does not exist")
	default:
		response.InternalServerError(c, "internal server error")
	}
	return true
}
