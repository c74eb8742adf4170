package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookmodel "library-catalog/internal/domains/book/model"
)

// CreateAuthorRequest - POST /v1/authors/create
type CreateAuthorRequest struct {
	Name string `json:"name"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
		),
	)
}

// UpdateAuthorRequest - PUT/PATCH /v1/authors/:id/update
type UpdateAuthorRequest struct {
	Name *string `json:"name,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Length(1, 200),
		),
	)
}

// ValidateFull requires every field (PUT semantics)
func (r UpdateAuthorRequest) ValidateFull() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NotNil.Error("name is required")),
	); err != nil {
		return err
	}
	return r.Validate()
}

// AuthorResponse embeds the author's books so a detail view is one call
type AuthorResponse struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
	Books     []bookmodel.BookResponse `json:"books"`
}

// ToResponse converts an Author entity to its response shape
func (a *Author) ToResponse() AuthorResponse {
	books := make([]bookmodel.BookResponse, len(a.Books))
	for i := range a.Books {
		books[i] = a.Books[i].ToResponse()
	}
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Books:     books,
	}
}

// ListAuthorsRequest - query parameters for GET /v1/authors
type ListAuthorsRequest struct {
	Name  string `form:"name"` // case-insensitive substring
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

// SetDefaults applies pagination defaults and caps
func (r *ListAuthorsRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}
