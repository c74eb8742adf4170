package model

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// requiredUUID rejects the zero uuid. validation.Required cannot be used
// here: it treats any [16]byte array as non-empty, so a missing author_id
// would slip through to the database.
func requiredUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return errors.New("is required")
	}
	return nil
}

// ============ WRITE DTOs ============

// CreateBookRequest - POST /v1/books/create
type CreateBookRequest struct {
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
	AuthorID        uuid.UUID `json:"author_id"`
}

func (r CreateBookRequest) Validate() error {
	currentYear := time.Now().Year()
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.PublicationYear,
			validation.Required.Error("publication_year is required"),
			validation.Max(currentYear).Error(
				fmt.Sprintf("publication year cannot be in the future; current year is %d", currentYear)),
		),
		validation.Field(&r.AuthorID,
			validation.By(requiredUUID),
		),
	)
}

// UpdateBookRequest - PUT/PATCH /v1/books/:id/update
// Pointer fields so PATCH can carry a subset; PUT requires all of them.
type UpdateBookRequest struct {
	Title           *string    `json:"title,omitempty"`
	PublicationYear *int       `json:"publication_year,omitempty"`
	AuthorID        *uuid.UUID `json:"author_id,omitempty"`
}

// Validate checks only the fields that are present (PATCH semantics)
func (r UpdateBookRequest) Validate() error {
	currentYear := time.Now().Year()
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Length(1, 500),
		),
		validation.Field(&r.PublicationYear,
			validation.Max(currentYear).Error(
				fmt.Sprintf("publication year cannot be in the future; current year is %d", currentYear)),
		),
		validation.Field(&r.AuthorID,
			validation.By(requiredUUID),
		),
	)
}

// ValidateFull additionally requires every field (PUT semantics)
func (r UpdateBookRequest) ValidateFull() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NotNil.Error("title is required")),
		validation.Field(&r.PublicationYear, validation.NotNil.Error("publication_year is required")),
		validation.Field(&r.AuthorID, validation.NotNil.Error("author_id is required")),
	); err != nil {
		return err
	}
	return r.Validate()
}

// ============ READ DTOs ============

// BookResponse - single book representation
type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
	AuthorID        uuid.UUID `json:"author_id"`
	AuthorName      string    `json:"author_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToResponse converts a Book entity to its response shape
func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
		AuthorName:      b.AuthorName,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ============ QUERY DTOs ============

// ListBooksRequest - query parameters for GET /v1/books.
// Unrecognized parameters are ignored by the handler.
type ListBooksRequest struct {
	Title           string `form:"title"`            // case-insensitive substring
	Author          string `form:"author"`           // author id (uuid) or name substring
	PublicationYear *int   `form:"publication_year"` // exact match
	Search          string `form:"search"`           // across title + author name
	Ordering        string `form:"ordering"`         // title | publication_year, "-" prefix = desc
	Page            int    `form:"page"`
	Limit           int    `form:"limit"`
}

// SetDefaults applies pagination defaults and caps
func (r *ListBooksRequest) SetDefaults() {
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

// BookFilter - repository-level filter built from a ListBooksRequest
type BookFilter struct {
	Title           string
	AuthorID        uuid.UUID // set when the author param parsed as a uuid
	AuthorName      string    // otherwise matched as a name substring
	PublicationYear *int
	Search          string
	OrderBy         string // validated ORDER BY expression
	Offset          int
	Limit           int
}

// orderings whitelists the sortable fields. Anything else falls back to
// the default title ascending, mirroring "unrecognized parameters are
// ignored" for the ordering value itself.
var orderings = map[string]string{
	"":                  "b.title ASC",
	"title":             "b.title ASC",
	"-title":            "b.title DESC",
	"publication_year":  "b.publication_year ASC",
	"-publication_year": "b.publication_year DESC",
}

// OrderClause resolves an ordering parameter into a safe ORDER BY expression
func OrderClause(ordering string) string {
	if clause, ok := orderings[ordering]; ok {
		return clause
	}
	return orderings[""]
}

// ToFilter converts the request into a repository filter
func (r *ListBooksRequest) ToFilter() *BookFilter {
	r.SetDefaults()

	filter := &BookFilter{
		Title:           r.Title,
		PublicationYear: r.PublicationYear,
		Search:          r.Search,
		OrderBy:         OrderClause(r.Ordering),
		Offset:          (r.Page - 1) * r.Limit,
		Limit:           r.Limit,
	}

	if r.Author != "" {
		if id, err := uuid.Parse(r.Author); err == nil {
			filter.AuthorID = id
		} else {
			filter.AuthorName = r.Author
		}
	}

	return filter
}
