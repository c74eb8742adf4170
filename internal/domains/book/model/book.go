package model

import (
	"time"

	"github.com/google/uuid"
)

// Book - domain entity, maps 1:1 to the books table
type Book struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	PublicationYear int       `json:"publication_year" db:"publication_year"`
	AuthorID        uuid.UUID `json:"author_id" db:"author_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined data (populated by list/detail queries)
	AuthorName string `json:"author_name" db:"author_name"`
}
