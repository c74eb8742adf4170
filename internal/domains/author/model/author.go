package model

import (
	"time"

	"github.com/google/uuid"

	bookmodel "library-catalog/internal/domains/book/model"
)

// Author - domain entity, maps 1:1 to the authors table
type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Populated by list/detail queries
	Books []bookmodel.Book `json:"books,omitempty"`
}
