package model

import (
	"time"

	"github.com/google/uuid"
)

// User - domain entity, maps 1:1 to the users table
type User struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Email           string     `json:"email" db:"email"`
	PasswordHash    string     `json:"-" db:"password_hash"`
	FullName        string     `json:"full_name" db:"full_name"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	ProfilePhotoURL *string    `json:"profile_photo_url,omitempty" db:"profile_photo_url"`
	IsActive        bool       `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
