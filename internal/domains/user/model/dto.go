package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const dateOnly = "2006-01-02"

// ============ AUTH DTOs ============

// RegisterRequest - POST /v1/auth/register
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email must be a valid email address"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.FullName,
			validation.Length(0, 200),
		),
		validation.Field(&r.DateOfBirth,
			validation.Date(dateOnly).Error("date_of_birth must be YYYY-MM-DD"),
		),
	)
}

// ParsedDateOfBirth returns the date of birth as a time, if present.
// Call only after Validate.
func (r RegisterRequest) ParsedDateOfBirth() *time.Time {
	if r.DateOfBirth == "" {
		return nil
	}
	t, err := time.Parse(dateOnly, r.DateOfBirth)
	if err != nil {
		return nil
	}
	return &t
}

// LoginRequest - POST /v1/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

// RefreshRequest - POST /v1/auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required.Error("refresh_token is required")),
	)
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // access token lifetime in seconds
}

// AuthResponse - registration/login payload
type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

// ============ PROFILE DTOs ============

// UpdateProfileRequest - PATCH /v1/users/me
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.Length(0, 200),
		),
		validation.Field(&r.DateOfBirth,
			validation.Date(dateOnly).Error("date_of_birth must be YYYY-MM-DD"),
		),
	)
}

// ChangePasswordRequest - POST /v1/users/me/change-password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required.Error("current_password is required")),
		validation.Field(&r.NewPassword,
			validation.Required.Error("new_password is required"),
			validation.Length(8, 128).Error("new_password must be 8-128 characters"),
		),
	)
}

// ============ READ DTOs ============

// ListUsersRequest - GET /v1/admin/users query parameters
type ListUsersRequest struct {
	Email string `form:"email"` // substring match
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

// SetDefaults applies pagination defaults and caps
func (r *ListUsersRequest) SetDefaults() {
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

// Offset returns the row offset for the requested page
func (r *ListUsersRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// UserResponse - public user representation
type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	DateOfBirth     *string   `json:"date_of_birth,omitempty"`
	ProfilePhotoURL *string   `json:"profile_photo_url,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToResponse converts a User entity to its response shape
func (u *User) ToResponse() UserResponse {
	resp := UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		ProfilePhotoURL: u.ProfilePhotoURL,
		IsActive:        u.IsActive,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format(dateOnly)
		resp.DateOfBirth = &dob
	}
	return resp
}
