package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/user/model"
)

// ServiceInterface - user and auth business logic contract
type ServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Refresh(ctx context.Context, req *model.RefreshRequest) (*model.TokenResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error
	UploadProfilePhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*model.UserResponse, error)
	ListUsers(ctx context.Context, req *model.ListUsersRequest) ([]model.UserResponse, int, error)
}

// ObjectStorage is the slice of the storage layer the user service needs
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// RoleAssigner grants the default role to newly registered users
type RoleAssigner interface {
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error
}
