package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/user/model"
)

// RepositoryInterface - user data access contract
type RepositoryInterface interface {
	CreateUser(ctx context.Context, user *model.User) error
	ListUsers(ctx context.Context, req *model.ListUsersRequest) ([]model.User, int, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
