package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/role/model"
)

// RepositoryInterface - role data access contract
type RepositoryInterface interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	GetRoleByName(ctx context.Context, name string) (*model.Role, error)
	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]model.Role, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
	RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error
}
