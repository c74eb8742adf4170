package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/role/model"
)

// ServiceInterface - role business logic contract
type ServiceInterface interface {
	ListRoles(ctx context.Context) ([]model.RoleResponse, error)
	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]model.RoleResponse, error)
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error
	RevokeRole(ctx context.Context, userID uuid.UUID, roleName string) error
	EffectivePermissions(ctx context.Context, userID uuid.UUID) ([]model.Permission, error)
	HasPermission(ctx context.Context, userID uuid.UUID, permission string) (bool, error)
}
