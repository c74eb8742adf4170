package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/role/model"
	"library-catalog/internal/domains/role/repository"
	"library-catalog/pkg/cache"
)

// permissionCacheTTL bounds how stale an effective-permission set can get
// after a role change made outside AssignRole/RevokeRole (e.g. direct SQL).
const permissionCacheTTL = 5 * time.Minute

type RoleService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &RoleService{
		repo:  repo,
		cache: cache,
	}
}

func permissionCacheKey(userID uuid.UUID) string {
	return "perms:user:" + userID.String()
}

// ListRoles returns all roles with their grant sets
func (s *RoleService) ListRoles(ctx context.Context) ([]model.RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles error: %w", err)
	}

	responses := make([]model.RoleResponse, len(roles))
	for i := range roles {
		responses[i] = roles[i].ToResponse()
	}
	return responses, nil
}

// GetUserRoles returns the roles currently assigned to a user
func (s *RoleService) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]model.RoleResponse, error) {
	roles, err := s.repo.GetUserRoles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user roles error: %w", err)
	}

	responses := make([]model.RoleResponse, len(roles))
	for i := range roles {
		responses[i] = roles[i].ToResponse()
	}
	return responses, nil
}

// AssignRole grants a named role to a user and invalidates the cached
// permission set.
func (s *RoleService) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	role, err := s.repo.GetRoleByName(ctx, roleName)
	if err != nil {
		return err
	}

	if err := s.repo.AssignRole(ctx, userID, role.ID); err != nil {
		return err
	}

	s.invalidatePermissions(ctx, userID)
	return nil
}

// RevokeRole removes a named role from a user
func (s *RoleService) RevokeRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	role, err := s.repo.GetRoleByName(ctx, roleName)
	if err != nil {
		return err
	}

	if err := s.repo.RevokeRole(ctx, userID, role.ID); err != nil {
		return err
	}

	s.invalidatePermissions(ctx, userID)
	return nil
}

// EffectivePermissions returns the union of the user's role grants,
// cache-aside with a short TTL.
func (s *RoleService) EffectivePermissions(ctx context.Context, userID uuid.UUID) ([]model.Permission, error) {
	cacheKey := permissionCacheKey(userID)

	var cached []model.Permission
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		// Cache trouble must not take authorization down
		log.Warn().Err(err).Str("key", cacheKey).Msg("Permission cache read failed")
	}
	if found {
		return cached, nil
	}

	roles, err := s.repo.GetUserRoles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("effective permissions error: %w", err)
	}
	permissions := model.UnionPermissions(roles)

	if err := s.cache.Set(ctx, cacheKey, permissions, permissionCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Permission cache write failed")
	}

	return permissions, nil
}

// HasPermission implements the middleware PermissionChecker contract
func (s *RoleService) HasPermission(ctx context.Context, userID uuid.UUID, permission string) (bool, error) {
	p := model.Permission(permission)
	if !p.IsValid() {
		return false, fmt.Errorf("unknown permission: %s", permission)
	}

	permissions, err := s.EffectivePermissions(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, granted := range permissions {
		if granted == p {
			return true, nil
		}
	}
	return false, nil
}

func (s *RoleService) invalidatePermissions(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Delete(ctx, permissionCacheKey(userID)); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Permission cache invalidation failed")
	}
}
