package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/role/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const foreignKeyViolation = "23503"

// ListRoles returns every role with its aggregated permission set
func (r *postgresRepository) ListRoles(ctx context.Context) ([]model.Role, error) {
	query := `
		SELECT r.id, r.name, r.description, r.created_at,
		       COALESCE(array_agg(rp.permission ORDER BY rp.permission)
		                FILTER (WHERE rp.permission IS NOT NULL), '{}') AS permissions
		FROM roles r
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		GROUP BY r.id, r.name, r.description, r.created_at
		ORDER BY r.name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list roles query failed: %w", err)
	}
	defer rows.Close()

	return scanRoles(rows)
}

// GetRoleByName looks a role up with its permission set
func (r *postgresRepository) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	query := `
		SELECT r.id, r.name, r.description, r.created_at,
		       COALESCE(array_agg(rp.permission ORDER BY rp.permission)
		                FILTER (WHERE rp.permission IS NOT NULL), '{}') AS permissions
		FROM roles r
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		WHERE r.name = $1
		GROUP BY r.id, r.name, r.description, r.created_at
	`

	role, err := scanRoleRow(r.pool.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get role failed: %w", err)
	}
	return role, nil
}

// GetUserRoles returns the roles assigned to a user
func (r *postgresRepository) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]model.Role, error) {
	query := `
		SELECT r.id, r.name, r.description, r.created_at,
		       COALESCE(array_agg(rp.permission ORDER BY rp.permission)
		                FILTER (WHERE rp.permission IS NOT NULL), '{}') AS permissions
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		WHERE ur.user_id = $1
		GROUP BY r.id, r.name, r.description, r.created_at
		ORDER BY r.name
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get user roles query failed: %w", err)
	}
	defer rows.Close()

	return scanRoles(rows)
}

// AssignRole grants a role to a user. Assigning twice is a no-op.
func (r *postgresRepository) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, userID, roleID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return model.ErrUserNotFound
		}
		return fmt.Errorf("assign role failed: %w", err)
	}
	return nil
}

// RevokeRole removes a role assignment
func (r *postgresRepository) RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`

	tag, err := r.pool.Exec(ctx, query, userID, roleID)
	if err != nil {
		return fmt.Errorf("revoke role failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRoleNotAssigned
	}
	return nil
}

// ============ SCAN HELPERS ============

func scanRoles(rows pgx.Rows) ([]model.Role, error) {
	roles := make([]model.Role, 0, 8)
	for rows.Next() {
		var role model.Role
		var permissions []string
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &permissions); err != nil {
			return nil, fmt.Errorf("scan role failed: %w", err)
		}
		role.Permissions = toPermissions(permissions)
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return roles, nil
}

func scanRoleRow(row pgx.Row) (*model.Role, error) {
	var role model.Role
	var permissions []string
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &permissions); err != nil {
		return nil, err
	}
	role.Permissions = toPermissions(permissions)
	return &role, nil
}

func toPermissions(raw []string) []model.Permission {
	out := make([]model.Permission, len(raw))
	for i, p := range raw {
		out[i] = model.Permission(p)
	}
	return out
}
