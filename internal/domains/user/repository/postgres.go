package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/shared/utils"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Raw SQL with pgxpool
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const uniqueViolation = "23505"

const userColumns = `id, email, password_hash, full_name, date_of_birth,
	profile_photo_url, is_active, created_at, updated_at`

// CreateUser inserts a user and backfills generated columns
func (r *postgresRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (email, password_hash, full_name, date_of_birth)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.FullName, user.DateOfBirth).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create user failed: %w", err)
	}

	return nil
}

// ListUsers returns a page of accounts with the total count, optionally
// narrowed to emails containing the filter substring.
func (r *postgresRepository) ListUsers(ctx context.Context, req *model.ListUsersRequest) ([]model.User, int, error) {
	where := ""
	args := []interface{}{}
	if req.Email != "" {
		where = `WHERE email ILIKE '%' || $1 || '%'`
		args = append(args, utils.EscapeLike(req.Email))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM users %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, userColumns, where, len(args)+1, len(args)+2)
	args = append(args, req.Limit, req.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users query failed: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, req.Limit)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.DateOfBirth,
			&u.ProfilePhotoURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return users, total, nil
}

// GetUserByID fetches a user by primary key
func (r *postgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetUserByEmail fetches a user by email
func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// UpdateUser writes the profile fields back
func (r *postgresRepository) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET full_name = $1, date_of_birth = $2, profile_photo_url = $3,
		    is_active = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.FullName, user.DateOfBirth, user.ProfilePhotoURL, user.IsActive, user.ID).
		Scan(&user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("update user failed: %w", err)
	}

	return nil
}

// UpdatePassword replaces the stored password hash
func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// ============ HELPER METHODS ============

func (r *postgresRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.DateOfBirth,
		&u.ProfilePhotoURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user failed: %w", err)
	}

	return &u, nil
}
