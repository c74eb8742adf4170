package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/utils"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Raw SQL with pgxpool
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const foreignKeyViolation = "23503"

// ListBooks applies filters, search, ordering and pagination in one query
// plus a count. Filters combine with AND; search spans title and author name.
func (r *postgresRepository) ListBooks(ctx context.Context, filter *model.BookFilter) ([]model.Book, int, error) {
	whereClause, args := BuildWhereClause(filter)

	totalCount, err := r.getBookCount(ctx, whereClause, args)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT b.id, b.title, b.publication_year, b.author_id,
		       b.created_at, b.updated_at, a.name AS author_name
		FROM books b
		JOIN authors a ON b.author_id = a.id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, filter.OrderBy, len(args)+1, len(args)+2)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books query failed: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, filter.Limit)
	for rows.Next() {
		var b model.Book
		err := rows.Scan(
			&b.ID, &b.Title, &b.PublicationYear, &b.AuthorID,
			&b.CreatedAt, &b.UpdatedAt, &b.AuthorName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan book failed: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return books, totalCount, nil
}

// GetBookByID fetches a single book with its author name
func (r *postgresRepository) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `
		SELECT b.id, b.title, b.publication_year, b.author_id,
		       b.created_at, b.updated_at, a.name AS author_name
		FROM books b
		JOIN authors a ON b.author_id = a.id
		WHERE b.id = $1
	`

	var b model.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.PublicationYear, &b.AuthorID,
		&b.CreatedAt, &b.UpdatedAt, &b.AuthorName,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book failed: %w", err)
	}

	return &b, nil
}

// CreateBook inserts a book and backfills generated columns
func (r *postgresRepository) CreateBook(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (title, publication_year, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, book.Title, book.PublicationYear, book.AuthorID).
		Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("create book failed: %w", err)
	}

	return nil
}

// UpdateBook writes the full row. Partial updates are resolved to a full
// entity by the service before reaching here, so a single-row atomic
// UPDATE is all the store needs to guarantee.
func (r *postgresRepository) UpdateBook(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET title = $1, publication_year = $2, author_id = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, book.Title, book.PublicationYear, book.AuthorID, book.ID).
		Scan(&book.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrBookNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("update book failed: %w", err)
	}

	return nil
}

// DeleteBook removes a book permanently
func (r *postgresRepository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// ============ HELPER METHODS ============

// BuildWhereClause constructs the WHERE clause and positional args for a
// filter. Text values are escaped so LIKE metacharacters match literally.
// Exported for direct testing.
func BuildWhereClause(filter *model.BookFilter) (string, []interface{}) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIndex := 1

	// Exact-ish field filters (AND-combined)
	if filter.Title != "" {
		conditions = append(conditions, fmt.Sprintf("b.title ILIKE '%%' || $%d || '%%'", argIndex))
		args = append(args, utils.EscapeLike(filter.Title))
		argIndex++
	}

	if filter.AuthorID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("b.author_id = $%d", argIndex))
		args = append(args, filter.AuthorID)
		argIndex++
	}

	if filter.AuthorName != "" {
		conditions = append(conditions, fmt.Sprintf("a.name ILIKE '%%' || $%d || '%%'", argIndex))
		args = append(args, utils.EscapeLike(filter.AuthorName))
		argIndex++
	}

	if filter.PublicationYear != nil {
		conditions = append(conditions, fmt.Sprintf("b.publication_year = $%d", argIndex))
		args = append(args, *filter.PublicationYear)
		argIndex++
	}

	// Free-text search across title and author name
	if filter.Search != "" {
		clause := utils.JoinWithOr([]string{
			fmt.Sprintf("b.title ILIKE '%%' || $%d || '%%'", argIndex),
			fmt.Sprintf("a.name ILIKE '%%' || $%d || '%%'", argIndex),
		})
		conditions = append(conditions, "("+clause+")")
		args = append(args, utils.EscapeLike(filter.Search))
		argIndex++
	}

	return utils.JoinWithAnd(conditions), args
}

func (r *postgresRepository) getBookCount(ctx context.Context, whereClause string, args []interface{}) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM books b
		JOIN authors a ON b.author_id = a.id
		WHERE %s
	`, whereClause)

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count books failed: %w", err)
	}
	return count, nil
}
