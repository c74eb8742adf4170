package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/author/model"
	bookmodel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/utils"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Raw SQL with pgxpool
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// ListAuthors returns a page of authors, each with their books attached
func (r *postgresRepository) ListAuthors(ctx context.Context, req *model.ListAuthorsRequest) ([]model.Author, int, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIndex := 1

	if req.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", argIndex))
		args = append(args, utils.EscapeLike(req.Name))
		argIndex++
	}

	whereClause := utils.JoinWithAnd(conditions)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM authors WHERE %s`, whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count authors failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, created_at, updated_at
		FROM authors
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list authors query failed: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0, req.Limit)
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan author failed: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	if err := r.attachBooks(ctx, authors); err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}

// GetAuthorByID fetches one author with their books
func (r *postgresRepository) GetAuthorByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	var a model.Author
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM authors WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get author failed: %w", err)
	}

	authors := []model.Author{a}
	if err := r.attachBooks(ctx, authors); err != nil {
		return nil, err
	}

	return &authors[0], nil
}

// CreateAuthor inserts an author and backfills generated columns
func (r *postgresRepository) CreateAuthor(ctx context.Context, author *model.Author) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO authors (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		author.Name).
		Scan(&author.ID, &author.CreatedAt, &author.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create author failed: %w", err)
	}
	return nil
}

// UpdateAuthor writes the full row
func (r *postgresRepository) UpdateAuthor(ctx context.Context, author *model.Author) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE authors SET name = $1, updated_at = now() WHERE id = $2 RETURNING updated_at`,
		author.Name, author.ID).
		Scan(&author.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrAuthorNotFound
	}
	if err != nil {
		return fmt.Errorf("update author failed: %w", err)
	}
	return nil
}

// DeleteAuthor removes an author. Their books go with them via the
// FK cascade.
func (r *postgresRepository) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

// ============ HELPER METHODS ============

// attachBooks batch-loads the books for a slice of authors in one query
func (r *postgresRepository) attachBooks(ctx context.Context, authors []model.Author) error {
	if len(authors) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(authors))
	index := make(map[uuid.UUID]*model.Author, len(authors))
	for i := range authors {
		ids[i] = authors[i].ID
		index[authors[i].ID] = &authors[i]
	}

	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.title, b.publication_year, b.author_id,
		       b.created_at, b.updated_at, a.name AS author_name
		FROM books b
		JOIN authors a ON b.author_id = a.id
		WHERE b.author_id = ANY($1)
		ORDER BY b.title ASC
	`, ids)
	if err != nil {
		return fmt.Errorf("load author books failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b bookmodel.Book
		err := rows.Scan(
			&b.ID, &b.Title, &b.PublicationYear, &b.AuthorID,
			&b.CreatedAt, &b.UpdatedAt, &b.AuthorName,
		)
		if err != nil {
			return fmt.Errorf("scan author book failed: %w", err)
		}
		if author, ok := index[b.AuthorID]; ok {
			author.Books = append(author.Books, b)
		}
	}
	return rows.Err()
}
