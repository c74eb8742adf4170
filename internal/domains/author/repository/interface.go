package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
)

// RepositoryInterface - author data access contract
type RepositoryInterface interface {
	ListAuthors(ctx context.Context, req *model.ListAuthorsRequest) ([]model.Author, int, error)
	GetAuthorByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	CreateAuthor(ctx context.Context, author *model.Author) error
	UpdateAuthor(ctx context.Context, author *model.Author) error
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
}
