package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

// RepositoryInterface - book data access contract
type RepositoryInterface interface {
	ListBooks(ctx context.Context, filter *model.BookFilter) ([]model.Book, int, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	CreateBook(ctx context.Context, book *model.Book) error
	UpdateBook(ctx context.Context, book *model.Book) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
}
