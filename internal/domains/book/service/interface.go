package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

// ServiceInterface - book business logic contract
type ServiceInterface interface {
	ListBooks(ctx context.Context, req *model.ListBooksRequest) ([]model.BookResponse, int, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
	CreateBook(ctx context.Context, req *model.CreateBookRequest) (*model.BookResponse, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.BookResponse, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}
