package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
)

// ServiceInterface - author business logic contract
type ServiceInterface interface {
	ListAuthors(ctx context.Context, req *model.ListAuthorsRequest) ([]model.AuthorResponse, int, error)
	GetAuthorByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error)
	CreateAuthor(ctx context.Context, req *model.CreateAuthorRequest) (*model.AuthorResponse, error)
	UpdateAuthor(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.AuthorResponse, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
}
