package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	"library-catalog/pkg/cache"
)

type AuthorService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &AuthorService{
		repo:  repo,
		cache: cache,
	}
}

// ListAuthors returns a page of authors with their books
func (s *AuthorService) ListAuthors(ctx context.Context, req *model.ListAuthorsRequest) ([]model.AuthorResponse, int, error) {
	req.SetDefaults()

	authors, total, err := s.repo.ListAuthors(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("list authors error: %w", err)
	}

	responses := make([]model.AuthorResponse, len(authors))
	for i := range authors {
		responses[i] = authors[i].ToResponse()
	}
	return responses, total, nil
}

// GetAuthorByID returns one author with their books
func (s *AuthorService) GetAuthorByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
	author, err := s.repo.GetAuthorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := author.ToResponse()
	return &resp, nil
}

// CreateAuthor persists a new author
func (s *AuthorService) CreateAuthor(ctx context.Context, req *model.CreateAuthorRequest) (*model.AuthorResponse, error) {
	author := &model.Author{Name: req.Name}

	if err := s.repo.CreateAuthor(ctx, author); err != nil {
		return nil, err
	}

	resp := author.ToResponse()
	return &resp, nil
}

// UpdateAuthor applies the fields present in the request. An author
// rename changes the joined author_name on book responses, so cached
// book entries are flushed too.
func (s *AuthorService) UpdateAuthor(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.AuthorResponse, error) {
	author, err := s.repo.GetAuthorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		author.Name = *req.Name
	}

	if err := s.repo.UpdateAuthor(ctx, author); err != nil {
		return nil, err
	}

	s.invalidateBookCaches(ctx)

	resp := author.ToResponse()
	return &resp, nil
}

// DeleteAuthor removes an author and, via the FK cascade, their books
func (s *AuthorService) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAuthor(ctx, id); err != nil {
		return err
	}

	s.invalidateBookCaches(ctx)
	return nil
}

func (s *AuthorService) invalidateBookCaches(ctx context.Context) {
	for _, pattern := range []string{"books:detail:*", "books:list:*"} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("Book cache invalidation failed")
		}
	}
}
