package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/pkg/cache"
)

const (
	bookCacheTTL = 10 * time.Minute
	listCacheTTL = 1 * time.Minute
)

type BookService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &BookService{
		repo:  repo,
		cache: cache,
	}
}

func bookCacheKey(id uuid.UUID) string {
	return "books:detail:" + id.String()
}

func listCacheKey(f *model.BookFilter) string {
	year := ""
	if f.PublicationYear != nil {
		year = fmt.Sprintf("%d", *f.PublicationYear)
	}
	return fmt.Sprintf("books:list:%s:%s:%s:%s:%s:%s:%d:%d",
		f.Title, f.AuthorID, f.AuthorName, year, f.Search, f.OrderBy, f.Offset, f.Limit)
}

type cachedList struct {
	Books []model.BookResponse `json:"books"`
	Total int                  `json:"total"`
}

// ListBooks returns a filtered, ordered page of books with the total count.
// Pages are cached briefly per filter combination; writes flush the whole
// list keyspace since any write can reshuffle any page.
func (s *BookService) ListBooks(ctx context.Context, req *model.ListBooksRequest) ([]model.BookResponse, int, error) {
	filter := req.ToFilter()
	cacheKey := listCacheKey(filter)

	var cached cachedList
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Book list cache read failed")
	}
	if found {
		return cached.Books, cached.Total, nil
	}

	books, total, err := s.repo.ListBooks(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list books error: %w", err)
	}

	responses := make([]model.BookResponse, len(books))
	for i := range books {
		responses[i] = books[i].ToResponse()
	}

	if err := s.cache.Set(ctx, cacheKey, cachedList{Books: responses, Total: total}, listCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Book list cache write failed")
	}

	return responses, total, nil
}

// GetBookByID returns a single book, cache-aside
func (s *BookService) GetBookByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	cacheKey := bookCacheKey(id)

	var cached model.BookResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Book cache read failed")
	}
	if found {
		return &cached, nil
	}

	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := book.ToResponse()
	if err := s.cache.Set(ctx, cacheKey, resp, bookCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Book cache write failed")
	}

	return &resp, nil
}

// CreateBook persists a new book. The DTO has already been validated by
// the handler; author existence is enforced by the store.
func (s *BookService) CreateBook(ctx context.Context, req *model.CreateBookRequest) (*model.BookResponse, error) {
	book := &model.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	}

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)

	// The joined author name is not returned by the insert
	created, err := s.repo.GetBookByID(ctx, book.ID)
	if err != nil {
		return nil, fmt.Errorf("reload created book error: %w", err)
	}

	resp := created.ToResponse()
	return &resp, nil
}

// UpdateBook loads the current row, applies the fields present in the
// request and writes the full entity back. PUT and PATCH share this path;
// the handler decides which validation mode applies.
func (s *BookService) UpdateBook(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.BookResponse, error) {
	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.PublicationYear != nil {
		book.PublicationYear = *req.PublicationYear
	}
	if req.AuthorID != nil {
		book.AuthorID = *req.AuthorID
	}

	if err := s.repo.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	s.invalidateBook(ctx, id)
	s.invalidateLists(ctx)

	// Re-read so the author name reflects an author change
	updated, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload updated book error: %w", err)
	}

	resp := updated.ToResponse()
	return &resp, nil
}

// DeleteBook removes a book and drops its cache entries
func (s *BookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	s.invalidateBook(ctx, id)
	s.invalidateLists(ctx)
	return nil
}

func (s *BookService) invalidateBook(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, bookCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("book_id", id.String()).Msg("Book cache invalidation failed")
	}
}

func (s *BookService) invalidateLists(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "books:list:*"); err != nil {
		log.Warn().Err(err).Msg("Book list cache invalidation failed")
	}
}
