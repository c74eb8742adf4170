package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book/model"
)

// mockRepository implements repository.RepositoryInterface with function fields
type mockRepository struct {
	listFn   func(ctx context.Context, filter *model.BookFilter) ([]model.Book, int, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*model.Book, error)
	createFn func(ctx context.Context, book *model.Book) error
	updateFn func(ctx context.Context, book *model.Book) error
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepository) ListBooks(ctx context.Context, filter *model.BookFilter) ([]model.Book, int, error) {
	return m.listFn(ctx, filter)
}

func (m *mockRepository) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return m.getFn(ctx, id)
}

func (m *mockRepository) CreateBook(ctx context.Context, book *model.Book) error {
	return m.createFn(ctx, book)
}

func (m *mockRepository) UpdateBook(ctx context.Context, book *model.Book) error {
	return m.updateFn(ctx, book)
}

func (m *mockRepository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

// memoryCache is an in-process stand-in for the Redis cache
type memoryCache struct {
	data            map[string][]byte
	deletedPatterns []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.deletedPatterns = append(c.deletedPatterns, pattern)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

func sampleBook() *model.Book {
	return &model.Book{
		ID:              uuid.New(),
		Title:           "Dune",
		PublicationYear: 1965,
		AuthorID:        uuid.New(),
		AuthorName:      "Frank Herbert",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func TestGetBookByID_CacheAside(t *testing.T) {
	book := sampleBook()
	calls := 0
	repo := &mockRepository{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Book, error) {
			calls++
			return book, nil
		},
	}
	svc := NewService(repo, newMemoryCache())

	first, err := svc.GetBookByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Title, first.Title)
	assert.Equal(t, 1, calls)

	// Second read must come from the cache
	second, err := svc.GetBookByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Title, second.Title)
	assert.Equal(t, 1, calls)
}

func TestGetBookByID_NotFound(t *testing.T) {
	repo := &mockRepository{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Book, error) {
			return nil, model.ErrBookNotFound
		},
	}
	svc := NewService(repo, newMemoryCache())

	_, err := svc.GetBookByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestUpdateBook_AppliesPartialFields(t *testing.T) {
	book := sampleBook()
	var written *model.Book
	repo := &mockRepository{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Book, error) {
			copied := *book
			return &copied, nil
		},
		updateFn: func(ctx context.Context, b *model.Book) error {
			written = b
			return nil
		},
	}
	svc := NewService(repo, newMemoryCache())

	newTitle := "Dune Messiah"
	_, err := svc.UpdateBook(context.Background(), book.ID, &model.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)

	require.NotNil(t, written)
	assert.Equal(t, "Dune Messiah", written.Title)
	// Untouched fields keep their values
	assert.Equal(t, book.PublicationYear, written.PublicationYear)
	assert.Equal(t, book.AuthorID, written.AuthorID)
}

func TestUpdateBook_InvalidatesCaches(t *testing.T) {
	book := sampleBook()
	cache := newMemoryCache()
	repo := &mockRepository{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Book, error) {
			copied := *book
			return &copied, nil
		},
		updateFn: func(ctx context.Context, b *model.Book) error { return nil },
	}
	svc := NewService(repo, cache)

	// Warm the detail cache
	_, err := svc.GetBookByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Contains(t, cache.data, "books:detail:"+book.ID.String())

	newTitle := "Children of Dune"
	_, err = svc.UpdateBook(context.Background(), book.ID, &model.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.NotContains(t, cache.data, "books:detail:"+book.ID.String())
	assert.Contains(t, cache.deletedPatterns, "books:list:*")
}

func TestDeleteBook_InvalidatesCaches(t *testing.T) {
	id := uuid.New()
	cache := newMemoryCache()
	repo := &mockRepository{
		deleteFn: func(ctx context.Context, bookID uuid.UUID) error {
			assert.Equal(t, id, bookID)
			return nil
		},
	}
	svc := NewService(repo, cache)

	require.NoError(t, svc.DeleteBook(context.Background(), id))
	assert.Contains(t, cache.deletedPatterns, "books:list:*")
}

func TestListBooks_CachesPage(t *testing.T) {
	book := sampleBook()
	calls := 0
	repo := &mockRepository{
		listFn: func(ctx context.Context, filter *model.BookFilter) ([]model.Book, int, error) {
			calls++
			return []model.Book{*book}, 1, nil
		},
	}
	svc := NewService(repo, newMemoryCache())

	req := &model.ListBooksRequest{Title: "dune"}
	books, total, err := svc.ListBooks(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, books, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, calls)

	// Same filter hits the cached page
	_, _, err = svc.ListBooks(context.Background(), &model.ListBooksRequest{Title: "dune"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// A different filter misses
	_, _, err = svc.ListBooks(context.Background(), &model.ListBooksRequest{Title: "foundation"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
