package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book/model"
)

// mockService implements service.ServiceInterface with function fields
// so each test overrides only what it needs.
type mockService struct {
	listFn   func(ctx context.Context, req *model.ListBooksRequest) ([]model.BookResponse, int, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
	createFn func(ctx context.Context, req *model.CreateBookRequest) (*model.BookResponse, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.BookResponse, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockService) ListBooks(ctx context.Context, req *model.ListBooksRequest) ([]model.BookResponse, int, error) {
	return m.listFn(ctx, req)
}

func (m *mockService) GetBookByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	return m.getFn(ctx, id)
}

func (m *mockService) CreateBook(ctx context.Context, req *model.CreateBookRequest) (*model.BookResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockService) UpdateBook(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.BookResponse, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.GET("/books", h.ListBooks)
	r.GET("/books/:id", h.GetBook)
	r.POST("/books/create", h.CreateBook)
	r.PUT("/books/:id/update", h.UpdateBook)
	r.PATCH("/books/:id/update", h.UpdateBook)
	r.DELETE("/books/:id/delete", h.DeleteBook)
	return r
}

func sampleBook() model.BookResponse {
	return model.BookResponse{
		ID:              uuid.New(),
		Title:           "Dune",
		PublicationYear: 1965,
		AuthorID:        uuid.New(),
		AuthorName:      "Frank Herbert",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func TestListBooks(t *testing.T) {
	book := sampleBook()

	t.Run("returns page with meta", func(t *testing.T) {
		svc := &mockService{
			listFn: func(ctx context.Context, req *model.ListBooksRequest) ([]model.BookResponse, int, error) {
				return []model.BookResponse{book}, 1, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool `json:"success"`
			Meta    struct {
				Page  int `json:"page"`
				Total int `json:"total"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, 1, body.Meta.Page)
		assert.Equal(t, 1, body.Meta.Total)
	})

	t.Run("passes query filters through", func(t *testing.T) {
		var got *model.ListBooksRequest
		svc := &mockService{
			listFn: func(ctx context.Context, req *model.ListBooksRequest) ([]model.BookResponse, int, error) {
				got = req
				return nil, 0, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/books?title=dune&author=Herbert&publication_year=1965&search=sand&ordering=-title", nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got)
		assert.Equal(t, "dune", got.Title)
		assert.Equal(t, "Herbert", got.Author)
		require.NotNil(t, got.PublicationYear)
		assert.Equal(t, 1965, *got.PublicationYear)
		assert.Equal(t, "sand", got.Search)
		assert.Equal(t, "-title", got.Ordering)
	})

	t.Run("unrecognized query parameters are ignored", func(t *testing.T) {
		svc := &mockService{
			listFn: func(ctx context.Context, req *model.ListBooksRequest) ([]model.BookResponse, int, error) {
				return nil, 0, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/books?genre=scifi&foo=bar", nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetBook(t *testing.T) {
	book := sampleBook()

	t.Run("found", func(t *testing.T) {
		svc := &mockService{
			getFn: func(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
				assert.Equal(t, book.ID, id)
				return &book, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/books/"+book.ID.String(), nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		svc := &mockService{
			getFn: func(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
				return nil, model.ErrBookNotFound
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/books/"+uuid.NewString(), nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is 404", func(t *testing.T) {
		svc := &mockService{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/books/not-a-uuid", nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateBook(t *testing.T) {
	book := sampleBook()

	t.Run("valid request is 201", func(t *testing.T) {
		svc := &mockService{
			createFn: func(ctx context.Context, req *model.CreateBookRequest) (*model.BookResponse, error) {
				return &book, nil
			},
		}

		payload, _ := json.Marshal(model.CreateBookRequest{
			Title: "Dune", PublicationYear: 1965, AuthorID: book.AuthorID,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/books/create", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("future publication year is 400", func(t *testing.T) {
		svc := &mockService{}

		payload, _ := json.Marshal(model.CreateBookRequest{
			Title: "Dune", PublicationYear: time.Now().Year() + 1, AuthorID: uuid.New(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/books/create", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	})

	t.Run("unknown author is 400", func(t *testing.T) {
		svc := &mockService{
			createFn: func(ctx context.Context, req *model.CreateBookRequest) (*model.BookResponse, error) {
				return nil, model.ErrAuthorNotFound
			},
		}

		payload, _ := json.Marshal(model.CreateBookRequest{
			Title: "Dune", PublicationYear: 1965, AuthorID: uuid.New(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/books/create", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateBook(t *testing.T) {
	book := sampleBook()

	t.Run("PATCH with subset is 200", func(t *testing.T) {
		svc := &mockService{
			updateFn: func(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.BookResponse, error) {
				return &book, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/books/"+book.ID.String()+"/update",
			bytes.NewReader([]byte(`{"title":"Dune Messiah"}`)))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("PUT with missing fields is 400", func(t *testing.T) {
		svc := &mockService{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/books/"+book.ID.String()+"/update",
			bytes.NewReader([]byte(`{"title":"Dune Messiah"}`)))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown book is 404", func(t *testing.T) {
		svc := &mockService{
			updateFn: func(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.BookResponse, error) {
				return nil, model.ErrBookNotFound
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/books/"+uuid.NewString()+"/update",
			bytes.NewReader([]byte(`{"title":"Ghost"}`)))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteBook(t *testing.T) {
	t.Run("deleted is 204 with empty body", func(t *testing.T) {
		svc := &mockService{
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				return nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/books/"+uuid.NewString()+"/delete", nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("unknown book is 404", func(t *testing.T) {
		svc := &mockService{
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				return model.ErrBookNotFound
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/books/"+uuid.NewString()+"/delete", nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
