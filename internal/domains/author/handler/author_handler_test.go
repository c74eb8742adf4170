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

	"library-catalog/internal/domains/author/model"
	bookmodel "library-catalog/internal/domains/book/model"
)

// mockService implements service.ServiceInterface with function fields
type mockService struct {
	listFn   func(ctx context.Context, req *model.ListAuthorsRequest) ([]model.AuthorResponse, int, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error)
	createFn func(ctx context.Context, req *model.CreateAuthorRequest) (*model.AuthorResponse, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.AuthorResponse, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockService) ListAuthors(ctx context.Context, req *model.ListAuthorsRequest) ([]model.AuthorResponse, int, error) {
	return m.listFn(ctx, req)
}

func (m *mockService) GetAuthorByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
	return m.getFn(ctx, id)
}

func (m *mockService) CreateAuthor(ctx context.Context, req *model.CreateAuthorRequest) (*model.AuthorResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockService) UpdateAuthor(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.AuthorResponse, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockService) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.GET("/authors", h.ListAuthors)
	r.GET("/authors/:id", h.GetAuthor)
	r.POST("/authors/create", h.CreateAuthor)
	r.PATCH("/authors/:id/update", h.UpdateAuthor)
	r.DELETE("/authors/:id/delete", h.DeleteAuthor)
	return r
}

func sampleAuthor() model.AuthorResponse {
	authorID := uuid.New()
	return model.AuthorResponse{
		ID:        authorID,
		Name:      "Frank Herbert",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Books: []bookmodel.BookResponse{
			{ID: uuid.New(), Title: "Dune", PublicationYear: 1965, AuthorID: authorID},
		},
	}
}

func TestGetAuthor(t *testing.T) {
	author := sampleAuthor()

	t.Run("detail embeds the author's books", func(t *testing.T) {
		svc := &mockService{
			getFn: func(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
				return &author, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/authors/"+author.ID.String(), nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data model.AuthorResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Data.Books, 1)
		assert.Equal(t, "Dune", body.Data.Books[0].Title)
	})

	t.Run("unknown author is 404", func(t *testing.T) {
		svc := &mockService{
			getFn: func(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
				return nil, model.ErrAuthorNotFound
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/authors/"+uuid.NewString(), nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateAuthor(t *testing.T) {
	author := sampleAuthor()

	t.Run("valid request is 201", func(t *testing.T) {
		svc := &mockService{
			createFn: func(ctx context.Context, req *model.CreateAuthorRequest) (*model.AuthorResponse, error) {
				assert.Equal(t, "Frank Herbert", req.Name)
				return &author, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/authors/create",
			bytes.NewReader([]byte(`{"name":"Frank Herbert"}`)))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("empty name is 400", func(t *testing.T) {
		svc := &mockService{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/authors/create",
			bytes.NewReader([]byte(`{"name":""}`)))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteAuthor(t *testing.T) {
	t.Run("deleted is 204", func(t *testing.T) {
		svc := &mockService{
			deleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/authors/"+uuid.NewString()+"/delete", nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unknown author is 404", func(t *testing.T) {
		svc := &mockService{
			deleteFn: func(ctx context.Context, id uuid.UUID) error { return model.ErrAuthorNotFound },
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/authors/"+uuid.NewString()+"/delete", nil)
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
