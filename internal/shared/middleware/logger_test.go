package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs redirects the global logger into a buffer for the test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })
	return &buf
}

func logFields(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	return fields
}

func TestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(status int, target string) *bytes.Buffer {
		buf := captureLogs(t)
		r := gin.New()
		r.Use(Logger())
		r.GET("/books", func(c *gin.Context) { c.Status(status) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return buf
	}

	t.Run("success logs at info with request fields", func(t *testing.T) {
		fields := logFields(t, serve(http.StatusOK, "/books?search=dune"))

		assert.Equal(t, "info", fields["level"])
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/books", fields["path"])
		assert.Equal(t, "search=dune", fields["query"])
		assert.Equal(t, float64(http.StatusOK), fields["status"])
	})

	t.Run("client error logs at warn", func(t *testing.T) {
		fields := logFields(t, serve(http.StatusNotFound, "/books"))
		assert.Equal(t, "warn", fields["level"])
	})

	t.Run("server error logs at error", func(t *testing.T) {
		fields := logFields(t, serve(http.StatusInternalServerError, "/books"))
		assert.Equal(t, "error", fields["level"])
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t)

	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)

	fields := logFields(t, buf)
	assert.Equal(t, "kaboom", fields["error"])
	assert.NotEmpty(t, fields["stack"])
}
