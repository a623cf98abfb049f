package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGzipRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GzipMiddleware())
	router.GET("/api/widgets", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"a": 1})
	})
	router.GET("/charts/:id", func(c *gin.Context) {
		c.Data(http.StatusOK, "image/png", []byte("png"))
	})
	return router
}

func TestGzipMiddleware_CompressesAPI(t *testing.T) {
	router := newGzipRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/widgets", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	gr, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	out, err := io.ReadAll(gr)
	require.NoError(t, err)
	_ = gr.Close()
	assert.JSONEq(t, `{"a":1}`, string(out))
}

func TestGzipMiddleware_SkipsImagesAndPlainClients(t *testing.T) {
	router := newGzipRouter()

	req, _ := http.NewRequest(http.MethodGet, "/charts/rttChart", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "png", rr.Body.String())

	req, _ = http.NewRequest(http.MethodGet, "/api/widgets", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.JSONEq(t, `{"a":1}`, rr.Body.String())
}
