package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggerMiddleware(nil))
	r.Use(CORS(cfg))
	r.GET("/x", func(c *gin.Context) {
		GetLogger(c).Info("handled")
		c.Status(http.StatusOK)
	})
	return r
}

func TestCORSAllowedOrigin(t *testing.T) {
	r := newCORSRouter(CORSConfig{AllowedOrigins: []string{"https://app.example.com"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://APP.example.com")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://APP.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSRejectedOrigin(t *testing.T) {
	r := newCORSRouter(CORSConfig{AllowedOrigins: []string{"https://app.example.com"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDPropagated(t *testing.T) {
	r := newCORSRouter(CORSConfig{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestIsOriginAllowed(t *testing.T) {
	assert.True(t, IsOriginAllowed("https://a", CORSConfig{AllowAllOrigins: true}))
	assert.True(t, IsOriginAllowed("https://a", CORSConfig{AllowedOrigins: []string{"*"}}))
	assert.False(t, IsOriginAllowed("https://a", CORSConfig{AllowedOrigins: []string{"https://b"}}))
}
