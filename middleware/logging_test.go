package middleware

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"pocketledger/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.String(200, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug", Output: &buf, Component: "http"})

	router := gin.New()
	router.Use(RequestID(), RequestLogger(log))
	router.GET("/missing/:id", func(c *gin.Context) {
		assert.Equal(t, "http", logger.FromContext(c.Request.Context()).Component())
		c.Set(ContextUserIDKey, uint(7))
		c.JSON(404, gin.H{"msg": "ledger not found"})
	})

	req := httptest.NewRequest("GET", "/missing/1", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "request_id=rid-1")
	assert.Contains(t, out, "user_id=7")
	assert.Contains(t, out, "path=/missing/:id")
}
