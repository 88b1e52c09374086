package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"globalven/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/transfers", middleware.Idempotency(db), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader("{}"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	cacheKey := "idemp:/transfers:alice:abc-123"
	mock.ExpectGet(cacheKey).SetVal(`{"id":42}`)

	r := gin.New()
	r.POST("/transfers", func(c *gin.Context) {
		c.Set("actor", "alice")
	}, middleware.Idempotency(db), func(c *gin.Context) {
		t.Fatal("handler must not run for a replayed key")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":42`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicateRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	cacheKey := "idemp:/transfers:alice:abc-123"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	r := gin.New()
	r.POST("/transfers", func(c *gin.Context) {
		c.Set("actor", "alice")
	}, middleware.Idempotency(db), func(c *gin.Context) {
		t.Fatal("handler must not run while the lock is held")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstRequestAcquiresLock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	cacheKey := "idemp:/transfers:alice:abc-123"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

	r := gin.New()
	r.POST("/transfers", func(c *gin.Context) {
		c.Set("actor", "alice")
	}, middleware.Idempotency(db), func(c *gin.Context) {
		lockKey, _ := c.Get("idempotency_lock_key")
		assert.Equal(t, cacheKey+":lock", lockKey)
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
