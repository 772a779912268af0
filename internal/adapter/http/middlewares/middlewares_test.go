package middlewares

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotentRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	calls := 0
	r := gin.New()
	r.Use(Idempotency(rdb, time.Minute))
	r.POST("/v1/proposals", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": calls})
	})
	r.DELETE("/v1/proposals/:id", func(c *gin.Context) {
		calls++
		c.Status(http.StatusNoContent)
	})
	r.PATCH("/v1/fail", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR"})
	})
	r.GET("/v1/proposals", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})
	return r, mr, &calls
}

func send(r http.Handler, method, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	r, _, calls := newIdempotentRouter(t)

	first := send(r, http.MethodPost, "/v1/proposals", "key-1")
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get(ReplayedHeader))

	second := send(r, http.MethodPost, "/v1/proposals", "key-1")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(ReplayedHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, *calls)

	third := send(r, http.MethodPost, "/v1/proposals", "key-2")
	require.Equal(t, http.StatusCreated, third.Code)
	assert.JSONEq(t, `{"id":2}`, third.Body.String())
	assert.Equal(t, 2, *calls)
}

func TestIdempotency_WithoutKeyOrOnReads(t *testing.T) {
	r, _, calls := newIdempotentRouter(t)

	send(r, http.MethodPost, "/v1/proposals", "")
	send(r, http.MethodPost, "/v1/proposals", "")
	send(r, http.MethodGet, "/v1/proposals", "key-1")
	send(r, http.MethodGet, "/v1/proposals", "key-1")
	assert.Equal(t, 4, *calls)
}

func TestIdempotency_NoContentReplay(t *testing.T) {
	r, _, calls := newIdempotentRouter(t)

	require.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, "/v1/proposals/1", "del-1").Code)
	w := send(r, http.MethodDelete, "/v1/proposals/1", "del-1")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "true", w.Header().Get(ReplayedHeader))
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_ServerErrorsAreNotKept(t *testing.T) {
	r, mr, calls := newIdempotentRouter(t)

	send(r, http.MethodPatch, "/v1/fail", "retry-1")
	send(r, http.MethodPatch, "/v1/fail", "retry-1")
	assert.Equal(t, 2, *calls)
	assert.False(t, mr.Exists(idempotencyPrefix+"PATCH:/v1/fail:retry-1"))
}

func TestIdempotency_InFlightConflict(t *testing.T) {
	r, mr, calls := newIdempotentRouter(t)
	require.NoError(t, mr.Set(idempotencyPrefix+"POST:/v1/proposals:busy", pendingMarker))

	w := send(r, http.MethodPost, "/v1/proposals", "busy")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "IDEMPOTENCY_IN_PROGRESS")
	assert.Equal(t, 0, *calls)
}

func TestIdempotency_RedisDownFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	calls := 0
	r := gin.New()
	r.Use(Idempotency(rdb, time.Minute))
	r.POST("/x", func(c *gin.Context) { calls++; c.Status(http.StatusOK) })

	send(r, http.MethodPost, "/x", "k")
	send(r, http.MethodPost, "/x", "k")
	assert.Equal(t, 2, calls)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := send(r, http.MethodGet, "/", "")
	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic(fmt.Sprintf("boom %d", 1)) })

	w := send(r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORS([]string{"https://admin.grota.com.br"}))
	r.GET("/v1/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/v1/ping", nil)
	req.Header.Set("Origin", "https://admin.grota.com.br")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://admin.grota.com.br", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	open := gin.New()
	open.Use(CORS([]string{"*"}))
	open.GET("/v1/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	req = httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Origin", "https://anything.example.com")
	w = httptest.NewRecorder()
	open.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
