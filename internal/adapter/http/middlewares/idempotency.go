package middlewares

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/pkg"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "Idempotent-Replayed"

	idempotencyPrefix = "idempotency:"
	pendingMarker     = "pending"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a mutating request that carries an
// already-seen Idempotency-Key, so client retries after a timeout do not apply twice.
// Keys are scoped by method and path. 5xx responses are not kept. Redis failures
// let the request through.
func Idempotency(rdb redis.UniversalClient, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
		if rdb == nil || key == "" || !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := idempotencyPrefix + c.Request.Method + ":" + c.Request.URL.Path + ":" + key
		log := logger.Get().WithFields(logrus.Fields{"idempotency_key": key, "path": c.Request.URL.Path})

		claimed, err := rdb.SetNX(ctx, cacheKey, pendingMarker, ttl).Result()
		if err != nil {
			log.WithError(err).Warn("[http][idempotency] redis unavailable; proceeding without replay")
			c.Next()
			return
		}

		if !claimed {
			replay(c, rdb, cacheKey, log)
			return
		}

		w := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		status := w.Status()
		if status >= http.StatusInternalServerError {
			if err := rdb.Del(ctx, cacheKey).Err(); err != nil {
				log.WithError(err).Warn("[http][idempotency] release failed")
			}
			return
		}

		raw, _ := json.Marshal(cachedResponse{Status: status, ContentType: w.Header().Get("Content-Type"), Body: w.body.Bytes()})
		if err := rdb.Set(ctx, cacheKey, raw, ttl).Err(); err != nil {
			log.WithError(err).Warn("[http][idempotency] store failed")
		}
	}
}

func replay(c *gin.Context, rdb redis.UniversalClient, cacheKey string, log *logrus.Entry) {
	raw, err := rdb.Get(c.Request.Context(), cacheKey).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.WithError(err).Warn("[http][idempotency] lookup failed; proceeding without replay")
		c.Next()
		return
	}

	var cached cachedResponse
	if errors.Is(err, redis.Nil) || string(raw) == pendingMarker || json.Unmarshal(raw, &cached) != nil || cached.Status == 0 {
		appErr := pkg.NewDomainErrorSimple("IDEMPOTENCY_IN_PROGRESS", "A request with this Idempotency-Key is still being processed", http.StatusConflict)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.WithField("status", cached.Status).Info("[http][idempotency] replaying stored response")
	c.Header(ReplayedHeader, "true")
	if cached.Status == http.StatusNoContent || len(cached.Body) == 0 {
		c.AbortWithStatus(cached.Status)
		return
	}
	c.Data(cached.Status, cached.ContentType, cached.Body)
	c.Abort()
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
