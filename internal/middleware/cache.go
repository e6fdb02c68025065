package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/registrar-dev/academic-records-api/internal/service"
)

type cachedWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *cachedWriter) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

// ListCache serves entity list GETs from Redis when enabled. The key covers
// the full request URI so every search, sort and page combination caches
// independently. Report routes are never mounted behind it: reports must
// reflect committed state on every request. A failing Redis degrades to
// pass-through.
func ListCache(client *redis.Client, metricsSvc *service.MetricsService, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if client == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := "list:" + c.Request.URL.RequestURI()
		cached, err := client.Get(c.Request.Context(), key).Bytes()
		if err == nil {
			metricsSvc.RecordCacheLookup(true)
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}
		if err != redis.Nil {
			logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		metricsSvc.RecordCacheLookup(false)

		writer := &cachedWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}
		if err := client.Set(c.Request.Context(), key, writer.body.Bytes(), ttl).Err(); err != nil {
			logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
}
