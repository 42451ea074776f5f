package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"rampsync.backend/pkg/logger"
	"rampsync.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// IdempotencyKey returns the Redis key a request's response is stored under
func IdempotencyKey(userID, key string) string {
	return redis.Key("idempotency", userID, key)
}

// IdempotencyMiddleware replays the stored 2xx response for a repeated
// Idempotency-Key from the same user. Redis outages degrade to pass-through.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID := "anonymous"
		if id, ok := GetUserID(c); ok {
			userID = id.String()
		}
		storageKey := IdempotencyKey(userID, key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error": "Request already in progress",
					"code":  "ERR_IDEMPOTENCY_CONFLICT",
				})
				return
			}
			var cached cachedResponse
			if json.Unmarshal([]byte(val), &cached) != nil || cached.Status == 0 {
				_ = redisDel(ctx, storageKey)
				break
			}
			c.Header("X-Idempotency-Hit", "true")
			c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
			c.Abort()
			return
		case !redis.IsNil(err):
			logger.Warn(ctx, "Idempotency store unavailable, passing through", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request in progress",
				"code":  "ERR_IDEMPOTENCY_CONFLICT",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 && json.Valid(w.body.Bytes()) {
			payload, _ := json.Marshal(cachedResponse{Status: status, Body: w.body.Bytes()})
			if err := redisSet(ctx, storageKey, string(payload), RetentionDuration); err != nil {
				logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
			}
			return
		}
		// Release the key so a retry can run
		_ = redisDel(ctx, storageKey)
	}
}
