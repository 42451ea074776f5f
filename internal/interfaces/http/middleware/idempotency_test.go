package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	redispkg "rampsync.backend/pkg/redis"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)

	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	redispkg.SetClient(cli)
	t.Cleanup(func() { _ = cli.Close() })
	return srv
}

func idempotentRouter(userID uuid.UUID, calls *int, status int) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(UserIDKey, userID)
		c.Next()
	})
	r.Use(IdempotencyMiddleware())
	r.POST("/x", func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"call": *calls})
	})
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := idempotentRouter(uuid.New(), &calls, http.StatusCreated)

	require.Equal(t, http.StatusCreated, postWithKey(r, "").Code)
	require.Equal(t, http.StatusCreated, postWithKey(r, "").Code)
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_RedisErrorPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: "127.0.0.1:0"}))

	calls := 0
	r := idempotentRouter(uuid.New(), &calls, http.StatusAccepted)
	require.Equal(t, http.StatusAccepted, postWithKey(r, "idem-key").Code)
	require.Equal(t, 1, calls)
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := startMiniRedis(t)
	userID := uuid.New()

	calls := 0
	r := idempotentRouter(userID, &calls, http.StatusCreated)

	first := postWithKey(r, "key-1")
	second := postWithKey(r, "key-1")

	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)
	require.JSONEq(t, first.Body.String(), second.Body.String())
	require.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	require.Equal(t, 1, calls)
	require.True(t, srv.Exists(IdempotencyKey(userID.String(), "key-1")))

	// Another user with the same key is not affected
	other := idempotentRouter(uuid.New(), &calls, http.StatusCreated)
	require.Equal(t, http.StatusCreated, postWithKey(other, "key-1").Code)
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_ProcessingConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := startMiniRedis(t)
	userID := uuid.New()
	require.NoError(t, srv.Set(IdempotencyKey(userID.String(), "key-1"), processingMarker))

	calls := 0
	r := idempotentRouter(userID, &calls, http.StatusCreated)
	w := postWithKey(r, "key-1")

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "ERR_IDEMPOTENCY_CONFLICT")
	require.Equal(t, 0, calls)
}

func TestIdempotencyMiddleware_FailureReleasesKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := startMiniRedis(t)
	userID := uuid.New()

	calls := 0
	r := idempotentRouter(userID, &calls, http.StatusBadGateway)
	require.Equal(t, http.StatusBadGateway, postWithKey(r, "key-2").Code)
	require.False(t, srv.Exists(IdempotencyKey(userID.String(), "key-2")))

	require.Equal(t, http.StatusBadGateway, postWithKey(r, "key-2").Code)
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_LockNotAcquired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	startMiniRedis(t)

	prev := redisSetNX
	redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) {
		return false, errors.New("lock held")
	}
	t.Cleanup(func() { redisSetNX = prev })

	calls := 0
	r := idempotentRouter(uuid.New(), &calls, http.StatusCreated)
	require.Equal(t, http.StatusConflict, postWithKey(r, "key-3").Code)
	require.Equal(t, 0, calls)
}

func TestIdempotencyMiddleware_CorruptEntryIsDiscarded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := startMiniRedis(t)
	userID := uuid.New()
	require.NoError(t, srv.Set(IdempotencyKey(userID.String(), "key-4"), "not json"))

	calls := 0
	r := idempotentRouter(userID, &calls, http.StatusCreated)
	require.Equal(t, http.StatusCreated, postWithKey(r, "key-4").Code)
	require.Equal(t, 1, calls)
}
