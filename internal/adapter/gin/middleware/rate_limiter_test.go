package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func setupLimitedEngine(t *testing.T, client *redis.Client, config RateLimiterConfig) *gin.Engine {
	rl := NewRateLimiter(client, config, zaptest.NewLogger(t))
	r := newEngine(rl.Handler())
	r.GET("/api/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doRequest(r *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_WithinBurst(t *testing.T) {
	client, _ := setupTestRedis(t)
	r := setupLimitedEngine(t, client, RateLimiterConfig{RequestsPerSecond: 0.001, BurstCapacity: 5})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(r, "127.0.0.1:12345"))
	}
}

func TestRateLimiter_ExceedBurst(t *testing.T) {
	client, _ := setupTestRedis(t)
	r := setupLimitedEngine(t, client, RateLimiterConfig{RequestsPerSecond: 0.001, BurstCapacity: 2})

	assert.Equal(t, http.StatusOK, doRequest(r, "127.0.0.1:12345"))
	assert.Equal(t, http.StatusOK, doRequest(r, "127.0.0.1:12345"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "127.0.0.1:12345"))
}

func TestRateLimiter_PerClient(t *testing.T) {
	client, _ := setupTestRedis(t)
	r := setupLimitedEngine(t, client, RateLimiterConfig{RequestsPerSecond: 0.001, BurstCapacity: 1})

	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.2:1000"))
}

func TestRateLimiter_FailOpen(t *testing.T) {
	client, mr := setupTestRedis(t)
	r := setupLimitedEngine(t, client, RateLimiterConfig{RequestsPerSecond: 0.001, BurstCapacity: 1})

	mr.Close()

	assert.Equal(t, http.StatusOK, doRequest(r, "127.0.0.1:12345"))
	assert.Equal(t, http.StatusOK, doRequest(r, "127.0.0.1:12345"))
}
