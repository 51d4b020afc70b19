package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"task_tracker/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	// shared is the store every limiter counts in once Redis is up. Nil
	// means each limiter keeps its own in-process window.
	shared counter
)

type redisCounter struct {
	client *redis.Client
}

func (r redisCounter) incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	val, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if val == 1 {
		// first increment, set expiry
		r.client.Expire(ctx, key, window)
	}
	return val, nil
}

// InitRedisRateLimiter initializes a shared Redis client used by the middleware.
// Provide addr (host:port), password and db index. If connection fails, redisClient remains nil
// and the limiters fall back to in-process counters.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory rate limiting", "addr", addr, "error", err)
		_ = client.Close()
		return
	}
	redisClient = client
	shared = redisCounter{client: client}
	logger.Info("redis rate limiter enabled", "addr", addr)
}

// CloseRedisRateLimiter releases the shared client, if any.
func CloseRedisRateLimiter() {
	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
		shared = nil
	}
}

// RedisRateLimit implements a fixed-window limiter per client IP using Redis INCR/EXPIRE.
// name separates budgets of limiters that may overlap on one request.
// key format: rl:<name>:<window_seconds>:<ip>
func RedisRateLimit(name string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return rateLimit("rl:"+name, maxRequests, window, func(c *gin.Context) (string, bool) {
		return c.ClientIP(), true
	})
}

// UserRateLimit limits requests per authenticated user rather than per IP.
// Requires JWT to run before it.
// key format: url:<window_seconds>:<user_id>
func UserRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return rateLimit("url", maxRequests, window, func(c *gin.Context) (string, bool) {
		id := c.GetString(UserIDKey)
		return id, id != ""
	})
}

func rateLimit(prefix string, maxRequests int, window time.Duration, ident func(*gin.Context) (string, bool)) gin.HandlerFunc {
	fallback := newWindowCounter()
	windowSecs := strconv.FormatInt(int64(window.Seconds()), 10)

	return func(c *gin.Context) {
		id, ok := ident(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		key := prefix + ":" + windowSecs + ":" + id
		endpoint := prefix + ":" + c.FullPath()

		var store counter = fallback
		if shared != nil {
			store = shared
		}

		ctx := c.Request.Context()
		count, err := store.incr(ctx, key, window)
		if err != nil {
			// fail-open on Redis errors
			c.Header("X-RateLimit-Error", "redis-error")
			logger.WithContext(ctx).Warn("rate limiter redis error", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-count), 10))

		if count > int64(maxRequests) {
			RLBlocked.WithLabelValues(endpoint).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues(endpoint).Inc()
		c.Next()
	}
}
