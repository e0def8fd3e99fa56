package utils

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var rateLimitClient *redis.Client

// InitRateLimiter connects the rate limiter to Redis. When addr is empty
// the limiter stays disabled and RateLimitMiddleware passes everything
// through.
func InitRateLimiter(addr string) error {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %v", err)
	}
	rateLimitClient = client
	return nil
}

// RateLimitMiddleware limits each client IP to maxRequests per window,
// counted in a fixed Redis window per route.
func RateLimitMiddleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rateLimitClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		ctx := c.Request.Context()

		count, err := rateLimitClient.Incr(ctx, key).Result()
		if err != nil {
			LogError("Rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rateLimitClient.Expire(ctx, key, window)
		}

		if count > int64(maxRequests) {
			LogError("Rate limit exceeded for %s on %s", c.ClientIP(), c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "Too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}
