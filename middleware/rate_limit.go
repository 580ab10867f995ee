package middleware

import (
	"fmt"
	"securix/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Redis        *redis.Client
	Requests     int           // Number of requests allowed
	Window       time.Duration // Time window
	KeyPrefix    string        // Redis key prefix
	ErrorMessage string        // Custom error message
}

// RateLimiter provides fixed-window rate limiting keyed by client IP. When
// Redis is unavailable the limiter fails open.
type RateLimiter struct {
	config RateLimitConfig
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rate_limit"
	}
	if config.ErrorMessage == "" {
		config.ErrorMessage = "Rate limit exceeded"
	}
	return &RateLimiter{config: config}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.config.Redis == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("%s:%s", rl.config.KeyPrefix, c.ClientIP())

		count, err := rl.config.Redis.Incr(ctx, key).Result()
		if err != nil {
			logrus.Warnf("Rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.config.Redis.Expire(ctx, key, rl.config.Window)
		}

		if count > int64(rl.config.Requests) {
			utils.RateLimitResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// SOSRateLimit returns a deliberately generous limiter for the panic-button
// endpoints: throttling an emergency must only ever stop a runaway client.
func SOSRateLimit(redisClient *redis.Client) gin.HandlerFunc {
	limiter := NewRateLimiter(RateLimitConfig{
		Redis:     redisClient,
		Requests:  30,
		Window:    time.Minute,
		KeyPrefix: "rate_limit:sos",
	})
	return limiter.Middleware()
}
