package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"contractor-directory-api/internal/metrics"
	"contractor-directory-api/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Limiter decides whether a request keyed by client may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// MsgTooManyRequests is the 429 body.
const MsgTooManyRequests = "Too many requests. Please try again later."

// RateLimit rejects clients over their quota with 429. Limiter failures let the request through.
func RateLimit(limiter Limiter, m *metrics.Metrics, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			m.RateLimited()
			c.Header("Retry-After", strconv.Itoa(retryAfter(decision.ResetAt)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": MsgTooManyRequests})
			return
		}

		c.Next()
	}
}

func retryAfter(resetAt time.Time) int {
	seconds := int(math.Ceil(time.Until(resetAt).Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}
