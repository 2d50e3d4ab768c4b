package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/relay-hub/settlement-hub/internal/api/shared/errors"
	"github.com/relay-hub/settlement-hub/internal/logger"
	"github.com/relay-hub/settlement-hub/internal/metrics"
	"github.com/relay-hub/settlement-hub/internal/ratelimit"
)

// RateLimit rejects callers that exceed their request budget with 429.
// Limiter errors let the request through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		decision, err := limiter.Allow(ctx, c.ClientIP())
		if err != nil {
			logger.WarnCtx(ctx, "Rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}

		if !decision.Allowed {
			metrics.RateLimitedRequests.Inc()
			c.Header("Retry-After", strconv.Itoa(max(1, int(math.Ceil(decision.RetryAfter.Seconds())))))
			apiErr := apierrors.NewTooManyRequestsError("Rate limit exceeded")
			c.AbortWithStatusJSON(apiErr.StatusCode(), apiErr)
			return
		}

		c.Next()
	}
}
