package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"annia/internal/shared/errors"
	"annia/internal/shared/logger"
	"annia/internal/shared/utils"
)

const msgTooManyRequests = "Demasiadas solicitudes, inténtalo más tarde."

// Limiter decides whether one more request from subject fits its window.
type Limiter interface {
	Allow(ctx context.Context, subject string) (bool, error)
}

// RateLimit enforces limiter per client IP. When the limiter backend is
// unavailable the request is let through.
func RateLimit(limiter Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request",
				"client_ip", c.ClientIP(),
				"error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponseWithError(c, errors.NewTooManyRequestsError(msgTooManyRequests))
			c.Abort()
			return
		}

		c.Next()
	}
}
