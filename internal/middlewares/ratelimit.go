package middlewares

import (
	"net/http"
	"strconv"

	"github.com/botpanel/botpanel/internal/cache"
	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/helpers"

	"go.uber.org/zap"
)

// RateLimit throttles callers per client IP. It is a no-op without a cache or with a zero limit.
func RateLimit(c cache.ICache, trustedProxies []string, requestsPerMinute int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if c == nil || requestsPerMinute <= 0 {
			return next
		}

		fn := func(w http.ResponseWriter, r *http.Request) {
			clientIP := helpers.ClientIP(r, trustedProxies)

			retryAfter, err := c.GetRateLimit(clientIP, requestsPerMinute)
			if err != nil {
				GetLogger(r).Warn("Rate limit check failed", zap.String("client_ip", clientIP), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if retryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				helpers.RespondWithError(w, http.StatusTooManyRequests, []string{apierrors.ErrTooManyRequests})
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
