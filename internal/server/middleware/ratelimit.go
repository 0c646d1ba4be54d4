package middleware

import (
	"net/http"
	"strconv"

	"github.com/garrettladley/moodly/internal/storage"
	"github.com/garrettladley/moodly/internal/xcontext"
	"github.com/garrettladley/moodly/internal/xerrors"
	"github.com/garrettladley/moodly/internal/xhttp"
	"github.com/garrettladley/moodly/internal/xslog"
)

const (
	reasonIPRateLimit   = "ip_rate_limit"
	reasonUserRateLimit = "user_rate_limit"
)

// RateLimitByIP applies IP-based rate limiting.
func RateLimitByIP(limiter storage.RateLimiter) func(http.Handler) http.Handler {
	return rateLimit(limiter, reasonIPRateLimit, func(r *http.Request) string {
		return "ip:" + xhttp.GetRequestIP(r)
	})
}

// RateLimitByUser limits authenticated requests per user. Must run after
// RequireSession; requests without a user fall back to the client IP.
func RateLimitByUser(limiter storage.RateLimiter) func(http.Handler) http.Handler {
	return rateLimit(limiter, reasonUserRateLimit, func(r *http.Request) string {
		if userID, ok := xcontext.GetUserID(r.Context()); ok {
			return "user:" + strconv.FormatInt(userID, 10)
		}
		return "ip:" + xhttp.GetRequestIP(r)
	})
}

func rateLimit(limiter storage.RateLimiter, reason string, keyFunc func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := keyFunc(r)

			result, err := limiter.Allow(ctx, key)
			if err != nil {
				xslog.FromContext(ctx).ErrorContext(ctx, "rate limit check failed",
					xslog.ErrorGroup(err),
					xslog.IP(xhttp.GetRequestIP(r)),
				)
				xerrors.WriteError(ctx, w, xerrors.ServiceUnavailable(xerrors.WithMessage("rate limit check failed")))
				return
			}

			if !result.Allowed {
				xerrors.WriteError(ctx, w, xerrors.TooManyRequests(
					xerrors.WithMessage("too many requests"),
					xerrors.WithRetryAfter(result.RetryAfter),
					xerrors.WithReason(reason),
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
