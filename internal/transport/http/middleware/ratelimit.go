package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/talenthub/account-service/internal/domain"
	"github.com/talenthub/account-service/internal/infrastructure/redis"
)

// RateLimiter is the slice of the redis limiter this middleware needs.
type RateLimiter interface {
	AllowFixedWindow(ctx context.Context, key string, limit int, window time.Duration) (redis.Decision, error)
}

// FixedWindowConfig names the route and sets its budget per window.
type FixedWindowConfig struct {
	RouteKey string
	Limit    int
	Window   time.Duration
}

// RateLimitFixedWindow throttles a route per caller: the authenticated user
// id when Auth ran earlier in the chain, the client IP otherwise. A nil or
// failing limiter lets traffic through, availability wins over throttling.
func RateLimitFixedWindow(limiter RateLimiter, cfg FixedWindowConfig, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.RouteKey == "" {
		cfg.RouteKey = "unknown"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := limiterKey(cfg, r)
			dec, err := limiter.AllowFixedWindow(r.Context(), key, cfg.Limit, cfg.Window)
			switch {
			case err != nil:
				next.ServeHTTP(w, r)
			case dec.Allowed:
				next.ServeHTTP(w, r)
			default:
				if dec.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(dec.RetryAfter.Seconds())))
				}
				writeErr(w, r, domain.ErrRateLimited(cfg.RouteKey))
			}
		})
	}
}

// limiterKey shapes "rl:<route>:<identity>:<bucket>" so a new window starts
// with a fresh counter even if the old key lingers past its TTL.
func limiterKey(cfg FixedWindowConfig, r *http.Request) string {
	return "rl:" + cfg.RouteKey + ":" + userOrIP(r) + ":" +
		strconv.FormatInt(windowBucket(time.Now(), cfg.Window), 10)
}

func windowBucket(now time.Time, window time.Duration) int64 {
	sec := int64(window.Seconds())
	if sec <= 0 {
		sec = 60
	}
	return now.Unix() / sec
}

func userOrIP(r *http.Request) string {
	if uid, ok := UserIDFromContext(r.Context()); ok && strings.TrimSpace(uid) != "" {
		return "u:" + uid
	}
	return "ip:" + clientIP(r)
}

// clientIP takes the first X-Forwarded-For hop when present. Only meaningful
// behind a proxy we control; a direct caller can forge the header.
func clientIP(r *http.Request) string {
	if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}
