package httpx

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/insight-hunter/insight-hunter/internal/web/platform/requestmeta"
)

// Counter increments a named counter, setting the expiry window
// when the counter is created.
type Counter interface {
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimit bounds requests per client IP within a rolling window.
// When the backing counter fails the request is allowed through.
func RateLimit(counter Counter, limit int64, window time.Duration, prefix string) Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		if counter == nil || limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := requestmeta.ClientIP(r)
			if ip == "" {
				next.ServeHTTP(w, r)
				return
			}
			count, err := counter.IncrementWithTTL(RequestContext(r), prefix+":"+ip, window)
			if err != nil {
				log.Printf("rate limit counter unavailable prefix=%s err=%v", prefix, err)
				next.ServeHTTP(w, r)
				return
			}
			if count > limit {
				_ = WriteJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
