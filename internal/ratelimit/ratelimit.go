package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"social-service/internal/shared/httpx"
)

type Limiter struct {
	R      *redis.Client
	Limit  int64
	Window time.Duration
}

func New(r *redis.Client, limit int64, window time.Duration) *Limiter {
	return &Limiter{R: r, Limit: limit, Window: window}
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, int64, error) {
	k := "rl:" + key
	pipe := l.R.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}
	n := incr.Val()
	return n <= l.Limit, n, nil
}

// Middleware limits per authenticated user. It runs after AuthMiddleware, so
// a missing identity here is a server-side wiring problem, not a client one.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserFromCtx(r)
		if err != nil {
			httpx.WriteJSON(w, map[string]string{"error": "unauthorized"}, http.StatusUnauthorized)
			return
		}
		ok, n, err := l.Allow(r.Context(), uid)
		if err != nil {
			httpx.WriteJSON(w, map[string]string{"error": "rate limiter error"}, http.StatusTooManyRequests)
			return
		}
		if !ok {
			httpx.WriteJSON(w, map[string]string{
				"error": fmt.Sprintf("rate limit exceeded (count=%d, limit=%d)", n, l.Limit),
			}, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
