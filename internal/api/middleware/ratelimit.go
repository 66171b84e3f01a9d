package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedClients caps the limiter map. Limiters carry no durable state,
// so dropping the whole map once it grows past the cap is safe: clients
// simply start from a fresh burst allowance.
const maxTrackedClients = 10000

// RateLimiter hands out one token bucket per client IP. Reasoning calls are
// CPU-bound, so the limit protects compute rather than a backing store.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*rate.Limiter),
		limit:   rate.Limit(rps),
		burst:   burst,
	}
}

// Allow reports whether a request from the given client fits its budget.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	lim, ok := rl.clients[client]
	if !ok {
		if len(rl.clients) >= maxTrackedClients {
			rl.clients = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[client] = lim
	}
	rl.mu.Unlock()
	return lim.Allow()
}

// Cleanup drops all tracked limiters.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	rl.clients = make(map[string]*rate.Limiter)
	rl.mu.Unlock()
}

// RateLimit returns per-IP limiting middleware. The client key comes from
// X-Real-IP when chi's RealIP middleware runs earlier in the chain.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rps, burst)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			limiter.Cleanup()
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.Header.Get("X-Real-IP")
			if ip == "" {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
