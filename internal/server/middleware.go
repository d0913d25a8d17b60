package server

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/simskyeconomy/simsky-core/internal/api"
	"github.com/simskyeconomy/simsky-core/internal/auth"
	"github.com/simskyeconomy/simsky-core/internal/config"
)

// RateLimiter throttles requests per source address. It sits in front
// of the credential guard as a coarser defense layer, independent of
// the per-account lockout counter.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	limiters map[string]*ipLimiter
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterIdleTTL = 10 * time.Minute

func NewRateLimiter(config *config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(float64(config.RequestsPerMinute) / 60.0),
		burst:    config.Burst,
		limiters: make(map[string]*ipLimiter),
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	lim, ok := rl.limiters[ip]
	if !ok {
		lim = &ipLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = lim
	}
	lim.lastSeen = now

	for ip, l := range rl.limiters {
		if now.Sub(l.lastSeen) > limiterIdleTTL {
			delete(rl.limiters, ip)
		}
	}

	return lim.limiter.Allow()
}

// Middleware rejects over-limit requests before any handler logic runs.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(auth.ClientIP(r)) {
			api.WriteError(w, http.StatusTooManyRequests, "too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}
