package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/utils"
)

// RateLimitConfig configures the per-client token bucket guarding write routes.
type RateLimitConfig struct {
	Burst        int // bucket capacity; 0 or less disables limiting
	RefillPerMin int
	MaxClients   int           // evict idle buckets once this many clients are tracked; 0 means unbounded
	IdleTTL      time.Duration // buckets untouched for this long are evicted
	TrustProxy   bool

	// Now and OnThrottle are optional hooks, mostly for tests and metrics.
	Now        func() time.Time
	OnThrottle func(r *http.Request)
}

type tokenBucket struct {
	tokens  float64
	updated time.Time
}

type decision struct {
	allowed    bool
	remaining  int
	retryAfter int
}

type clientLimiter struct {
	capacity float64
	perSec   float64
	maxKeys  int
	idleTTL  time.Duration

	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	lastEvict time.Time
}

func newClientLimiter(cfg RateLimitConfig, now time.Time) *clientLimiter {
	refill := max(cfg.RefillPerMin, 1)
	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &clientLimiter{
		capacity:  float64(max(cfg.Burst, 1)),
		perSec:    float64(refill) / 60.0,
		maxKeys:   cfg.MaxClients,
		idleTTL:   ttl,
		buckets:   make(map[string]*tokenBucket),
		lastEvict: now,
	}
}

func (l *clientLimiter) take(client string, now time.Time) decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastEvict) >= time.Minute || (l.maxKeys > 0 && len(l.buckets) >= l.maxKeys) {
		l.evictIdle(now)
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &tokenBucket{tokens: l.capacity, updated: now}
		l.buckets[client] = b
	}

	if elapsed := now.Sub(b.updated).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.perSec)
	}
	b.updated = now

	if b.tokens < 1 {
		wait := int(math.Ceil((1 - b.tokens) / l.perSec))
		return decision{retryAfter: max(wait, 1)}
	}
	b.tokens--
	return decision{allowed: true, remaining: int(b.tokens)}
}

// evictIdle drops buckets that have been idle past the TTL. l.mu must be held.
func (l *clientLimiter) evictIdle(now time.Time) {
	for client, b := range l.buckets {
		if now.Sub(b.updated) > l.idleTTL {
			delete(l.buckets, client)
		}
	}
	l.lastEvict = now
}

// RateLimit applies a token bucket per client IP.
// A Burst of 0 or less disables limiting (passthrough).
func RateLimit(cfg RateLimitConfig, log logger.Logger) func(http.Handler) http.Handler {
	if cfg.Burst <= 0 {
		log.Debug("RateLimit: disabled, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	l := newClientLimiter(cfg, now())
	limit := strconv.Itoa(cfg.Burst)

	log.Debug("RateLimit: enabled",
		logger.Int("burst", cfg.Burst),
		logger.Int("refill_per_min", cfg.RefillPerMin),
		logger.Bool("trust_proxy", cfg.TrustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := utils.ClientIP(r, cfg.TrustProxy)
			d := l.take(client, now())

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.remaining))

			if !d.allowed {
				log.Debug("RateLimit: client throttled",
					logger.String("client", client),
					logger.Int("retry_after_s", d.retryAfter))
				if cfg.OnThrottle != nil {
					cfg.OnThrottle(r)
				}
				w.Header().Set("Retry-After", strconv.Itoa(d.retryAfter))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
