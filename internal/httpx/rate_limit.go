package httpx

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Un bucket lleno se recarga en un minuto; pasado este tiempo sin uso la
// entrada se puede descartar sin cambiar el cupo de esa IP.
const limiterTTL = 3 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter aplica un token bucket por IP de cliente.
// Espera que middleware.RealIP haya normalizado RemoteAddr.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter permite perMinute requests por minuto y por IP, con ráfaga igual al cupo.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		ttl:       limiterTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (limiter *RateLimiter) limiterFor(key string) *rate.Limiter {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := limiter.now()
	if now.Sub(limiter.lastSweep) > limiter.ttl {
		limiter.sweep(now)
	}

	entry, ok := limiter.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep borra las IPs que no aparecieron en el último ttl. Requiere mu tomado.
func (limiter *RateLimiter) sweep(now time.Time) {
	for key, entry := range limiter.limiters {
		if now.Sub(entry.lastSeen) > limiter.ttl {
			delete(limiter.limiters, key)
		}
	}
	limiter.lastSweep = now
}

// Middleware corta con 429 cuando la IP agotó su cupo.
func (limiter *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !limiter.limiterFor(clientKey(request)).Allow() {
			writer.Header().Set("Retry-After", "60")
			Fail(writer, request, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func clientKey(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
