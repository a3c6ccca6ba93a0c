package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(2)
	calls := 0
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusNoContent, send("10.0.0.1:1000").Code)
	require.Equal(t, http.StatusNoContent, send("10.0.0.1:2000").Code)

	rec := send("10.0.0.1:3000")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "60", rec.Header().Get("Retry-After"))
	resp := decodeResponse(t, rec)
	require.Equal(t, "rate_limited", resp.Error.Code)

	// Otra IP tiene su propio cupo.
	require.Equal(t, http.StatusNoContent, send("10.0.0.2:1000").Code)
	require.Equal(t, 3, calls)
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.168.1.10:5555"
	require.Equal(t, "192.168.1.10", clientKey(req))

	req.RemoteAddr = "192.168.1.10"
	require.Equal(t, "192.168.1.10", clientKey(req))
}

func TestNewRateLimiter_MinimumOne(t *testing.T) {
	limiter := NewRateLimiter(0)
	require.Equal(t, 1, limiter.burst)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(60)
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock

	limiter.limiterFor("10.0.0.1")
	clock = clock.Add(time.Minute)
	limiter.limiterFor("10.0.0.2")
	require.Len(t, limiter.limiters, 2)

	// Pasado el ttl desde el último barrido, la primera IP lleva más de ttl sin venir.
	clock = clock.Add(limiterTTL)
	limiter.limiterFor("10.0.0.3")

	require.NotContains(t, limiter.limiters, "10.0.0.1")
	require.Contains(t, limiter.limiters, "10.0.0.2")
	require.Contains(t, limiter.limiters, "10.0.0.3")
	require.Equal(t, clock, limiter.lastSweep)
}

func TestRateLimiter_ActiveClientKeepsBucket(t *testing.T) {
	limiter := NewRateLimiter(1)
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock

	first := limiter.limiterFor("10.0.0.1")
	for i := 0; i < 5; i++ {
		clock = clock.Add(time.Minute)
		require.Same(t, first, limiter.limiterFor("10.0.0.1"))
	}
}
