package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Lelo88/collectibles-api-golang/internal/httpx"
)

const readyTimeout = 2 * time.Second

// Pinger es lo único que /ready necesita de la base.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler sirve los chequeos de liveness y readiness.
type Handler struct {
	database Pinger
	now      func() time.Time
}

// New crea el handler. Con database nil, /ready siempre responde 503.
func New(database Pinger) *Handler {
	return &Handler{database: database, now: time.Now}
}

// Health responde mientras el proceso viva; no toca la base.
func (handler *Handler) Health(writer http.ResponseWriter, request *http.Request) {
	httpx.OK(writer, request, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   handler.now().UTC().Format(time.RFC3339),
	})
}

// Ready hace ping a la base con un timeout corto e informa cuánto tardó.
func (handler *Handler) Ready(writer http.ResponseWriter, request *http.Request) {
	if handler.database == nil {
		httpx.Fail(writer, request, http.StatusServiceUnavailable, "not_ready", "database pool not configured")
		return
	}

	ctx, cancel := context.WithTimeout(request.Context(), readyTimeout)
	defer cancel()

	started := handler.now()
	if err := handler.database.Ping(ctx); err != nil {
		httpx.Fail(writer, request, http.StatusServiceUnavailable, "not_ready", "database is not reachable")
		return
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{
		"status":     "ready",
		"db_ping_ms": handler.now().Sub(started).Milliseconds(),
	})
}
