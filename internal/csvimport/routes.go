package csvimport

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes registra import y export en el router.
// El import queda sin timeout: una vez subido el archivo se procesa completo.
func RegisterRoutes(route chi.Router, handler *Handler, exportTimeout time.Duration) {
	route.Post("/import", handler.Import)
	route.With(middleware.Timeout(exportTimeout)).Get("/export.csv", handler.Export)
}
