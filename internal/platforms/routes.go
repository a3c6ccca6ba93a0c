package platforms

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra rutas de plataformas en el router.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Route("/platforms", func(route chi.Router) {
		route.Get("/", handler.List)
		route.Post("/", handler.Create)
	})
}
