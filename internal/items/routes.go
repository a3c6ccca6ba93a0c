package items

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra rutas de items y metadatos de enums en el router.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Route("/items", func(route chi.Router) {
		route.Post("/", handler.Create)
		route.Get("/", handler.List)
		route.Get("/{id}", handler.GetByID)
		route.Patch("/{id}", handler.Patch)
		route.Delete("/{id}", handler.Delete)
	})
	route.Get("/meta/conditions", handler.Conditions)
	route.Get("/meta/kinds", handler.Kinds)
	route.Get("/genres", handler.Genres)
}
