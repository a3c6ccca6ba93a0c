package docs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /docs (Swagger UI) y /docs/openapi.yaml.
func RegisterRoutes(route chi.Router) {
	route.Get("/docs", func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, "/docs/", http.StatusMovedPermanently)
	})

	route.Route("/docs", func(route chi.Router) {
		route.Get("/", SwaggerUIHandler())
		route.Get("/openapi.yaml", OpenAPIHandler())
	})
}
