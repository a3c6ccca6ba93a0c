package items

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lelo88/collectibles-api-golang/internal/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	Create(ctx context.Context, in CreateItemInput) (Item, error)
	List(ctx context.Context, page, limit int, filter ListFilter) ([]Item, int, error)
	Get(ctx context.Context, id string) (Item, error)
	Update(ctx context.Context, id string, in UpdateItemInput) (Item, error)
	Delete(ctx context.Context, id string) error
}

// Handler HTTP para items.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de items.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Claves anulables del PATCH: si llegan en null se setean a NULL.
var nullableKeys = []string{
	"purchase_price", "purchase_date", "estimated_value", "notes",
	"publisher", "developer", "genre", "release_year", "barcode",
}

// Create maneja POST /items.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var itemInput CreateItemInput
	if err := json.NewDecoder(request.Body).Decode(&itemInput); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	item, err := handler.service.Create(request.Context(), itemInput)
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusCreated, item)
}

// List maneja GET /items con filtros, orden y paginación.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	page, limit, err := parsePagination(request)
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_pagination", "invalid pagination parameters")
		return
	}

	query := request.URL.Query()
	filter := ListFilter{
		Query:    strings.TrimSpace(query.Get("q")),
		Platform: query.Get("platform"),
		Kind:     query.Get("kind"),
		Region:   query.Get("region"),
		Genre:    query.Get("genre"),
		Sort:     query.Get("sort"),
	}
	if value := strings.TrimSpace(query.Get("is_cib")); value != "" {
		isCIB, err := strconv.ParseBool(value)
		if err != nil {
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "is_cib must be true or false")
			return
		}
		filter.IsCIB = &isCIB
	}

	items, total, err := handler.service.List(request.Context(), page, limit, filter)
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{
		"items": items,
		"pagination": pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// parsePagination parsea page y limit con defaults y límites razonables.
func parsePagination(request *http.Request) (int, int, error) {
	const (
		defaultPage  = 1
		defaultLimit = 20
		maxLimit     = 100
	)

	query := request.URL.Query()

	page := defaultPage
	limit := defaultLimit

	if value := strings.TrimSpace(query.Get("page")); value != "" {
		pageNumber, err := strconv.Atoi(value)
		if err != nil {
			return 0, 0, err
		}
		if pageNumber < 1 {
			return 0, 0, ErrorInvalidInput
		}
		page = pageNumber
	}

	if value := strings.TrimSpace(query.Get("limit")); value != "" {
		limitNumber, err := strconv.Atoi(value)
		if err != nil {
			return 0, 0, err
		}
		if limitNumber < 1 {
			return 0, 0, ErrorInvalidInput
		}
		if limitNumber > maxLimit {
			limitNumber = maxLimit
		}
		limit = limitNumber
	}

	return page, limit, nil
}

// GetByID maneja GET /items/{id}.
// Valida que el id sea UUID porque en DB es uuid; esto evita errores innecesarios.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	id, ok := itemID(writer, request)
	if !ok {
		return
	}

	item, err := handler.service.Get(request.Context(), id)
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, item)
}

// Patch maneja PATCH /items/{id}.
func (handler *Handler) Patch(writer http.ResponseWriter, request *http.Request) {
	id, ok := itemID(writer, request)
	if !ok {
		return
	}

	// Primero leemos raw para saber qué campos vinieron.
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(request.Body).Decode(&raw); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	// Re-encode y decode al struct para reutilizar tags y tipos.
	byteJSON, _ := json.Marshal(raw)

	var itemInputUpdated UpdateItemInput
	if err := json.Unmarshal(byteJSON, &itemInputUpdated); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	// "notes": null => NULL; sin "notes" => no se toca.
	for _, key := range nullableKeys {
		if _, present := raw[key]; present {
			if itemInputUpdated.Present == nil {
				itemInputUpdated.Present = map[string]bool{}
			}
			itemInputUpdated.Present[key] = true
		}
	}

	item, err := handler.service.Update(request.Context(), id, itemInputUpdated)
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, item)
}

// Delete maneja DELETE /items/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id, ok := itemID(writer, request)
	if !ok {
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		writeError(writer, request, err)
		return
	}

	// 204 No Content: respuesta vacía.
	writer.WriteHeader(http.StatusNoContent)
}

// Conditions maneja GET /meta/conditions.
func (handler *Handler) Conditions(writer http.ResponseWriter, request *http.Request) {
	httpx.OK(writer, request, http.StatusOK, ConditionNames())
}

// Kinds maneja GET /meta/kinds.
func (handler *Handler) Kinds(writer http.ResponseWriter, request *http.Request) {
	httpx.OK(writer, request, http.StatusOK, KindNames())
}

// Genres maneja GET /genres.
func (handler *Handler) Genres(writer http.ResponseWriter, request *http.Request) {
	httpx.OK(writer, request, http.StatusOK, GenreNames())
}

func itemID(writer http.ResponseWriter, request *http.Request) (string, bool) {
	id := chi.URLParam(request, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return "", false
	}
	return id, true
}

// writeError traduce errores de dominio a HTTP. No filtramos detalles internos.
func writeError(writer http.ResponseWriter, request *http.Request, err error) {
	switch {
	case errors.Is(err, ErrorInvalidInput):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data")
	case errors.Is(err, ErrorUnknownPlatform):
		httpx.Fail(writer, request, http.StatusBadRequest, "unknown_platform", "platform does not exist")
	case errors.Is(err, ErrorNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, "not_found", "item not found")
	default:
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}
