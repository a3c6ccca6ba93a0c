package platforms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Lelo88/collectibles-api-golang/internal/httpx"
)

// ServiceAPI define lo que el handler necesita.
type ServiceAPI interface {
	List(ctx context.Context) ([]Platform, error)
	Create(ctx context.Context, input CreatePlatformInput) (Platform, error)
}

// Handler HTTP para plataformas.
type Handler struct {
	service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// List maneja GET /platforms.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	platforms, err := handler.service.List(request.Context())
	if err != nil {
		writeError(writer, request, err)
		return
	}
	httpx.OK(writer, request, http.StatusOK, platforms)
}

// Create maneja POST /platforms.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input CreatePlatformInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	platform, err := handler.service.Create(request.Context(), input)
	if err != nil {
		writeError(writer, request, err)
		return
	}
	httpx.OK(writer, request, http.StatusCreated, platform)
}

func writeError(writer http.ResponseWriter, request *http.Request, err error) {
	switch {
	case errors.Is(err, ErrorInvalidInput):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data")
	case errors.Is(err, ErrorDuplicateName):
		httpx.Fail(writer, request, http.StatusConflict, "conflict", "platform name already exists")
	default:
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}
