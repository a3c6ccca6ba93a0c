package csvimport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lelo88/collectibles-api-golang/internal/httpx"
	"github.com/Lelo88/collectibles-api-golang/internal/items"
	"github.com/Lelo88/collectibles-api-golang/internal/logging"
	"go.uber.org/zap"
)

// ImporterAPI es lo que el handler necesita del importer.
type ImporterAPI interface {
	Import(ctx context.Context, reader io.Reader, dryRun bool) (Report, error)
}

// ItemSource entrega todos los items para el export.
type ItemSource interface {
	All(ctx context.Context) ([]items.Item, error)
}

// Handler HTTP para import y export CSV.
type Handler struct {
	importer       ImporterAPI
	items          ItemSource
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewHandler(importer ImporterAPI, source ItemSource, maxUploadBytes int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{importer: importer, items: source, maxUploadBytes: maxUploadBytes, logger: logger}
}

// Import maneja POST /import?dryRun=true|false con el archivo en el campo "file".
func (handler *Handler) Import(writer http.ResponseWriter, request *http.Request) {
	dryRun, err := parseDryRun(request.URL.Query().Get("dryRun"))
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "dryRun must be true or false")
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxUploadBytes)
	if err := request.ParseMultipartForm(handler.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.Fail(writer, request, http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file exceeds the size limit")
			return
		}
		httpx.Fail(writer, request, http.StatusBadRequest, "missing_file", "form field 'file' is required")
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	file, header, err := request.FormFile("file")
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "missing_file", "form field 'file' is required")
		return
	}
	defer file.Close()

	if header.Size == 0 {
		httpx.Fail(writer, request, http.StatusBadRequest, "empty_file", "uploaded file is empty")
		return
	}

	report, err := handler.importer.Import(request.Context(), file, dryRun)
	if err != nil {
		handler.writeImportError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, report)
}

// Export maneja GET /export.csv.
func (handler *Handler) Export(writer http.ResponseWriter, request *http.Request) {
	all, err := handler.items.All(request.Context())
	if err != nil {
		logging.FromContext(request.Context(), handler.logger).Error("export query failed", zap.Error(err))
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
	writer.Header().Set("Content-Disposition", `attachment; filename="collection.csv"`)

	// Los headers ya salieron: un error acá solo se puede registrar.
	if err := WriteCSV(writer, all); err != nil {
		logging.FromContext(request.Context(), handler.logger).Error("export write failed", zap.Error(err))
	}
}

func (handler *Handler) writeImportError(writer http.ResponseWriter, request *http.Request, err error) {
	switch {
	case errors.Is(err, ErrEmptyCSV):
		httpx.Fail(writer, request, http.StatusBadRequest, "empty_csv", "CSV appears empty.")
	case errors.Is(err, ErrUnreadable):
		httpx.Fail(writer, request, http.StatusBadRequest, "unreadable_file", "uploaded file could not be read as CSV")
	case errors.Is(err, ErrCommitFailed):
		httpx.Fail(writer, request, http.StatusInternalServerError, "import_failed", "import could not be saved; no rows were inserted")
	default:
		logging.FromContext(request.Context(), handler.logger).Error("import failed", zap.Error(err))
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

// parseDryRun acepta vacío como false.
func parseDryRun(raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
