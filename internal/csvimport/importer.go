package csvimport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Lelo88/collectibles-api-golang/internal/items"
	"github.com/Lelo88/collectibles-api-golang/internal/logging"
	"go.uber.org/zap"
)

var (
	ErrEmptyCSV     = errors.New("csv appears empty")
	ErrUnreadable   = errors.New("csv could not be read")
	ErrCommitFailed = errors.New("import commit failed")
)

// maxLineBytes acota el tamaño de una línea; más largo se trata como archivo ilegible.
const maxLineBytes = 1 << 20

// PlatformSource entrega el índice nombre → id de plataformas.
type PlatformSource interface {
	NameIndex(ctx context.Context) (map[string]int64, error)
}

// ItemStore persiste las filas válidas en una sola operación atómica.
type ItemStore interface {
	InsertItems(ctx context.Context, inputs []items.CreateItemInput) (int, error)
}

// Importer valida un CSV línea por línea y persiste las filas válidas.
type Importer struct {
	platforms PlatformSource
	store     ItemStore
	defaults  Defaults
	logger    *zap.Logger
}

// NewImporter crea un importer con los defaults estándar.
func NewImporter(platforms PlatformSource, store ItemStore, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		platforms: platforms,
		store:     store,
		defaults:  StandardDefaults(),
		logger:    logger,
	}
}

// Import procesa el archivo completo. La primera línea es el encabezado y no se valida.
//
// Errores de fila quedan en el reporte y nunca cortan el recorrido. Solo se
// devuelve error si el archivo está vacío o no se puede leer, si no se pueden
// cargar las plataformas o si falla el commit; en esos casos no hay reporte.
//
// Un import no se cancela: si el cliente corta o vence el ctx, el archivo se
// procesa y se guarda igual. De ctx solo se conservan sus valores (request id).
func (importer *Importer) Import(ctx context.Context, reader io.Reader, dryRun bool) (Report, error) {
	ctx = context.WithoutCancel(ctx)
	started := time.Now()
	logger := logging.FromContext(ctx, importer.logger)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Report{}, fmt.Errorf("%w: header: %w", ErrUnreadable, err)
		}
		return Report{}, ErrEmptyCSV
	}

	index, err := importer.platforms.NameIndex(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load platforms: %w", err)
	}
	resolver := NewPlatformResolver(index)

	report := Report{DryRun: dryRun, Rows: make([]RowResult, 0)}
	var staged []items.CreateItemInput
	lineNumber := 1

	for scanner.Scan() {
		lineNumber++
		report.RowsRead++

		row := rowFromCells(lineNumber, SplitLine(scanner.Text()))
		result, candidate := ValidateRow(row, resolver, importer.defaults)
		report.Rows = append(report.Rows, result)

		if result.OK && !dryRun {
			staged = append(staged, candidate)
			report.RowsInserted++
		}
	}
	if err := scanner.Err(); err != nil {
		return Report{}, fmt.Errorf("%w: line %d: %w", ErrUnreadable, lineNumber+1, err)
	}

	if len(staged) > 0 {
		if _, err := importer.store.InsertItems(ctx, staged); err != nil {
			logger.Error("csv import commit failed",
				zap.Int("rows_read", report.RowsRead),
				zap.Int("rows_staged", len(staged)),
				zap.Error(err),
			)
			return Report{}, fmt.Errorf("%w: %w", ErrCommitFailed, err)
		}
	}

	logger.Info("csv import finished",
		zap.Bool("dry_run", dryRun),
		zap.Int("platforms", resolver.Len()),
		zap.Int("rows_read", report.RowsRead),
		zap.Int("rows_inserted", report.RowsInserted),
		zap.Int("rows_rejected", report.Rejected()),
		zap.Duration("latency", time.Since(started)),
	)
	return report, nil
}
