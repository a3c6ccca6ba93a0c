package csvimport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Lelo88/collectibles-api-golang/internal/items"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	minReleaseYear = 1950
	maxReleaseYear = 2100
)

// errorSink acumula los mensajes de una fila en orden de aparición.
type errorSink []string

func (sink *errorSink) add(format string, args ...any) {
	*sink = append(*sink, fmt.Sprintf(format, args...))
}

// parseBool acepta "true" o "yes" sin distinguir mayúsculas; todo lo demás es false.
func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes":
		return true
	default:
		return false
	}
}

// parseDecimal devuelve el importe normalizado o nil si la celda está vacía.
// Un negativo o un importe fuera de numeric(12,2) se reporta pero el valor se devuelve igual.
func parseDecimal(raw, field string, errs *errorSink) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	value, negative, ok := items.ParseMoney(raw)
	if !ok {
		errs.add("%s must be a number (use '.' as decimal separator).", field)
		return nil
	}
	switch {
	case negative:
		errs.add("%s must be >= 0.", field)
	case !items.MoneyInRange(value):
		errs.add("%s must be at most %s.", field, items.MaxMoney)
	}
	return &value
}

// parseDate exige yyyy-MM-dd exacto; el layout de time rechaza mes o día de un dígito.
func parseDate(raw, field string, errs *errorSink) pgtype.Date {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return pgtype.Date{}
	}
	date, err := time.Parse(time.DateOnly, trimmed)
	if err != nil {
		errs.add("%s must be yyyy-MM-dd.", field)
		return pgtype.Date{}
	}
	return pgtype.Date{Time: date, Valid: true}
}

// parseEnum resuelve el nombre contra la tabla del enum. Vacío o inválido
// devuelven fallback; solo el inválido agrega error.
func parseEnum[T any](raw, field string, lookup func(string) (T, bool), allowed []string, fallback T, errs *errorSink) T {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	value, ok := lookup(raw)
	if !ok {
		errs.add("Invalid %s '%s'. Allowed: %s.", field, raw, strings.Join(allowed, ", "))
		return fallback
	}
	return value
}

func parseYear(raw, field string, errs *errorSink) *int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	year, err := strconv.Atoi(trimmed)
	if err != nil || year < minReleaseYear || year > maxReleaseYear {
		errs.add("%s must be a year between %d and %d.", field, minReleaseYear, maxReleaseYear)
		return nil
	}
	return &year
}

// optional deja la celda tal cual; items.CreateItemInput.Normalize la recorta y anula si está vacía.
func optional(raw string) *string {
	return &raw
}
