package csvimport

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Lelo88/collectibles-api-golang/internal/items"
	"github.com/jackc/pgx/v5/pgtype"
)

// WriteCSV escribe los items con el mismo esquema que lee el import.
func WriteCSV(writer io.Writer, all []items.Item) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(Header); err != nil {
		return err
	}
	for _, item := range all {
		if err := csvWriter.Write(exportRecord(item)); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func exportRecord(item items.Item) []string {
	record := make([]string, columnCount)
	record[columnTitle] = flatten(item.Title)
	record[columnPlatform] = flatten(item.PlatformName)
	record[columnRegion] = flatten(item.Region)
	record[columnCondition] = item.Condition.String()
	record[columnHasBox] = yesNo(item.HasBox)
	record[columnHasManual] = yesNo(item.HasManual)
	record[columnPurchasePrice] = text(item.PurchasePrice)
	record[columnPurchaseDate] = date(item.PurchaseDate)
	record[columnEstimatedValue] = text(item.EstimatedValue)
	record[columnNotes] = text(item.Notes)
	record[columnPublisher] = text(item.Publisher)
	record[columnDeveloper] = text(item.Developer)
	record[columnGenre] = text(item.Genre)
	if item.ReleaseYear != nil {
		record[columnReleaseYear] = strconv.Itoa(*item.ReleaseYear)
	}
	record[columnBarcode] = text(item.Barcode)
	record[columnKind] = item.Kind.String()
	return record
}

// El import lee línea por línea: un salto dentro de un campo partiría el registro.
var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func flatten(value string) string {
	return newlineReplacer.Replace(value)
}

func text(value *string) string {
	if value == nil {
		return ""
	}
	return flatten(*value)
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func date(value pgtype.Date) string {
	if !value.Valid {
		return ""
	}
	return value.Time.Format(time.DateOnly)
}
