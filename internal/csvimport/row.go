package csvimport

import (
	"github.com/Lelo88/collectibles-api-golang/internal/items"
)

// Posiciones de las columnas. Las diez primeras son obligatorias en el
// encabezado; el resto puede faltar y se toma como vacío.
const (
	columnTitle = iota
	columnPlatform
	columnRegion
	columnCondition
	columnHasBox
	columnHasManual
	columnPurchasePrice
	columnPurchaseDate
	columnEstimatedValue
	columnNotes
	columnPublisher
	columnDeveloper
	columnGenre
	columnReleaseYear
	columnBarcode
	columnKind
	columnCount
)

// Header es el encabezado que escribe el export, en el orden que espera el import.
var Header = []string{
	"Title", "Platform", "Region", "Condition", "HasBox", "HasManual",
	"PurchasePrice", "PurchaseDate", "EstimatedValue", "Notes",
	"Publisher", "Developer", "Genre", "ReleaseYear", "Barcode", "Kind",
}

// ImportRow son las celdas crudas de una línea del archivo.
type ImportRow struct {
	LineNumber     int
	Title          string
	Platform       string
	Region         string
	Condition      string
	HasBox         string
	HasManual      string
	PurchasePrice  string
	PurchaseDate   string
	EstimatedValue string
	Notes          string
	Publisher      string
	Developer      string
	Genre          string
	ReleaseYear    string
	Barcode        string
	Kind           string
}

func rowFromCells(lineNumber int, cells []string) ImportRow {
	return ImportRow{
		LineNumber:     lineNumber,
		Title:          cell(cells, columnTitle),
		Platform:       cell(cells, columnPlatform),
		Region:         cell(cells, columnRegion),
		Condition:      cell(cells, columnCondition),
		HasBox:         cell(cells, columnHasBox),
		HasManual:      cell(cells, columnHasManual),
		PurchasePrice:  cell(cells, columnPurchasePrice),
		PurchaseDate:   cell(cells, columnPurchaseDate),
		EstimatedValue: cell(cells, columnEstimatedValue),
		Notes:          cell(cells, columnNotes),
		Publisher:      cell(cells, columnPublisher),
		Developer:      cell(cells, columnDeveloper),
		Genre:          cell(cells, columnGenre),
		ReleaseYear:    cell(cells, columnReleaseYear),
		Barcode:        cell(cells, columnBarcode),
		Kind:           cell(cells, columnKind),
	}
}

// cells devuelve los valores crudos en el orden de Header.
func (row ImportRow) cells() []string {
	return []string{
		row.Title, row.Platform, row.Region, row.Condition, row.HasBox, row.HasManual,
		row.PurchasePrice, row.PurchaseDate, row.EstimatedValue, row.Notes,
		row.Publisher, row.Developer, row.Genre, row.ReleaseYear, row.Barcode, row.Kind,
	}
}

// cell devuelve "" para columnas que no vinieron en la línea.
func cell(cells []string, index int) string {
	if index < len(cells) {
		return cells[index]
	}
	return ""
}

// Defaults son los valores que toma una fila cuando la celda viene vacía.
type Defaults struct {
	Region    string
	Condition items.Condition
	Kind      items.Kind
}

// StandardDefaults devuelve los defaults del catálogo.
func StandardDefaults() Defaults {
	return Defaults{
		Region:    items.DefaultRegion,
		Condition: items.DefaultCondition,
		Kind:      items.DefaultKind,
	}
}
