package items

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DefaultRegion se aplica cuando la región viene vacía.
const DefaultRegion = "NTSC-U"

// MaxTitleLength coincide con la columna items.title varchar(200).
const MaxTitleLength = 200

// Item representa un registro persistido en DB.
// Los importes se modelan como string para evitar errores de precisión con float.
type Item struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	PlatformID     int64       `json:"platform_id"`
	PlatformName   string      `json:"platform"`
	Region         string      `json:"region"`
	Condition      Condition   `json:"condition"`
	Kind           Kind        `json:"kind"`
	HasBox         bool        `json:"has_box"`
	HasManual      bool        `json:"has_manual"`
	IsCIB          bool        `json:"is_cib"`
	PurchasePrice  *string     `json:"purchase_price,omitempty"`
	PurchaseDate   pgtype.Date `json:"purchase_date"`
	EstimatedValue *string     `json:"estimated_value,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
	Publisher      *string     `json:"publisher,omitempty"`
	Developer      *string     `json:"developer,omitempty"`
	Genre          *string     `json:"genre,omitempty"`
	ReleaseYear    *int        `json:"release_year,omitempty"`
	Barcode        *string     `json:"barcode,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// CIB indica "complete in box": caja y manual presentes.
func (item Item) CIB() bool {
	return item.HasBox && item.HasManual
}

// CreateItemInput representa el payload para crear un item.
// También es el candidato que arma el import CSV por cada fila válida.
type CreateItemInput struct {
	Title          string      `json:"title" validate:"required,max=200"`
	PlatformID     int64       `json:"platform_id" validate:"required,gt=0"`
	Region         string      `json:"region" validate:"max=32"`
	Condition      Condition   `json:"condition"`
	Kind           Kind        `json:"kind"`
	HasBox         bool        `json:"has_box"`
	HasManual      bool        `json:"has_manual"`
	PurchasePrice  *string     `json:"purchase_price,omitempty" validate:"omitempty,money"`
	PurchaseDate   pgtype.Date `json:"purchase_date"`
	EstimatedValue *string     `json:"estimated_value,omitempty" validate:"omitempty,money"`
	Notes          *string     `json:"notes,omitempty"`
	Publisher      *string     `json:"publisher,omitempty" validate:"omitempty,max=200"`
	Developer      *string     `json:"developer,omitempty" validate:"omitempty,max=200"`
	Genre          *string     `json:"genre,omitempty" validate:"omitempty,max=64"`
	ReleaseYear    *int        `json:"release_year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	Barcode        *string     `json:"barcode,omitempty" validate:"omitempty,max=64"`
}

// UpdateItemInput representa un PATCH parcial.
// Campos nil no se tocan, salvo que Present marque la clave: en ese caso
// los campos anulables se setean a NULL.
type UpdateItemInput struct {
	Title          *string      `json:"title,omitempty" validate:"omitempty,max=200"`
	PlatformID     *int64       `json:"platform_id,omitempty" validate:"omitempty,gt=0"`
	Region         *string      `json:"region,omitempty" validate:"omitempty,max=32"`
	Condition      *Condition   `json:"condition,omitempty"`
	Kind           *Kind        `json:"kind,omitempty"`
	HasBox         *bool        `json:"has_box,omitempty"`
	HasManual      *bool        `json:"has_manual,omitempty"`
	PurchasePrice  *string      `json:"purchase_price,omitempty" validate:"omitempty,money"`
	PurchaseDate   *pgtype.Date `json:"purchase_date,omitempty"`
	EstimatedValue *string      `json:"estimated_value,omitempty" validate:"omitempty,money"`
	Notes          *string      `json:"notes,omitempty"`
	Publisher      *string      `json:"publisher,omitempty" validate:"omitempty,max=200"`
	Developer      *string      `json:"developer,omitempty" validate:"omitempty,max=200"`
	Genre          *string      `json:"genre,omitempty" validate:"omitempty,max=64"`
	ReleaseYear    *int         `json:"release_year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	Barcode        *string      `json:"barcode,omitempty" validate:"omitempty,max=64"`

	Present map[string]bool `json:"-"`
}

// empty indica que el PATCH no trae ningún cambio aplicable.
func (input UpdateItemInput) empty() bool {
	return input.Title == nil && input.PlatformID == nil && input.Region == nil &&
		input.Condition == nil && input.Kind == nil && input.HasBox == nil && input.HasManual == nil &&
		input.PurchasePrice == nil && input.PurchaseDate == nil && input.EstimatedValue == nil &&
		input.Notes == nil && input.Publisher == nil && input.Developer == nil && input.Genre == nil &&
		input.ReleaseYear == nil && input.Barcode == nil && len(input.Present) == 0
}

// ListFilter agrupa los filtros de GET /items.
type ListFilter struct {
	Query    string
	Platform string
	Kind     string
	Region   string
	Genre    string
	IsCIB    *bool
	Sort     string
}
