package csvimport

import (
	"strings"
	"unicode/utf8"

	"github.com/Lelo88/collectibles-api-golang/internal/items"
)

// Límites de las columnas de texto en la tabla items.
var textLimits = []struct {
	field string
	value func(ImportRow) string
	max   int
}{
	{field: "Region", value: func(row ImportRow) string { return row.Region }, max: 32},
	{field: "Publisher", value: func(row ImportRow) string { return row.Publisher }, max: 200},
	{field: "Developer", value: func(row ImportRow) string { return row.Developer }, max: 200},
	{field: "Genre", value: func(row ImportRow) string { return row.Genre }, max: 64},
	{field: "Barcode", value: func(row ImportRow) string { return row.Barcode }, max: 64},
}

// ValidateRow aplica todas las reglas a una fila y acumula los errores.
// El candidato se arma siempre; solo es insertable si el resultado es OK.
func ValidateRow(row ImportRow, resolver *PlatformResolver, defaults Defaults) (RowResult, items.CreateItemInput) {
	var errs errorSink

	title := strings.TrimSpace(row.Title)
	switch {
	case title == "":
		errs.add("Title is required.")
	case utf8.RuneCountInString(title) > items.MaxTitleLength:
		errs.add("Title must be at most %d characters.", items.MaxTitleLength)
	}

	var platformID int64
	if strings.TrimSpace(row.Platform) == "" {
		errs.add("Platform is required.")
	} else if id, ok := resolver.Resolve(row.Platform); ok {
		platformID = id
	} else {
		errs.add("Unknown platform '%s'.", row.Platform)
	}

	condition := parseEnum(row.Condition, "Condition", items.ParseCondition, items.ConditionNames(), defaults.Condition, &errs)
	hasBox := parseBool(row.HasBox)
	hasManual := parseBool(row.HasManual)
	purchasePrice := parseDecimal(row.PurchasePrice, "PurchasePrice", &errs)
	estimatedValue := parseDecimal(row.EstimatedValue, "EstimatedValue", &errs)
	purchaseDate := parseDate(row.PurchaseDate, "PurchaseDate", &errs)
	kind := parseEnum(row.Kind, "Kind", items.ParseKind, items.KindNames(), defaults.Kind, &errs)
	releaseYear := parseYear(row.ReleaseYear, "ReleaseYear", &errs)

	for _, limit := range textLimits {
		if utf8.RuneCountInString(strings.TrimSpace(limit.value(row))) > limit.max {
			errs.add("%s must be at most %d characters.", limit.field, limit.max)
		}
	}

	// Postgres rechaza NUL y bytes que no son UTF-8 (típico de exports Latin-1).
	for index, value := range row.cells() {
		switch {
		case !utf8.ValidString(value):
			errs.add("%s is not valid UTF-8 text.", Header[index])
		case strings.IndexByte(value, 0) >= 0:
			errs.add("%s must not contain NUL characters.", Header[index])
		}
	}

	region := strings.TrimSpace(row.Region)
	if region == "" {
		region = defaults.Region
	}

	candidate := items.CreateItemInput{
		Title:          title,
		PlatformID:     platformID,
		Region:         region,
		Condition:      condition,
		Kind:           kind,
		HasBox:         hasBox,
		HasManual:      hasManual,
		PurchasePrice:  purchasePrice,
		PurchaseDate:   purchaseDate,
		EstimatedValue: estimatedValue,
		Notes:          optional(row.Notes),
		Publisher:      optional(row.Publisher),
		Developer:      optional(row.Developer),
		Genre:          optional(row.Genre),
		ReleaseYear:    releaseYear,
		Barcode:        optional(row.Barcode),
	}.Normalize()

	result := RowResult{
		LineNumber: row.LineNumber,
		Title:      row.Title,
		Platform:   row.Platform,
		Errors:     []string(errs),
		OK:         len(errs) == 0,
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	return result, candidate
}
