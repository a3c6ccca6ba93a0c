package csvimport

// RowResult es el resultado de validar una línea. Errors vacío implica OK.
type RowResult struct {
	LineNumber int      `json:"line_number"`
	Title      string   `json:"title"`
	Platform   string   `json:"platform"`
	Errors     []string `json:"errors"`
	OK         bool     `json:"ok"`
}

// Report resume un import completo, con una fila por línea leída.
type Report struct {
	DryRun       bool        `json:"dry_run"`
	RowsRead     int         `json:"rows_read"`
	RowsInserted int         `json:"rows_inserted"`
	Rows         []RowResult `json:"rows"`
}

// Rejected cuenta las filas con errores.
func (report Report) Rejected() int {
	rejected := 0
	for _, row := range report.Rows {
		if !row.OK {
			rejected++
		}
	}
	return rejected
}
