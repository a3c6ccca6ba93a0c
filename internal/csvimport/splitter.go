package csvimport

import "strings"

// SplitLine separa una línea CSV por comas respetando campos entre comillas.
// Dentro de comillas, "" es una comilla literal. Nunca falla: una comilla sin
// cerrar consume hasta el final de la línea. No valida cantidad de campos.
func SplitLine(line string) []string {
	fields := make([]string, 0, columnCount)
	var field strings.Builder
	inQuotes := false

	for index := 0; index < len(line); index++ {
		char := line[index]
		switch {
		case char == '"':
			if inQuotes && index+1 < len(line) && line[index+1] == '"' {
				field.WriteByte('"')
				index++
				continue
			}
			inQuotes = !inQuotes
		case char == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(char)
		}
	}
	return append(fields, field.String())
}
