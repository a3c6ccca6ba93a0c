package items

import (
	"regexp"
	"strings"
)

// moneyPattern admite solo '.' como separador decimal, sin exponentes ni miles.
var moneyPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseMoney valida un importe textual.
// Devuelve el valor normalizado (sin espacios ni '+'), si es negativo y si es válido.
// El valor se mantiene como string para no perder precisión (DB: numeric(12,2)).
func ParseMoney(raw string) (value string, negative bool, ok bool) {
	value = strings.TrimSpace(raw)
	if !moneyPattern.MatchString(value) {
		return "", false, false
	}
	value = strings.TrimPrefix(value, "+")
	if strings.HasPrefix(value, "-") {
		// "-0" y "-0.00" no son negativos.
		negative = strings.Trim(value, "-0.") != ""
	}
	return value, negative, true
}

// MaxMoney es el mayor importe que entra en numeric(12,2).
const MaxMoney = "9999999999.99"

const maxMoneyWholeDigits = 10

// MoneyInRange indica si un valor ya validado por ParseMoney entra en
// numeric(12,2) después de que Postgres lo redondee a centavos. Mira el valor absoluto.
func MoneyInRange(value string) bool {
	whole, fraction, _ := strings.Cut(strings.TrimLeft(value, "+-"), ".")
	whole = strings.TrimLeft(whole, "0")
	switch {
	case len(whole) < maxMoneyWholeDigits:
		return true
	case len(whole) > maxMoneyWholeDigits:
		return false
	case whole != strings.Repeat("9", maxMoneyWholeDigits):
		return true
	}
	// 9999999999.995 redondea a 10000000000.00.
	fraction += "000"
	return fraction[:2] != "99" || fraction[2] < '5'
}
