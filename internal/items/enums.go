package items

import (
	"fmt"
	"strings"
)

// Condition es el estado de conservación de un item.
// El cero significa "sin especificar"; el service lo reemplaza por DefaultCondition.
type Condition int

const (
	ConditionNew Condition = iota + 1
	ConditionMint
	ConditionNearMint
	ConditionVeryGood
	ConditionGood
	ConditionFair
	ConditionPoor
)

// DefaultCondition se usa cuando el dato no viene informado.
const DefaultCondition = ConditionGood

var conditionNames = []string{
	ConditionNew:      "New",
	ConditionMint:     "Mint",
	ConditionNearMint: "NearMint",
	ConditionVeryGood: "VeryGood",
	ConditionGood:     "Good",
	ConditionFair:     "Fair",
	ConditionPoor:     "Poor",
}

var conditionByName = lookupTable(conditionNames, func(index int) Condition { return Condition(index) })

// ParseCondition busca la condición por nombre, sin distinguir mayúsculas.
func ParseCondition(name string) (Condition, bool) {
	condition, ok := conditionByName[strings.ToLower(strings.TrimSpace(name))]
	return condition, ok
}

// ConditionNames devuelve los nombres válidos en orden de declaración.
func ConditionNames() []string {
	return append([]string(nil), conditionNames[1:]...)
}

func (condition Condition) String() string {
	if condition < ConditionNew || int(condition) >= len(conditionNames) {
		return ""
	}
	return conditionNames[condition]
}

// MarshalText serializa la condición por nombre (JSON y CSV usan el mismo texto).
func (condition Condition) MarshalText() ([]byte, error) {
	return []byte(condition.String()), nil
}

// UnmarshalText acepta el nombre sin distinguir mayúsculas; vacío deja el cero.
func (condition *Condition) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*condition = 0
		return nil
	}
	parsed, ok := ParseCondition(string(text))
	if !ok {
		return fmt.Errorf("invalid condition %q", string(text))
	}
	*condition = parsed
	return nil
}

// Kind clasifica el item dentro de la colección.
type Kind int

const (
	KindGame Kind = iota + 1
	KindConsole
	KindAccessory
	KindAmiibo
	KindOther
)

// DefaultKind se usa cuando el dato no viene informado.
const DefaultKind = KindGame

var kindNames = []string{
	KindGame:      "Game",
	KindConsole:   "Console",
	KindAccessory: "Accessory",
	KindAmiibo:    "Amiibo",
	KindOther:     "Other",
}

var kindByName = lookupTable(kindNames, func(index int) Kind { return Kind(index) })

// ParseKind busca el tipo por nombre, sin distinguir mayúsculas.
func ParseKind(name string) (Kind, bool) {
	kind, ok := kindByName[strings.ToLower(strings.TrimSpace(name))]
	return kind, ok
}

// KindNames devuelve los nombres válidos en orden de declaración.
func KindNames() []string {
	return append([]string(nil), kindNames[1:]...)
}

func (kind Kind) String() string {
	if kind < KindGame || int(kind) >= len(kindNames) {
		return ""
	}
	return kindNames[kind]
}

func (kind Kind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

func (kind *Kind) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*kind = 0
		return nil
	}
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("invalid kind %q", string(text))
	}
	*kind = parsed
	return nil
}

func lookupTable[T any](names []string, variant func(index int) T) map[string]T {
	table := make(map[string]T, len(names))
	for index, name := range names {
		if name == "" {
			continue
		}
		table[strings.ToLower(name)] = variant(index)
	}
	return table
}

// genreNames son sugerencias para la UI; Genre sigue siendo texto libre.
var genreNames = []string{
	"Action", "Adventure", "RPG", "Platformer", "Puzzle", "Sports", "Racing",
	"Strategy", "Fighting", "Shooter", "Simulation", "Party", "Music", "Other",
}

// GenreNames devuelve la lista de géneros sugeridos.
func GenreNames() []string {
	return append([]string(nil), genreNames...)
}
