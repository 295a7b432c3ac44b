package entity

// Unit unidad de medida de materias primas, ingredientes y producción.
type Unit string

// Unidades soportadas.
const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "L"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "unidades"
)

// Valid indica si la unidad pertenece al conjunto soportado.
func (u Unit) Valid() bool {
	switch u {
	case UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitPiece:
		return true
	}
	return false
}
