package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial materia prima comprada (harina, azúcar, etc.) consumida por las recetas.
// Stock y UnitCost solo cambian vía el libro de materias primas.
type RawMaterial struct {
	ID               string
	Name             string
	Code             *string // código interno único, opcional
	Unit             Unit
	Stock            decimal.Decimal
	MinStock         decimal.Decimal
	UnitCost         decimal.Decimal // costo promedio ponderado por unidad nativa
	Supplier         string
	LastPurchaseDate *time.Time
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// Deleted indica si la materia prima fue eliminada lógicamente.
func (m *RawMaterial) Deleted() bool { return m.DeletedAt != nil }

// HasStock indica si hay al menos quantity disponible.
func (m *RawMaterial) HasStock(quantity decimal.Decimal) bool {
	return m.Stock.GreaterThanOrEqual(quantity)
}

// BelowMinimum indica si el stock está por debajo del mínimo configurado.
func (m *RawMaterial) BelowMinimum() bool {
	return m.MinStock.GreaterThan(decimal.Zero) && m.Stock.LessThan(m.MinStock)
}
