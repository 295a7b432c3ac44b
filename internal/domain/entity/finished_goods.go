package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinishedGoodsInventory inventario de producto terminado (una fila por producto).
type FinishedGoodsInventory struct {
	ProductID       string
	Stock           decimal.Decimal
	MinStock        decimal.Decimal
	AverageCost     decimal.Decimal
	ElaborationDate *time.Time
	ShelfLifeDays   int
	ExpiryDate      *time.Time
	UpdatedAt       time.Time
}

// BelowMinimum indica si el stock está por debajo del mínimo configurado.
func (f *FinishedGoodsInventory) BelowMinimum() bool {
	return f.MinStock.GreaterThan(decimal.Zero) && f.Stock.LessThan(f.MinStock)
}

// FinishedMovementKind tipo de movimiento de producto terminado.
type FinishedMovementKind string

// Tipos de movimiento de producto terminado.
const (
	FinishedMovementProduction FinishedMovementKind = "entrada_produccion"
	FinishedMovementSale       FinishedMovementKind = "venta"
	FinishedMovementWaste      FinishedMovementKind = "merma"
	FinishedMovementTasting    FinishedMovementKind = "degustacion"
	FinishedMovementAdjustIn   FinishedMovementKind = "ajuste_entrada"
	FinishedMovementAdjustOut  FinishedMovementKind = "ajuste_salida"
	FinishedMovementReturn     FinishedMovementKind = "devolucion"
)

// Inbound indica si el tipo suma stock.
func (k FinishedMovementKind) Inbound() bool {
	switch k {
	case FinishedMovementProduction, FinishedMovementAdjustIn, FinishedMovementReturn:
		return true
	}
	return false
}

// Outbound indica si el tipo resta stock.
func (k FinishedMovementKind) Outbound() bool {
	switch k {
	case FinishedMovementSale, FinishedMovementWaste, FinishedMovementTasting, FinishedMovementAdjustOut:
		return true
	}
	return false
}

// FinishedGoodsMovement registro inmutable de un cambio de stock de producto terminado.
type FinishedGoodsMovement struct {
	ID           string
	ProductID    string
	Kind         FinishedMovementKind
	Quantity     decimal.Decimal // |delta|
	StockBefore  decimal.Decimal
	StockAfter   decimal.Decimal
	ProductionID *string
	OrderID      *string
	ActorID      string
	Notes        string
	CreatedAt    time.Time
}

// SignedQuantity devuelve la cantidad con signo según la dirección.
func (m *FinishedGoodsMovement) SignedQuantity() decimal.Decimal {
	if m.Kind.Outbound() {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
