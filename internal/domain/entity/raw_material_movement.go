package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMovementKind tipo de movimiento de materia prima.
type RawMovementKind string

// Tipos de movimiento de materia prima.
const (
	RawMovementPurchase   RawMovementKind = "compra"
	RawMovementProduction RawMovementKind = "consumo_produccion"
	RawMovementAdjustIn   RawMovementKind = "ajuste_entrada"
	RawMovementAdjustOut  RawMovementKind = "ajuste_salida"
	RawMovementWaste      RawMovementKind = "merma"
	RawMovementReturn     RawMovementKind = "devolucion"
)

// Inbound indica si el tipo suma stock. Los tipos desconocidos no son válidos en ninguna dirección.
func (k RawMovementKind) Inbound() bool {
	switch k {
	case RawMovementPurchase, RawMovementAdjustIn, RawMovementReturn:
		return true
	}
	return false
}

// Outbound indica si el tipo resta stock.
func (k RawMovementKind) Outbound() bool {
	switch k {
	case RawMovementProduction, RawMovementAdjustOut, RawMovementWaste:
		return true
	}
	return false
}

// RawMaterialMovement registro inmutable de un cambio de stock de materia prima.
// Invariante: StockAfter = StockBefore ± Quantity según la dirección del tipo.
type RawMaterialMovement struct {
	ID            string
	RawMaterialID string
	Kind          RawMovementKind
	Quantity      decimal.Decimal  // siempre positivo
	UnitCost      *decimal.Decimal // solo compras
	StockBefore   decimal.Decimal
	StockAfter    decimal.Decimal
	ProductionID  *string
	ActorID       string
	Notes         string
	InvoiceNumber string // solo compras
	CreatedAt     time.Time
}

// SignedQuantity devuelve la cantidad con signo según la dirección.
func (m *RawMaterialMovement) SignedQuantity() decimal.Decimal {
	if m.Kind.Outbound() {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
