package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShortageDTO faltante de una materia prima (cantidades en su unidad nativa).
type ShortageDTO struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name,omitempty"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Shortfall    decimal.Decimal `json:"shortfall"`
	Unit         string          `json:"unit,omitempty"`
}

// RawMaterialPurchaseRequest body para POST /api/raw-materials/:id/purchases.
// Kind vacío = compra; también acepta ajuste_entrada y devolucion.
type RawMaterialPurchaseRequest struct {
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	Kind          string           `json:"kind,omitempty"`
	InvoiceNumber string           `json:"invoice_number,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// RawMaterialConsumptionRequest body para POST /api/raw-materials/:id/consumptions.
// Kind vacío = ajuste_salida (la producción descuenta por su propia ruta).
type RawMaterialConsumptionRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Kind     string          `json:"kind,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// RawMaterialResponse salida de una materia prima.
type RawMaterialResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Code             *string         `json:"code,omitempty"`
	Unit             string          `json:"unit"`
	Stock            decimal.Decimal `json:"stock"`
	MinStock         decimal.Decimal `json:"min_stock"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Supplier         string          `json:"supplier,omitempty"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date,omitempty"`
	BelowMinimum     bool            `json:"below_minimum"`
	Active           bool            `json:"active"`
}

// RawMaterialMovementResponse salida de un movimiento de materia prima.
type RawMaterialMovementResponse struct {
	ID            string           `json:"id"`
	RawMaterialID string           `json:"raw_material_id"`
	Kind          string           `json:"kind"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	StockBefore   decimal.Decimal  `json:"stock_before"`
	StockAfter    decimal.Decimal  `json:"stock_after"`
	ProductionID  *string          `json:"production_id,omitempty"`
	ActorID       string           `json:"actor_id,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	InvoiceNumber string           `json:"invoice_number,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// SetFinishedStockRequest body para PUT /api/finished-goods/:productId/stock (conteo físico, devolución, merma).
type SetFinishedStockRequest struct {
	NewStock decimal.Decimal `json:"new_stock"`
	Kind     string          `json:"kind,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// FinishedGoodsSaleRequest body para POST /api/finished-goods/:productId/sales.
type FinishedGoodsSaleRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	OrderID  *string         `json:"order_id,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// FinishedGoodsResponse salida del inventario de un producto.
type FinishedGoodsResponse struct {
	ProductID       string          `json:"product_id"`
	Stock           decimal.Decimal `json:"stock"`
	MinStock        decimal.Decimal `json:"min_stock"`
	AverageCost     decimal.Decimal `json:"average_cost"`
	ElaborationDate *time.Time      `json:"elaboration_date,omitempty"`
	ShelfLifeDays   int             `json:"shelf_life_days"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	BelowMinimum    bool            `json:"below_minimum"`
}

// FinishedGoodsMovementResponse salida de un movimiento de producto terminado.
type FinishedGoodsMovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Kind         string          `json:"kind"`
	Quantity     decimal.Decimal `json:"quantity"`
	StockBefore  decimal.Decimal `json:"stock_before"`
	StockAfter   decimal.Decimal `json:"stock_after"`
	ProductionID *string         `json:"production_id,omitempty"`
	OrderID      *string         `json:"order_id,omitempty"`
	ActorID      string          `json:"actor_id,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PurchaseSuggestionResponse compra sugerida de una materia prima.
type PurchaseSuggestionResponse struct {
	MaterialID    string          `json:"material_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Supplier      string          `json:"supplier,omitempty"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	IdealStock    decimal.Decimal `json:"ideal_stock"`
	SuggestedQty  decimal.Decimal `json:"suggested_qty"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Priority      int             `json:"priority"`
}

// PurchaseSuggestionListResponse lista de compras con el costo total estimado.
type PurchaseSuggestionListResponse struct {
	Total     int                          `json:"total"`
	TotalCost decimal.Decimal              `json:"total_cost"`
	Items     []PurchaseSuggestionResponse `json:"items"`
}
