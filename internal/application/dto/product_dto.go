package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. MinStock y ShelfLifeDays
// configuran su fila de inventario de producto terminado.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit"`
	MinStock      decimal.Decimal `json:"min_stock"`
	ShelfLifeDays int             `json:"shelf_life_days"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateRawMaterialRequest entrada para dar de alta una materia prima.
// Stock inicial > 0 entra como compra al costo indicado.
type CreateRawMaterialRequest struct {
	Name     string          `json:"name"`
	Code     string          `json:"code,omitempty"`
	Unit     string          `json:"unit"`
	Stock    decimal.Decimal `json:"stock"`
	MinStock decimal.Decimal `json:"min_stock"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Supplier string          `json:"supplier,omitempty"`
}
