package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto de panadería que se vende y se produce (pan, tortas, galletas).
// El stock y el costo de producción viven en FinishedGoodsInventory.
type Product struct {
	ID        string
	SKU       string
	Name      string
	Price     decimal.Decimal
	Unit      Unit
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
