package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe receta (lista de materiales) versionada de un producto.
// Un cambio en el conjunto de ingredientes incrementa Version y reemplaza las filas.
type Recipe struct {
	ID            string
	ProductID     string
	Name          string
	Description   string
	YieldQuantity decimal.Decimal // rendimiento por lote (> 0)
	YieldUnit     Unit
	TotalCost     decimal.Decimal
	UnitCost      decimal.Decimal
	Active        bool
	Version       int
	Ingredients   []RecipeIngredient // en orden de presentación
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Factor devuelve cantidad a producir / rendimiento. No valida el rendimiento.
func (r *Recipe) Factor(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Div(r.YieldQuantity)
}

// RecipeIngredient línea de la receta, expresada en una unidad declarada que puede
// diferir de la unidad nativa de la materia prima.
type RecipeIngredient struct {
	ID            string
	RecipeID      string
	RawMaterialID string
	Quantity      decimal.Decimal
	Unit          Unit
	Cost          decimal.Decimal // aporte al costo total
	DisplayOrder  int
}
