package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeIngredientRequest línea de ingrediente en la unidad declarada.
type RecipeIngredientRequest struct {
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
}

// CreateRecipeRequest body para POST /api/recipes.
type CreateRecipeRequest struct {
	ProductID     string                    `json:"product_id"`
	Name          string                    `json:"name"`
	Description   string                    `json:"description,omitempty"`
	YieldQuantity decimal.Decimal           `json:"yield_quantity"`
	YieldUnit     string                    `json:"yield_unit"`
	Ingredients   []RecipeIngredientRequest `json:"ingredients"`
}

// UpdateRecipeIngredientsRequest body para PUT /api/recipes/:id/ingredients.
type UpdateRecipeIngredientsRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
}

// RecipeIngredientResponse salida de una línea de receta.
type RecipeIngredientResponse struct {
	ID            string          `json:"id"`
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Cost          decimal.Decimal `json:"cost"`
	DisplayOrder  int             `json:"display_order"`
}

// RecipeResponse salida de una receta con sus ingredientes.
type RecipeResponse struct {
	ID            string                     `json:"id"`
	ProductID     string                     `json:"product_id"`
	Name          string                     `json:"name"`
	Description   string                     `json:"description,omitempty"`
	YieldQuantity decimal.Decimal            `json:"yield_quantity"`
	YieldUnit     string                     `json:"yield_unit"`
	TotalCost     decimal.Decimal            `json:"total_cost"`
	UnitCost      decimal.Decimal            `json:"unit_cost"`
	Active        bool                       `json:"active"`
	Version       int                        `json:"version"`
	Ingredients   []RecipeIngredientResponse `json:"ingredients"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// StockCheckResponse resultado de GET /api/recipes/:id/stock-check.
type StockCheckResponse struct {
	Sufficient bool          `json:"sufficient"`
	Shortages  []ShortageDTO `json:"shortages"`
}
