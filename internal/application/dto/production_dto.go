package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterProductionRequest body para POST /api/production-runs.
// RecipeID vacío usa la receta activa del producto.
type RegisterProductionRequest struct {
	ProductID      string           `json:"product_id"`
	RecipeID       string           `json:"recipe_id,omitempty"`
	BakerID        *string          `json:"baker_id,omitempty"`
	ProductionDate *time.Time       `json:"production_date,omitempty"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Unit           string           `json:"unit,omitempty"`
	ActualFlour    *decimal.Decimal `json:"actual_flour,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// ExtraIngredientRequest ingrediente adicional en la unidad nativa de la materia prima.
type ExtraIngredientRequest struct {
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ProcessProductionRequest body para POST /api/production-runs/:id/process.
type ProcessProductionRequest struct {
	Extras      []ExtraIngredientRequest `json:"extras,omitempty"`
	ActualFlour *decimal.Decimal         `json:"actual_flour,omitempty"`
}

// CancelProductionRequest body para POST /api/production-runs/:id/cancel.
type CancelProductionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ProductionRunResponse salida de una orden de producción.
type ProductionRunResponse struct {
	ID               string           `json:"id"`
	ProductID        string           `json:"product_id"`
	RecipeID         string           `json:"recipe_id"`
	OperatorID       string           `json:"operator_id,omitempty"`
	BakerID          *string          `json:"baker_id,omitempty"`
	ProductionDate   time.Time        `json:"production_date"`
	StartTime        *time.Time       `json:"start_time,omitempty"`
	EndTime          *time.Time       `json:"end_time,omitempty"`
	Quantity         decimal.Decimal  `json:"quantity"`
	Unit             string           `json:"unit"`
	ActualFlour      *decimal.Decimal `json:"actual_flour,omitempty"`
	TheoreticalFlour *decimal.Decimal `json:"theoretical_flour,omitempty"`
	FlourVariance    *decimal.Decimal `json:"flour_variance,omitempty"`
	VarianceClass    *string          `json:"variance_class,omitempty"`
	TotalCost        decimal.Decimal  `json:"total_cost"`
	UnitCost         decimal.Decimal  `json:"unit_cost"`
	Status           string           `json:"status"`
	Notes            string           `json:"notes,omitempty"`
}

// ProductionMovementsResponse movimientos que generó una producción.
type ProductionMovementsResponse struct {
	RawMaterials  []RawMaterialMovementResponse   `json:"raw_materials"`
	FinishedGoods []FinishedGoodsMovementResponse `json:"finished_goods"`
}
