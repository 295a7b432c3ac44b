package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionStatus estado de una orden de producción.
type ProductionStatus string

// Estados: en_proceso es el inicial; completado y cancelado son terminales.
const (
	ProductionInProgress ProductionStatus = "en_proceso"
	ProductionCompleted  ProductionStatus = "completado"
	ProductionCancelled  ProductionStatus = "cancelado"
)

// VarianceClass clasificación de la variación de harina.
type VarianceClass string

// Clasificaciones de variación.
const (
	VarianceNormal   VarianceClass = "normal"
	VarianceExcess   VarianceClass = "exceso"
	VarianceShortage VarianceClass = "faltante"
)

// ProductionRun una ejecución de receta a una cantidad dada.
// RecipeID es una referencia fija tomada al registrar la producción.
type ProductionRun struct {
	ID               string
	ProductID        string
	RecipeID         string
	OperatorID       string
	BakerID          *string
	ProductionDate   time.Time
	StartTime        *time.Time
	EndTime          *time.Time
	Quantity         decimal.Decimal
	Unit             Unit
	ActualFlour      *decimal.Decimal
	TheoreticalFlour *decimal.Decimal
	FlourVariance    *decimal.Decimal
	VarianceClass    *VarianceClass
	TotalCost        decimal.Decimal
	UnitCost         decimal.Decimal
	Status           ProductionStatus
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Terminal indica si la producción ya no admite transiciones.
func (p *ProductionRun) Terminal() bool {
	return p.Status == ProductionCompleted || p.Status == ProductionCancelled
}

// ExtraIngredient ingrediente adicional declarado al procesar, fuera de la receta.
type ExtraIngredient struct {
	RawMaterialID string
	Quantity      decimal.Decimal // en unidad nativa de la materia prima
}
