package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// DefaultVarianceTolerance tolerancia de la variación de harina, en unidades de la materia prima.
var DefaultVarianceTolerance = decimal.NewFromFloat(0.05)

// FlourVariance resultado de comparar harina real contra la teórica de la receta.
type FlourVariance struct {
	Theoretical decimal.Decimal
	Actual      decimal.Decimal
	Variance    decimal.Decimal
	Class       entity.VarianceClass
}

// ClassifyVariance calcula variance = actual - theoretical y la clasifica:
// |v| <= tolerance normal; v > tolerance exceso; en otro caso faltante.
func ClassifyVariance(theoretical, actual, tolerance decimal.Decimal) FlourVariance {
	v := actual.Sub(theoretical)
	class := entity.VarianceShortage
	switch {
	case v.Abs().LessThanOrEqual(tolerance):
		class = entity.VarianceNormal
	case v.GreaterThan(tolerance):
		class = entity.VarianceExcess
	}
	return FlourVariance{Theoretical: theoretical, Actual: actual, Variance: v, Class: class}
}
