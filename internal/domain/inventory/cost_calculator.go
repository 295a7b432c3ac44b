package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain"
)

// CostPrecision decimales de costos unitarios y totales.
const CostPrecision = 2

// QuantityPrecision decimales de cantidades requeridas.
const QuantityPrecision = 3

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// redondeado a 2 decimales. Si el denominador no es positivo devuelve el costo de entrada.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoEntrada.Round(CostPrecision)
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(CostPrecision)
}

// RoundCost redondea un monto a la precisión de costos.
func RoundCost(v decimal.Decimal) decimal.Decimal { return v.Round(CostPrecision) }

// RoundQuantity redondea una cantidad a la precisión de requerimientos.
func RoundQuantity(v decimal.Decimal) decimal.Decimal { return v.Round(QuantityPrecision) }

// PositiveQuantity lleva una cantidad de entrada a la precisión del libro y exige que
// siga siendo mayor a cero. what nombra la cantidad en el mensaje de error.
func PositiveQuantity(v decimal.Decimal, what string) (decimal.Decimal, error) {
	q := RoundQuantity(v)
	if !q.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.Invalid(domain.ErrInvalidArgument, "%s debe ser mayor a cero (con %d decimales)", what, QuantityPrecision)
	}
	return q, nil
}
