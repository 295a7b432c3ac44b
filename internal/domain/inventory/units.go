package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

type unitPair struct {
	from entity.Unit
	to   entity.Unit
}

// UnitConverter registro de conversiones (par de unidades -> factor multiplicativo).
// Agregar una unidad nueva es registrar su par, sin tocar la lógica de conversión.
type UnitConverter struct {
	factors map[unitPair]decimal.Decimal
}

var thousand = decimal.NewFromInt(1000)

// NewUnitConverter crea el registro con las conversiones de panadería (g<->kg, ml<->L).
func NewUnitConverter() *UnitConverter {
	c := &UnitConverter{factors: make(map[unitPair]decimal.Decimal)}
	c.RegisterPair(entity.UnitKilogram, entity.UnitGram, thousand)
	c.RegisterPair(entity.UnitLiter, entity.UnitMilliliter, thousand)
	return c
}

// Register agrega una conversión en un solo sentido.
func (c *UnitConverter) Register(from, to entity.Unit, factor decimal.Decimal) {
	c.factors[unitPair{from: from, to: to}] = factor
}

// RegisterPair agrega la conversión y su inversa: 1 from = factor to.
func (c *UnitConverter) RegisterPair(from, to entity.Unit, factor decimal.Decimal) {
	c.Register(from, to, factor)
	c.Register(to, from, decimal.NewFromInt(1).Div(factor))
}

// Convert expresa quantity (en from) en la unidad to.
func (c *UnitConverter) Convert(quantity decimal.Decimal, from, to entity.Unit) (decimal.Decimal, error) {
	if from == to {
		return quantity, nil
	}
	f, ok := c.factors[unitPair{from: from, to: to}]
	if !ok {
		return decimal.Zero, &domain.ConversionError{From: string(from), To: string(to)}
	}
	return quantity.Mul(f), nil
}
