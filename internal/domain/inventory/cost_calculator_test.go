package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// CostCalculator: promedio ponderado redondeado a 2 decimales.
// ──────────────────────────────────────────────────────────────────────────────

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// (10 × 2.00 + 10 × 4.00) / 20 = 3.00
	got := inventory.CostCalculator(d("10"), d("2.00"), d("10"), d("4.00"))
	assert.True(t, got.Equal(d("3.00")), "got %s", got)
}

func TestCostCalculator_RedondeaADosDecimales(t *testing.T) {
	// (1 × 1.00 + 2 × 2.00) / 3 = 1.666.. -> 1.67
	got := inventory.CostCalculator(d("1"), d("1.00"), d("2"), d("2.00"))
	assert.True(t, got.Equal(d("1.67")), "got %s", got)
}

func TestCostCalculator_StockCeroTomaCostoEntrada(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, d("9.99"), d("5"), d("1.234"))
	assert.True(t, got.Equal(d("1.23")), "got %s", got)
}

func TestCostCalculator_DenominadorNoPositivo(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, d("3.00"), decimal.Zero, d("4.555"))
	assert.True(t, got.Equal(d("4.56")), "sin cantidades se devuelve el costo de entrada redondeado, got %s", got)
}

func TestRound_Precisiones(t *testing.T) {
	assert.True(t, inventory.RoundCost(d("1.005")).Equal(d("1.01")))
	assert.True(t, inventory.RoundQuantity(d("0.33333")).Equal(d("0.333")))
	assert.True(t, inventory.RoundQuantity(d("5.0005")).Equal(d("5.001")))
}

func TestPositiveQuantity_RedondeaYExigeMayorACero(t *testing.T) {
	q, err := inventory.PositiveQuantity(d("1.2345"), "la cantidad")
	require.NoError(t, err)
	assert.True(t, q.Equal(d("1.235")), "got %s", q)

	q, err = inventory.PositiveQuantity(d("0.0005"), "la cantidad")
	require.NoError(t, err)
	assert.True(t, q.Equal(d("0.001")), "got %s", q)

	for _, in := range []string{"0.0004", "0", "-1"} {
		_, err := inventory.PositiveQuantity(d(in), "la cantidad")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, in)
	}
}
