package http

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Panaderia-api/internal/domain"
)

func TestQuantityText_TresDecimalesExactos(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2", "2,000"},
		{"0.1", "0,100"},
		{"3.0005", "3,001"},
		{"12345678.125", "12.345.678,125"},
		{"-0.5", "-0,500"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, quantityText(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestShortageMessage_UsaLasCantidadesDelFaltante(t *testing.T) {
	msg := shortageMessage([]domain.Shortage{
		{MaterialID: "m-1", MaterialName: "Harina", Unit: "kg",
			Required: decimal.RequireFromString("10.125"), Available: decimal.RequireFromString("4"), Shortfall: decimal.RequireFromString("6.125")},
		{MaterialID: "m-2", Required: decimal.RequireFromString("0.3"), Available: decimal.Zero, Shortfall: decimal.RequireFromString("0.3")},
	})
	assert.Equal(t, "stock insuficiente: Harina faltan 6,125 kg (requiere 10,125, disponible 4,000); m-2 faltan 0,300  (requiere 0,300, disponible 0,000)", msg)
	assert.Equal(t, domain.ErrInsufficientStock.Error(), shortageMessage(nil))
}
