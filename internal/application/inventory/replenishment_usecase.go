package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// idealStockFactor stock objetivo tras una compra, como múltiplo del mínimo.
var idealStockFactor = decimal.NewFromFloat(1.5)

// PurchaseSuggestion compra sugerida para una materia prima bajo el mínimo.
type PurchaseSuggestion struct {
	MaterialID    string
	Name          string
	Unit          string
	Supplier      string
	CurrentStock  decimal.Decimal
	MinStock      decimal.Decimal
	IdealStock    decimal.Decimal
	SuggestedQty  decimal.Decimal
	UnitCost      decimal.Decimal
	EstimatedCost decimal.Decimal
	Coverage      decimal.Decimal // stock / mínimo
	Priority      int
}

// ReplenishmentUseCase genera la lista de compras de materias primas bajo el mínimo.
type ReplenishmentUseCase struct {
	materials repository.RawMaterialRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(materials repository.RawMaterialRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{materials: materials}
}

// GenerateReplenishmentList devuelve las materias primas bajo el mínimo con la cantidad
// sugerida de compra (hasta 1.5 × mínimo) y su costo estimado al costo promedio vigente.
// Prioridad 1 = menor cobertura; a igual cobertura, mayor costo estimado primero.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]PurchaseSuggestion, error) {
	low, err := uc.materials.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := make([]PurchaseSuggestion, 0, len(low))
	for _, m := range low {
		ideal := inventory.RoundQuantity(m.MinStock.Mul(idealStockFactor))
		qty := ideal.Sub(m.Stock)
		if qty.LessThanOrEqual(decimal.Zero) {
			continue
		}
		coverage := decimal.Zero
		if m.MinStock.GreaterThan(decimal.Zero) {
			coverage = m.Stock.Div(m.MinStock).Round(4)
		}
		suggestions = append(suggestions, PurchaseSuggestion{
			MaterialID:    m.ID,
			Name:          m.Name,
			Unit:          string(m.Unit),
			Supplier:      m.Supplier,
			CurrentStock:  m.Stock,
			MinStock:      m.MinStock,
			IdealStock:    ideal,
			SuggestedQty:  qty,
			UnitCost:      m.UnitCost,
			EstimatedCost: inventory.RoundCost(qty.Mul(m.UnitCost)),
			Coverage:      coverage,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.Coverage.Equal(b.Coverage) {
			return a.Coverage.LessThan(b.Coverage)
		}
		return a.EstimatedCost.GreaterThan(b.EstimatedCost)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
