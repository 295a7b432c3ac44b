package inventory

import (
	"github.com/jhoicas/Panaderia-api/internal/domain/inventory"
	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

// Engine agrupa los servicios del motor armados sobre un mismo TxRunner.
type Engine struct {
	Guard         *TxGuard
	RawMaterials  *RawMaterialLedger
	FinishedGoods *FinishedGoodsLedger
	RecipeCosts   *RecipeCostEngine
	Recipes       *RecipeUseCase
	Production    *ProductionProcessor
	Replenishment *ReplenishmentUseCase
}

// NewEngine arma el motor. reads son repositorios fuera de transacción para consultas;
// las mutaciones siempre pasan por runner.
func NewEngine(runner TxRunner, reads *Tx, cache CacheInvalidator, log *logger.Logger, cfg ProductionConfig) *Engine {
	if cache == nil {
		cache = NoopInvalidator{}
	}
	guard := NewTxGuard(runner)
	converter := inventory.NewUnitConverter()

	raw := NewRawMaterialLedger(guard, reads.RawMaterials, reads.RawMovements, cache, log)
	finished := NewFinishedGoodsLedger(guard, reads.FinishedGoods, reads.FinishedMovements, cache, log)
	costs := NewRecipeCostEngine(guard, reads.Recipes, reads.RawMaterials, converter)

	return &Engine{
		Guard:         guard,
		RawMaterials:  raw,
		FinishedGoods: finished,
		RecipeCosts:   costs,
		Recipes:       NewRecipeUseCase(guard, costs, reads.Recipes),
		Production:    NewProductionProcessor(guard, reads.Productions, raw, finished, converter, cache, log, cfg),
		Replenishment: NewReplenishmentUseCase(reads.RawMaterials),
	}
}
