package inventory

import (
	"context"

	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// Tx es el handle explícito de una transacción abierta: repositorios atados a ella.
// Las operaciones de los libros reciben un *Tx; nil significa "no hay transacción en curso".
type Tx struct {
	RawMaterials      repository.RawMaterialRepository
	RawMovements      repository.RawMaterialMovementRepository
	Recipes           repository.RecipeRepository
	FinishedGoods     repository.FinishedGoodsRepository
	FinishedMovements repository.FinishedGoodsMovementRepository
	Productions       repository.ProductionRepository
	Products          repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso (incluido panic).
type TxRunner interface {
	Run(ctx context.Context, fn func(tx *Tx) error) error
}

// TxGuard ejecuta unidades de trabajo con commit/rollback exactamente una vez.
// Con un tx externo la unidad se aplana sobre él: no abre transacción ni savepoint,
// y el commit/rollback queda a cargo de quien abrió la transacción externa.
type TxGuard struct {
	runner TxRunner
}

// NewTxGuard construye el guard sobre el runner de la infraestructura.
func NewTxGuard(runner TxRunner) *TxGuard {
	return &TxGuard{runner: runner}
}

// Run ejecuta fn dentro de outer si no es nil; si no, abre una transacción propia.
func (g *TxGuard) Run(ctx context.Context, outer *Tx, fn func(tx *Tx) error) error {
	if outer != nil {
		return fn(outer)
	}
	return g.runner.Run(ctx, fn)
}

// Guarded es Run con valor de retorno. El valor solo se devuelve si la unidad confirmó.
func Guarded[T any](ctx context.Context, g *TxGuard, outer *Tx, fn func(tx *Tx) (T, error)) (T, error) {
	var out T
	err := g.Run(ctx, outer, func(tx *Tx) error {
		v, err := fn(tx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
