package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido también cubre un panic dentro de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(tx *inventory.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Bind(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Bind arma los repositorios del motor sobre un Querier (pool para lecturas, tx dentro de Run).
func Bind(q Querier) *inventory.Tx {
	return &inventory.Tx{
		RawMaterials:      NewRawMaterialRepository(q),
		RawMovements:      NewRawMaterialMovementRepository(q),
		Recipes:           NewRecipeRepository(q),
		FinishedGoods:     NewFinishedGoodsRepository(q),
		FinishedMovements: NewFinishedGoodsMovementRepository(q),
		Productions:       NewProductionRepository(q),
		Products:          NewProductRepository(q),
	}
}
