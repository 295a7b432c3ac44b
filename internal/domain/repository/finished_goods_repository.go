package repository

import (
	"context"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// FinishedGoodsRepository inventario de producto terminado (una fila por producto).
type FinishedGoodsRepository interface {
	// EnsureRow crea la fila con stock cero si no existe; nunca sobrescribe una existente.
	EnsureRow(ctx context.Context, productID string) error
	Get(ctx context.Context, productID string) (*entity.FinishedGoodsInventory, error)
	GetForUpdate(ctx context.Context, productID string) (*entity.FinishedGoodsInventory, error)
	Update(ctx context.Context, inv *entity.FinishedGoodsInventory) error
	ListBelowMinimum(ctx context.Context) ([]*entity.FinishedGoodsInventory, error)
}

// FinishedGoodsMovementRepository movimientos inmutables de producto terminado.
type FinishedGoodsMovementRepository interface {
	Create(ctx context.Context, mov *entity.FinishedGoodsMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.FinishedGoodsMovement, error)
	ListByProduction(ctx context.Context, productionID string) ([]*entity.FinishedGoodsMovement, error)
}
