package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// RawMaterialRepository define el puerto de persistencia de materias primas.
// Los métodos devuelven (nil, nil) cuando la fila no existe.
type RawMaterialRepository interface {
	Create(ctx context.Context, m *entity.RawMaterial) error
	GetByID(ctx context.Context, id string) (*entity.RawMaterial, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error)
	// UpdateStock persiste stock, costo unitario y fecha de última compra.
	UpdateStock(ctx context.Context, m *entity.RawMaterial) error
	ListBelowMinimum(ctx context.Context) ([]*entity.RawMaterial, error)
	// SetActive activa o desactiva la materia prima sin tocar su stock.
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

// RawMaterialMovementRepository movimientos inmutables de materia prima (solo inserción).
type RawMaterialMovementRepository interface {
	Create(ctx context.Context, mov *entity.RawMaterialMovement) error
	ListByMaterial(ctx context.Context, materialID string, limit, offset int) ([]*entity.RawMaterialMovement, error)
	ListByProduction(ctx context.Context, productionID string) ([]*entity.RawMaterialMovement, error)
}
