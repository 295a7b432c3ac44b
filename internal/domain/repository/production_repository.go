package repository

import (
	"context"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// ProductionRepository define el puerto de persistencia de órdenes de producción.
type ProductionRepository interface {
	Create(ctx context.Context, p *entity.ProductionRun) error
	GetByID(ctx context.Context, id string) (*entity.ProductionRun, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ProductionRun, error)
	Update(ctx context.Context, p *entity.ProductionRun) error
	CountByRecipe(ctx context.Context, recipeID string) (int, error)
}
