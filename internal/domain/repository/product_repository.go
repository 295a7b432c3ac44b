package repository

import (
	"context"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// ProductRepository alta y lectura de productos. Create devuelve domain.ErrDuplicate si el SKU ya existe.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
