package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// ProductUseCase alta y consulta de productos. Stock y costo se manejan vía el libro de producto terminado.
type ProductUseCase struct {
	guard    *inventory.TxGuard
	products repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(guard *inventory.TxGuard, products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{guard: guard, products: products}
}

// Create crea el producto y su fila de inventario en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "sku y name son requeridos")
	}
	unit := entity.Unit(in.Unit)
	if unit == "" {
		unit = entity.UnitPiece
	}
	if !unit.Valid() {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "unidad %q no soportada", in.Unit)
	}
	if in.Price.LessThan(decimal.Zero) || in.MinStock.LessThan(decimal.Zero) || in.ShelfLifeDays < 0 {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "precio, stock mínimo y vida útil no pueden ser negativos")
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Price:     in.Price,
		Unit:      unit,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.guard.Run(ctx, nil, func(tx *inventory.Tx) error {
		if err := tx.Products.Create(ctx, product); err != nil {
			return err
		}
		if err := tx.FinishedGoods.EnsureRow(ctx, product.ID); err != nil {
			return err
		}
		inv, err := tx.FinishedGoods.GetForUpdate(ctx, product.ID)
		if err != nil {
			return err
		}
		inv.MinStock = in.MinStock
		inv.ShelfLifeDays = in.ShelfLifeDays
		inv.UpdatedAt = now
		return tx.FinishedGoods.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
