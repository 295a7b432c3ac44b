package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia de recetas y sus ingredientes.
type RecipeRepository interface {
	// Create inserta la receta y sus ingredientes.
	Create(ctx context.Context, r *entity.Recipe) error
	// GetByID devuelve la receta con ingredientes ordenados por DisplayOrder.
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	GetActiveByProduct(ctx context.Context, productID string) (*entity.Recipe, error)
	// ReplaceIngredients borra e inserta las filas de ingredientes y persiste la versión.
	ReplaceIngredients(ctx context.Context, r *entity.Recipe) error
	// UpdateCosts persiste el costo de cada ingrediente y los agregados de la receta.
	UpdateCosts(ctx context.Context, r *entity.Recipe) error
	SetActive(ctx context.Context, id string, active bool) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	// HasActiveWithMaterial indica si alguna receta activa usa la materia prima.
	HasActiveWithMaterial(ctx context.Context, materialID string) (bool, error)
}
