package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// RecipeUseCase ciclo de vida de recetas: alta, edición versionada de ingredientes y baja.
type RecipeUseCase struct {
	guard   *TxGuard
	engine  *RecipeCostEngine
	recipes repository.RecipeRepository
	now     func() time.Time
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(guard *TxGuard, engine *RecipeCostEngine, recipes repository.RecipeRepository) *RecipeUseCase {
	return &RecipeUseCase{guard: guard, engine: engine, recipes: recipes, now: time.Now}
}

// IngredientInput línea de ingrediente al crear o editar una receta.
type IngredientInput struct {
	RawMaterialID string
	Quantity      decimal.Decimal
	Unit          entity.Unit
}

// CreateRecipeInput datos de alta de una receta.
type CreateRecipeInput struct {
	ProductID     string
	Name          string
	Description   string
	YieldQuantity decimal.Decimal
	YieldUnit     entity.Unit
	Ingredients   []IngredientInput
}

// Create registra la receta en versión 1, activa, con sus costos calculados.
func (uc *RecipeUseCase) Create(ctx context.Context, in CreateRecipeInput) (*entity.Recipe, error) {
	if in.ProductID == "" || in.Name == "" {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "producto y nombre son obligatorios")
	}
	if !in.YieldQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.Invalid(domain.ErrInvalidRecipe, "el rendimiento debe ser mayor a cero")
	}
	if !in.YieldUnit.Valid() {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "unidad de rendimiento %q no soportada", in.YieldUnit)
	}
	now := uc.now()
	r := &entity.Recipe{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		Name:          in.Name,
		Description:   in.Description,
		YieldQuantity: in.YieldQuantity,
		YieldUnit:     in.YieldUnit,
		Active:        true,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	ings, err := buildIngredients(r.ID, in.Ingredients)
	if err != nil {
		return nil, err
	}
	r.Ingredients = ings
	return Guarded(ctx, uc.guard, nil, func(tx *Tx) (*entity.Recipe, error) {
		p, err := tx.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if err := uc.engine.applyCosts(ctx, tx.RawMaterials, r); err != nil {
			return nil, err
		}
		if err := tx.Recipes.Create(ctx, r); err != nil {
			return nil, err
		}
		return r, nil
	})
}

// UpdateIngredients reemplaza el conjunto de ingredientes, incrementa la versión y recalcula costos.
func (uc *RecipeUseCase) UpdateIngredients(ctx context.Context, recipeID string, ingredients []IngredientInput) (*entity.Recipe, error) {
	ings, err := buildIngredients(recipeID, ingredients)
	if err != nil {
		return nil, err
	}
	return Guarded(ctx, uc.guard, nil, func(tx *Tx) (*entity.Recipe, error) {
		r, err := tx.Recipes.GetByID(ctx, recipeID)
		if err != nil {
			return nil, err
		}
		if r == nil || r.DeletedAt != nil {
			return nil, domain.ErrNotFound
		}
		r.Ingredients = ings
		r.Version++
		r.UpdatedAt = uc.now()
		if err := uc.engine.applyCosts(ctx, tx.RawMaterials, r); err != nil {
			return nil, err
		}
		if err := tx.Recipes.ReplaceIngredients(ctx, r); err != nil {
			return nil, err
		}
		if err := tx.Recipes.UpdateCosts(ctx, r); err != nil {
			return nil, err
		}
		return r, nil
	})
}

// Deactivate desactiva una receta con historial de producción; sin historial la elimina lógicamente.
// Devuelve true si la receta quedó eliminada.
func (uc *RecipeUseCase) Deactivate(ctx context.Context, recipeID string) (bool, error) {
	return Guarded(ctx, uc.guard, nil, func(tx *Tx) (bool, error) {
		r, err := tx.Recipes.GetByID(ctx, recipeID)
		if err != nil {
			return false, err
		}
		if r == nil || r.DeletedAt != nil {
			return false, domain.ErrNotFound
		}
		runs, err := tx.Productions.CountByRecipe(ctx, recipeID)
		if err != nil {
			return false, err
		}
		if err := tx.Recipes.SetActive(ctx, recipeID, false); err != nil {
			return false, err
		}
		if runs > 0 {
			return false, nil
		}
		return true, tx.Recipes.SoftDelete(ctx, recipeID, uc.now())
	})
}

// Get devuelve la receta con sus ingredientes.
func (uc *RecipeUseCase) Get(ctx context.Context, recipeID string) (*entity.Recipe, error) {
	r, err := uc.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if r == nil || r.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func buildIngredients(recipeID string, in []IngredientInput) ([]entity.RecipeIngredient, error) {
	if len(in) == 0 {
		return nil, domain.Invalid(domain.ErrInvalidRecipe, "la receta necesita al menos un ingrediente")
	}
	out := make([]entity.RecipeIngredient, 0, len(in))
	for i, ing := range in {
		if ing.RawMaterialID == "" {
			return nil, domain.Invalid(domain.ErrInvalidArgument, "ingrediente %d sin materia prima", i+1)
		}
		if !ing.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.Invalid(domain.ErrInvalidArgument, "ingrediente %d: la cantidad debe ser mayor a cero", i+1)
		}
		if !ing.Unit.Valid() {
			return nil, domain.Invalid(domain.ErrInvalidArgument, "ingrediente %d: unidad %q no soportada", i+1, ing.Unit)
		}
		out = append(out, entity.RecipeIngredient{
			ID:            uuid.New().String(),
			RecipeID:      recipeID,
			RawMaterialID: ing.RawMaterialID,
			Quantity:      ing.Quantity,
			Unit:          ing.Unit,
			DisplayOrder:  i + 1,
		})
	}
	return out, nil
}
