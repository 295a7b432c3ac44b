package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// RecipeCostEngine calcula costos de receta desde los costos actuales de materias primas
// y responde consultas de suficiencia de stock con conversión de unidades.
type RecipeCostEngine struct {
	guard     *TxGuard
	recipes   repository.RecipeRepository
	materials repository.RawMaterialRepository
	converter *inventory.UnitConverter
}

// NewRecipeCostEngine construye el motor de costos.
func NewRecipeCostEngine(
	guard *TxGuard,
	recipes repository.RecipeRepository,
	materials repository.RawMaterialRepository,
	converter *inventory.UnitConverter,
) *RecipeCostEngine {
	if converter == nil {
		converter = inventory.NewUnitConverter()
	}
	return &RecipeCostEngine{guard: guard, recipes: recipes, materials: materials, converter: converter}
}

// StockCheck resultado de VerifyStock. Las cantidades de cada faltante van en la unidad de la materia prima.
type StockCheck struct {
	Sufficient bool
	Shortages  []domain.Shortage
}

// CalculateCosts recalcula el costo de cada ingrediente (redondeado a 2 decimales), el total
// y el costo unitario (total / rendimiento), y los persiste de forma atómica.
func (e *RecipeCostEngine) CalculateCosts(ctx context.Context, tx *Tx, recipeID string) (*entity.Recipe, error) {
	return Guarded(ctx, e.guard, tx, func(tx *Tx) (*entity.Recipe, error) {
		r, err := tx.Recipes.GetByID(ctx, recipeID)
		if err != nil {
			return nil, err
		}
		if r == nil || r.DeletedAt != nil {
			return nil, domain.ErrNotFound
		}
		if err := e.applyCosts(ctx, tx.RawMaterials, r); err != nil {
			return nil, err
		}
		if err := tx.Recipes.UpdateCosts(ctx, r); err != nil {
			return nil, err
		}
		return r, nil
	})
}

// applyCosts calcula en memoria los costos de r con los costos vigentes de materias primas.
func (e *RecipeCostEngine) applyCosts(ctx context.Context, materials repository.RawMaterialRepository, r *entity.Recipe) error {
	if !r.YieldQuantity.GreaterThan(decimal.Zero) {
		return domain.Invalid(domain.ErrInvalidRecipe, "el rendimiento de %q debe ser mayor a cero", r.Name)
	}
	total := decimal.Zero
	for i := range r.Ingredients {
		ing := &r.Ingredients[i]
		m, err := materials.GetByID(ctx, ing.RawMaterialID)
		if err != nil {
			return err
		}
		if m == nil || m.Deleted() {
			return domain.Invalid(domain.ErrInvalidRecipe, "el ingrediente %s referencia una materia prima eliminada", ing.RawMaterialID)
		}
		qty, err := e.converter.Convert(ing.Quantity, ing.Unit, m.Unit)
		if err != nil {
			return err
		}
		ing.Cost = inventory.RoundCost(qty.Mul(m.UnitCost))
		total = total.Add(ing.Cost)
	}
	r.TotalCost = inventory.RoundCost(total)
	r.UnitCost = inventory.RoundCost(total.Div(r.YieldQuantity))
	return nil
}

// VerifyStock indica si hay stock para producir quantity con la receta.
// Requerido por ingrediente = cantidad / rendimiento * quantity, redondeado a 3 decimales.
func (e *RecipeCostEngine) VerifyStock(ctx context.Context, recipeID string, quantity decimal.Decimal) (*StockCheck, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "la cantidad a producir debe ser mayor a cero")
	}
	r, err := e.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if r == nil || r.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if !r.YieldQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "el rendimiento de %q debe ser mayor a cero", r.Name)
	}
	check := &StockCheck{Sufficient: true}
	for _, ing := range r.Ingredients {
		m, err := e.materials.GetByID(ctx, ing.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if m == nil || m.Deleted() {
			return nil, domain.Invalid(domain.ErrInvalidRecipe, "el ingrediente %s referencia una materia prima eliminada", ing.RawMaterialID)
		}
		required := inventory.RoundQuantity(ing.Quantity.Div(r.YieldQuantity).Mul(quantity))
		required, err = e.converter.Convert(required, ing.Unit, m.Unit)
		if err != nil {
			return nil, err
		}
		if required.GreaterThan(m.Stock) {
			check.Sufficient = false
			check.Shortages = append(check.Shortages, domain.Shortage{
				MaterialID:   m.ID,
				MaterialName: m.Name,
				Required:     required,
				Available:    m.Stock,
				Shortfall:    required.Sub(m.Stock),
				Unit:         string(m.Unit),
			})
		}
	}
	return check, nil
}
