package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas e ingredientes sobre PostgreSQL. Create y ReplaceIngredients escriben
// varias filas: llamarlos con una tx para que queden atómicos.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

const recipeColumns = `id, product_id, name, description, yield_quantity, yield_unit, total_cost, unit_cost,
	active, version, created_at, updated_at, deleted_at`

// Create inserta la receta y sus ingredientes.
func (r *RecipeRepo) Create(ctx context.Context, rec *entity.Recipe) error {
	query := `
		INSERT INTO recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.ProductID, rec.Name, rec.Description, rec.YieldQuantity, rec.YieldUnit,
		rec.TotalCost, rec.UnitCost, rec.Active, rec.Version, rec.CreatedAt, rec.UpdatedAt, rec.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return r.insertIngredients(ctx, rec)
}

func (r *RecipeRepo) insertIngredients(ctx context.Context, rec *entity.Recipe) error {
	query := `
		INSERT INTO recipe_ingredients (id, recipe_id, raw_material_id, quantity, unit, cost, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, ing := range rec.Ingredients {
		_, err := r.q.Exec(ctx, query,
			ing.ID, rec.ID, ing.RawMaterialID, ing.Quantity, ing.Unit, ing.Cost, ing.DisplayOrder,
		)
		if err != nil {
			return fmt.Errorf("insert recipe ingredient: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la receta con sus ingredientes ordenados.
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetActiveByProduct la receta activa más reciente del producto.
func (r *RecipeRepo) GetActiveByProduct(ctx context.Context, productID string) (*entity.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE product_id = $1 AND active AND deleted_at IS NULL
		ORDER BY updated_at DESC
		LIMIT 1`
	return r.getOne(ctx, query, productID)
}

func (r *RecipeRepo) getOne(ctx context.Context, query string, arg string) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&rec.ID, &rec.ProductID, &rec.Name, &rec.Description, &rec.YieldQuantity, &rec.YieldUnit,
		&rec.TotalCost, &rec.UnitCost, &rec.Active, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt, &rec.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	ings, err := r.ingredients(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Ingredients = ings
	return &rec, nil
}

func (r *RecipeRepo) ingredients(ctx context.Context, recipeID string) ([]entity.RecipeIngredient, error) {
	query := `
		SELECT id, recipe_id, raw_material_id, quantity, unit, cost, display_order
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY display_order, id`
	rows, err := r.q.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	var list []entity.RecipeIngredient
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(
			&ing.ID, &ing.RecipeID, &ing.RawMaterialID, &ing.Quantity, &ing.Unit, &ing.Cost, &ing.DisplayOrder,
		); err != nil {
			return nil, err
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

// ReplaceIngredients borra e inserta los ingredientes y persiste la nueva versión.
func (r *RecipeRepo) ReplaceIngredients(ctx context.Context, rec *entity.Recipe) error {
	tag, err := r.q.Exec(ctx, `UPDATE recipes SET version = $2, updated_at = $3 WHERE id = $1`,
		rec.ID, rec.Version, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update recipe version: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID); err != nil {
		return fmt.Errorf("delete recipe ingredients: %w", err)
	}
	return r.insertIngredients(ctx, rec)
}

// UpdateCosts persiste el costo de cada ingrediente y los agregados de la receta.
func (r *RecipeRepo) UpdateCosts(ctx context.Context, rec *entity.Recipe) error {
	for _, ing := range rec.Ingredients {
		if _, err := r.q.Exec(ctx, `UPDATE recipe_ingredients SET cost = $2 WHERE id = $1`, ing.ID, ing.Cost); err != nil {
			return fmt.Errorf("update ingredient cost: %w", err)
		}
	}
	tag, err := r.q.Exec(ctx, `UPDATE recipes SET total_cost = $2, unit_cost = $3, updated_at = now() WHERE id = $1`,
		rec.ID, rec.TotalCost, rec.UnitCost)
	if err != nil {
		return fmt.Errorf("update recipe costs: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva la receta.
func (r *RecipeRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE recipes SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set recipe active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la receta como eliminada.
func (r *RecipeRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE recipes SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasActiveWithMaterial indica si alguna receta activa usa la materia prima.
func (r *RecipeRepo) HasActiveWithMaterial(ctx context.Context, materialID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM recipe_ingredients ri
			JOIN recipes re ON re.id = ri.recipe_id
			WHERE ri.raw_material_id = $1 AND re.active AND re.deleted_at IS NULL
		)`
	var used bool
	if err := r.q.QueryRow(ctx, query, materialID).Scan(&used); err != nil {
		return false, fmt.Errorf("check recipes using material: %w", err)
	}
	return used, nil
}
