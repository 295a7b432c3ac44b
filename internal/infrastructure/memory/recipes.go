package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

type recipeRepo struct{ view }

func (r recipeRepo) Create(_ context.Context, rec *entity.Recipe) error {
	defer r.lock()()
	if _, ok := r.s.recipes[rec.ID]; ok {
		return errDuplicate("receta", rec.ID)
	}
	r.s.recipes[rec.ID] = copyRecipe(*rec)
	return nil
}

func (r recipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	defer r.lock()()
	rec, ok := r.s.recipes[id]
	if !ok {
		return nil, nil
	}
	out := copyRecipe(rec)
	sort.SliceStable(out.Ingredients, func(i, j int) bool {
		return out.Ingredients[i].DisplayOrder < out.Ingredients[j].DisplayOrder
	})
	return &out, nil
}

// GetActiveByProduct la receta activa más reciente del producto.
func (r recipeRepo) GetActiveByProduct(ctx context.Context, productID string) (*entity.Recipe, error) {
	id := func() string {
		defer r.lock()()
		var best *entity.Recipe
		for _, rec := range r.s.recipes {
			if rec.ProductID != productID || !rec.Active || rec.DeletedAt != nil {
				continue
			}
			if best == nil || rec.UpdatedAt.After(best.UpdatedAt) {
				rec := rec
				best = &rec
			}
		}
		if best == nil {
			return ""
		}
		return best.ID
	}()
	if id == "" {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r recipeRepo) ReplaceIngredients(_ context.Context, rec *entity.Recipe) error {
	defer r.lock()()
	cur, ok := r.s.recipes[rec.ID]
	if !ok {
		return errMissing("receta", rec.ID)
	}
	cur.Ingredients = append([]entity.RecipeIngredient(nil), rec.Ingredients...)
	cur.Version = rec.Version
	cur.UpdatedAt = rec.UpdatedAt
	r.s.recipes[rec.ID] = cur
	return nil
}

func (r recipeRepo) UpdateCosts(_ context.Context, rec *entity.Recipe) error {
	defer r.lock()()
	cur, ok := r.s.recipes[rec.ID]
	if !ok {
		return errMissing("receta", rec.ID)
	}
	costs := make(map[string]entity.RecipeIngredient, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		costs[ing.ID] = ing
	}
	for i := range cur.Ingredients {
		if ing, ok := costs[cur.Ingredients[i].ID]; ok {
			cur.Ingredients[i].Cost = ing.Cost
		}
	}
	cur.TotalCost = rec.TotalCost
	cur.UnitCost = rec.UnitCost
	r.s.recipes[rec.ID] = cur
	return nil
}

func (r recipeRepo) SetActive(_ context.Context, id string, active bool) error {
	defer r.lock()()
	cur, ok := r.s.recipes[id]
	if !ok {
		return errMissing("receta", id)
	}
	cur.Active = active
	r.s.recipes[id] = cur
	return nil
}

func (r recipeRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	defer r.lock()()
	cur, ok := r.s.recipes[id]
	if !ok {
		return errMissing("receta", id)
	}
	cur.DeletedAt = &at
	r.s.recipes[id] = cur
	return nil
}

func (r recipeRepo) HasActiveWithMaterial(_ context.Context, materialID string) (bool, error) {
	defer r.lock()()
	for _, rec := range r.s.recipes {
		if !rec.Active || rec.DeletedAt != nil {
			continue
		}
		for _, ing := range rec.Ingredients {
			if ing.RawMaterialID == materialID {
				return true, nil
			}
		}
	}
	return false, nil
}
