package memory

import (
	"context"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

type productionRepo struct{ view }

func (r productionRepo) Create(_ context.Context, p *entity.ProductionRun) error {
	defer r.lock()()
	if _, ok := r.s.productions[p.ID]; ok {
		return errDuplicate("producción", p.ID)
	}
	r.s.productions[p.ID] = *p
	return nil
}

func (r productionRepo) GetByID(_ context.Context, id string) (*entity.ProductionRun, error) {
	defer r.lock()()
	p, ok := r.s.productions[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productionRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionRun, error) {
	return r.GetByID(ctx, id)
}

func (r productionRepo) Update(_ context.Context, p *entity.ProductionRun) error {
	defer r.lock()()
	if _, ok := r.s.productions[p.ID]; !ok {
		return errMissing("producción", p.ID)
	}
	r.s.productions[p.ID] = *p
	return nil
}

func (r productionRepo) CountByRecipe(_ context.Context, recipeID string) (int, error) {
	defer r.lock()()
	n := 0
	for _, p := range r.s.productions {
		if p.RecipeID == recipeID {
			n++
		}
	}
	return n, nil
}

type productRepo struct{ view }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	for _, cur := range r.s.products {
		if cur.ID == p.ID || cur.SKU == p.SKU {
			return errDuplicate("producto", p.SKU)
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
