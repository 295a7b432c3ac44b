package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

type finishedGoodsRepo struct{ view }

func (r finishedGoodsRepo) EnsureRow(_ context.Context, productID string) error {
	defer r.lock()()
	if _, ok := r.s.finishedGoods[productID]; !ok {
		r.s.finishedGoods[productID] = entity.FinishedGoodsInventory{ProductID: productID}
	}
	return nil
}

func (r finishedGoodsRepo) Get(_ context.Context, productID string) (*entity.FinishedGoodsInventory, error) {
	defer r.lock()()
	inv, ok := r.s.finishedGoods[productID]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r finishedGoodsRepo) GetForUpdate(ctx context.Context, productID string) (*entity.FinishedGoodsInventory, error) {
	return r.Get(ctx, productID)
}

func (r finishedGoodsRepo) Update(_ context.Context, inv *entity.FinishedGoodsInventory) error {
	defer r.lock()()
	if _, ok := r.s.finishedGoods[inv.ProductID]; !ok {
		return errMissing("inventario de producto", inv.ProductID)
	}
	r.s.finishedGoods[inv.ProductID] = *inv
	return nil
}

func (r finishedGoodsRepo) ListBelowMinimum(_ context.Context) ([]*entity.FinishedGoodsInventory, error) {
	defer r.lock()()
	out := make([]*entity.FinishedGoodsInventory, 0)
	for _, inv := range r.s.finishedGoods {
		if inv.BelowMinimum() {
			inv := inv
			out = append(out, &inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

type finishedMovementRepo struct{ view }

func (r finishedMovementRepo) Create(_ context.Context, mov *entity.FinishedGoodsMovement) error {
	defer r.lock()()
	r.s.finishedMovements = append(r.s.finishedMovements, *mov)
	return nil
}

func (r finishedMovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.FinishedGoodsMovement, error) {
	defer r.lock()()
	out := make([]*entity.FinishedGoodsMovement, 0)
	for i := len(r.s.finishedMovements) - 1; i >= 0; i-- {
		if mov := r.s.finishedMovements[i]; mov.ProductID == productID {
			out = append(out, &mov)
		}
	}
	return page(out, limit, offset), nil
}

func (r finishedMovementRepo) ListByProduction(_ context.Context, productionID string) ([]*entity.FinishedGoodsMovement, error) {
	defer r.lock()()
	out := make([]*entity.FinishedGoodsMovement, 0)
	for _, mov := range r.s.finishedMovements {
		if mov.ProductionID != nil && *mov.ProductionID == productionID {
			mov := mov
			out = append(out, &mov)
		}
	}
	return out, nil
}
