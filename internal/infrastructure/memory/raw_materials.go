package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

type rawMaterialRepo struct{ view }

func (r rawMaterialRepo) Create(_ context.Context, m *entity.RawMaterial) error {
	defer r.lock()()
	if _, ok := r.s.rawMaterials[m.ID]; ok {
		return errDuplicate("materia prima", m.ID)
	}
	if m.Code != nil {
		for _, cur := range r.s.rawMaterials {
			if cur.Code != nil && *cur.Code == *m.Code {
				return errDuplicate("código de materia prima", *m.Code)
			}
		}
	}
	r.s.rawMaterials[m.ID] = *m
	return nil
}

func (r rawMaterialRepo) GetByID(_ context.Context, id string) (*entity.RawMaterial, error) {
	defer r.lock()()
	m, ok := r.s.rawMaterials[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// GetForUpdate dentro de Run el mutex del store ya funciona como bloqueo de fila.
func (r rawMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.GetByID(ctx, id)
}

func (r rawMaterialRepo) UpdateStock(_ context.Context, m *entity.RawMaterial) error {
	defer r.lock()()
	cur, ok := r.s.rawMaterials[m.ID]
	if !ok {
		return errMissing("materia prima", m.ID)
	}
	cur.Stock = m.Stock
	cur.UnitCost = m.UnitCost
	cur.LastPurchaseDate = m.LastPurchaseDate
	cur.UpdatedAt = m.UpdatedAt
	r.s.rawMaterials[m.ID] = cur
	return nil
}

func (r rawMaterialRepo) ListBelowMinimum(_ context.Context) ([]*entity.RawMaterial, error) {
	defer r.lock()()
	out := make([]*entity.RawMaterial, 0)
	for _, m := range r.s.rawMaterials {
		if m.Active && !m.Deleted() && m.BelowMinimum() {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r rawMaterialRepo) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	defer r.lock()()
	m, ok := r.s.rawMaterials[id]
	if !ok {
		return errMissing("materia prima", id)
	}
	m.Active = active
	m.UpdatedAt = at
	r.s.rawMaterials[id] = m
	return nil
}

func (r rawMaterialRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	defer r.lock()()
	m, ok := r.s.rawMaterials[id]
	if !ok {
		return errMissing("materia prima", id)
	}
	m.DeletedAt = &at
	m.UpdatedAt = at
	r.s.rawMaterials[id] = m
	return nil
}

type rawMovementRepo struct{ view }

func (r rawMovementRepo) Create(_ context.Context, mov *entity.RawMaterialMovement) error {
	defer r.lock()()
	r.s.rawMovements = append(r.s.rawMovements, *mov)
	return nil
}

// ListByMaterial más recientes primero (orden inverso de inserción).
func (r rawMovementRepo) ListByMaterial(_ context.Context, materialID string, limit, offset int) ([]*entity.RawMaterialMovement, error) {
	defer r.lock()()
	out := make([]*entity.RawMaterialMovement, 0)
	for i := len(r.s.rawMovements) - 1; i >= 0; i-- {
		if mov := r.s.rawMovements[i]; mov.RawMaterialID == materialID {
			out = append(out, &mov)
		}
	}
	return page(out, limit, offset), nil
}

// ListByProduction en orden de inserción.
func (r rawMovementRepo) ListByProduction(_ context.Context, productionID string) ([]*entity.RawMaterialMovement, error) {
	defer r.lock()()
	out := make([]*entity.RawMaterialMovement, 0)
	for _, mov := range r.s.rawMovements {
		if mov.ProductionID != nil && *mov.ProductionID == productionID {
			mov := mov
			out = append(out, &mov)
		}
	}
	return out, nil
}
