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

// RawMaterialUseCase alta y consulta del catálogo de materias primas.
type RawMaterialUseCase struct {
	guard     *inventory.TxGuard
	materials repository.RawMaterialRepository
	ledger    *inventory.RawMaterialLedger
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(guard *inventory.TxGuard, materials repository.RawMaterialRepository, ledger *inventory.RawMaterialLedger) *RawMaterialUseCase {
	return &RawMaterialUseCase{guard: guard, materials: materials, ledger: ledger}
}

// Create da de alta la materia prima con stock cero; el stock inicial entra como compra
// dentro de la misma transacción para que el historial cuadre con el saldo.
func (uc *RawMaterialUseCase) Create(ctx context.Context, in dto.CreateRawMaterialRequest, actorID string) (*entity.RawMaterial, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "name es requerido")
	}
	unit := entity.Unit(in.Unit)
	if !unit.Valid() {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "unidad %q no soportada", in.Unit)
	}
	if in.Stock.LessThan(decimal.Zero) || in.MinStock.LessThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "stock, stock mínimo y costo no pueden ser negativos")
	}

	now := time.Now()
	m := &entity.RawMaterial{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Unit:      unit,
		MinStock:  in.MinStock,
		UnitCost:  in.UnitCost,
		Supplier:  strings.TrimSpace(in.Supplier),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if code := strings.TrimSpace(in.Code); code != "" {
		m.Code = &code
	}
	return inventory.Guarded(ctx, uc.guard, nil, func(tx *inventory.Tx) (*entity.RawMaterial, error) {
		if err := tx.RawMaterials.Create(ctx, m); err != nil {
			return nil, err
		}
		if !in.Stock.GreaterThan(decimal.Zero) {
			return m, nil
		}
		cost := in.UnitCost
		return uc.ledger.Replenish(ctx, tx, inventory.ReplenishInput{
			MaterialID: m.ID,
			Quantity:   in.Stock,
			UnitCost:   &cost,
			Kind:       entity.RawMovementPurchase,
			ActorID:    actorID,
			Notes:      "inventario inicial",
		})
	})
}

// GetByID obtiene una materia prima no eliminada.
func (uc *RawMaterialUseCase) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	m, err := uc.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Deleted() {
		return nil, domain.ErrNotFound
	}
	return m, nil
}
