package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

// RawMaterialLedger libro de materias primas: stock, mínimo y costo promedio ponderado.
// Toda mutación bloquea la fila (SELECT FOR UPDATE) y registra un movimiento inmutable.
type RawMaterialLedger struct {
	guard     *TxGuard
	materials repository.RawMaterialRepository
	movements repository.RawMaterialMovementRepository
	cache     cacheSignal
	now       func() time.Time
}

// NewRawMaterialLedger construye el libro. Los repositorios se usan para lecturas fuera de transacción.
func NewRawMaterialLedger(
	guard *TxGuard,
	materials repository.RawMaterialRepository,
	movements repository.RawMaterialMovementRepository,
	cache CacheInvalidator,
	log *logger.Logger,
) *RawMaterialLedger {
	if log == nil {
		log = logger.Nop()
	}
	return &RawMaterialLedger{
		guard:     guard,
		materials: materials,
		movements: movements,
		cache:     cacheSignal{cache: cache, log: log.Component("raw_material_ledger")},
		now:       time.Now,
	}
}

// ConsumeInput salida de materia prima.
type ConsumeInput struct {
	MaterialID   string
	Quantity     decimal.Decimal
	Kind         entity.RawMovementKind // por defecto consumo_produccion
	ActorID      string
	Notes        string
	ProductionID *string
}

// ReplenishInput entrada de materia prima. UnitCost solo recalcula el promedio en compras.
type ReplenishInput struct {
	MaterialID    string
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal
	Kind          entity.RawMovementKind // por defecto compra
	ActorID       string
	InvoiceNumber string
	Notes         string
}

// HasStock indica si stock >= quantity.
func (l *RawMaterialLedger) HasStock(ctx context.Context, materialID string, quantity decimal.Decimal) (bool, error) {
	m, err := l.materials.GetByID(ctx, materialID)
	if err != nil {
		return false, err
	}
	if m == nil || m.Deleted() {
		return false, domain.ErrNotFound
	}
	return m.HasStock(quantity), nil
}

// Consume descuenta stock. Con tx != nil corre dentro de la transacción del llamador.
func (l *RawMaterialLedger) Consume(ctx context.Context, tx *Tx, in ConsumeInput) (*entity.RawMaterial, error) {
	qty, err := inventory.PositiveQuantity(in.Quantity, "la cantidad a descontar")
	if err != nil {
		return nil, err
	}
	in.Quantity = qty
	if in.Kind == "" {
		in.Kind = entity.RawMovementProduction
	}
	if !in.Kind.Outbound() {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "tipo de movimiento %q no es de salida", in.Kind)
	}
	m, err := Guarded(ctx, l.guard, tx, func(tx *Tx) (*entity.RawMaterial, error) {
		return l.consume(ctx, tx, in)
	})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		l.cache.signal(ctx, CacheKeyInventorySummary, CacheKeyRawMaterialsLow, RawMaterialCacheKey(m.ID))
	}
	return m, nil
}

func (l *RawMaterialLedger) consume(ctx context.Context, tx *Tx, in ConsumeInput) (*entity.RawMaterial, error) {
	// Bloquea la fila antes de leer el stock para evitar actualizaciones perdidas
	m, err := tx.RawMaterials.GetForUpdate(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Deleted() {
		return nil, domain.ErrNotFound
	}
	if in.Quantity.GreaterThan(m.Stock) {
		return nil, domain.NewInsufficientStock(m.ID, m.Name, string(m.Unit), in.Quantity, m.Stock)
	}
	now := l.now()
	before := m.Stock
	m.Stock = m.Stock.Sub(in.Quantity)
	m.UpdatedAt = now
	if err := tx.RawMaterials.UpdateStock(ctx, m); err != nil {
		return nil, err
	}
	mov := &entity.RawMaterialMovement{
		ID:            uuid.New().String(),
		RawMaterialID: m.ID,
		Kind:          in.Kind,
		Quantity:      in.Quantity,
		StockBefore:   before,
		StockAfter:    m.Stock,
		ProductionID:  in.ProductionID,
		ActorID:       in.ActorID,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if err := tx.RawMovements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return m, nil
}

// Replenish suma stock. En compras con costo recalcula el costo promedio ponderado
// (redondeado a 2 decimales) y actualiza la fecha de última compra.
func (l *RawMaterialLedger) Replenish(ctx context.Context, tx *Tx, in ReplenishInput) (*entity.RawMaterial, error) {
	qty, err := inventory.PositiveQuantity(in.Quantity, "la cantidad a ingresar")
	if err != nil {
		return nil, err
	}
	in.Quantity = qty
	if in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.Invalid(domain.ErrInvalidArgument, "el costo unitario no puede ser negativo")
		}
		cost := inventory.RoundCost(*in.UnitCost)
		in.UnitCost = &cost
	}
	if in.Kind == "" {
		in.Kind = entity.RawMovementPurchase
	}
	if !in.Kind.Inbound() {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "tipo de movimiento %q no es de entrada", in.Kind)
	}
	m, err := Guarded(ctx, l.guard, tx, func(tx *Tx) (*entity.RawMaterial, error) {
		return l.replenish(ctx, tx, in)
	})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		l.cache.signal(ctx, CacheKeyInventorySummary, CacheKeyRawMaterialsLow, RawMaterialCacheKey(m.ID))
	}
	return m, nil
}

func (l *RawMaterialLedger) replenish(ctx context.Context, tx *Tx, in ReplenishInput) (*entity.RawMaterial, error) {
	m, err := tx.RawMaterials.GetForUpdate(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Deleted() {
		return nil, domain.ErrNotFound
	}
	now := l.now()
	before := m.Stock
	purchase := in.Kind == entity.RawMovementPurchase
	if purchase && in.UnitCost != nil {
		m.UnitCost = inventory.CostCalculator(m.Stock, m.UnitCost, in.Quantity, *in.UnitCost)
	}
	if purchase {
		m.LastPurchaseDate = &now
	}
	m.Stock = m.Stock.Add(in.Quantity)
	m.UpdatedAt = now
	if err := tx.RawMaterials.UpdateStock(ctx, m); err != nil {
		return nil, err
	}
	mov := &entity.RawMaterialMovement{
		ID:            uuid.New().String(),
		RawMaterialID: m.ID,
		Kind:          in.Kind,
		Quantity:      in.Quantity,
		StockBefore:   before,
		StockAfter:    m.Stock,
		ActorID:       in.ActorID,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if purchase {
		mov.UnitCost = in.UnitCost
		mov.InvoiceNumber = in.InvoiceNumber
	}
	if err := tx.RawMovements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return m, nil
}

// Deactivate desactiva una materia prima: deja de figurar en stock bajo y queda habilitada
// para eliminarse. El stock y su historial no cambian. Desactivar una inactiva no hace nada.
func (l *RawMaterialLedger) Deactivate(ctx context.Context, materialID string) (*entity.RawMaterial, error) {
	m, err := Guarded(ctx, l.guard, nil, func(tx *Tx) (*entity.RawMaterial, error) {
		m, err := tx.RawMaterials.GetForUpdate(ctx, materialID)
		if err != nil {
			return nil, err
		}
		if m == nil || m.Deleted() {
			return nil, domain.ErrNotFound
		}
		if !m.Active {
			return m, nil
		}
		now := l.now()
		if err := tx.RawMaterials.SetActive(ctx, m.ID, false, now); err != nil {
			return nil, err
		}
		m.Active = false
		m.UpdatedAt = now
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	l.cache.signal(ctx, CacheKeyInventorySummary, CacheKeyRawMaterialsLow, RawMaterialCacheKey(m.ID))
	return m, nil
}

// Delete elimina lógicamente una materia prima inactiva que ninguna receta activa usa.
func (l *RawMaterialLedger) Delete(ctx context.Context, materialID string) error {
	return l.guard.Run(ctx, nil, func(tx *Tx) error {
		m, err := tx.RawMaterials.GetForUpdate(ctx, materialID)
		if err != nil {
			return err
		}
		if m == nil || m.Deleted() {
			return domain.ErrNotFound
		}
		if m.Active {
			return domain.Invalid(domain.ErrInvalidState, "la materia prima %s sigue activa", m.Name)
		}
		used, err := tx.Recipes.HasActiveWithMaterial(ctx, m.ID)
		if err != nil {
			return err
		}
		if used {
			return domain.Invalid(domain.ErrInvalidState, "la materia prima %s está en recetas activas", m.Name)
		}
		return tx.RawMaterials.SoftDelete(ctx, m.ID, l.now())
	})
}

// Movements historial de movimientos de una materia prima, más recientes primero.
func (l *RawMaterialLedger) Movements(ctx context.Context, materialID string, limit, offset int) ([]*entity.RawMaterialMovement, error) {
	return l.movements.ListByMaterial(ctx, materialID, limit, offset)
}

// LowStock materias primas activas por debajo de su stock mínimo.
func (l *RawMaterialLedger) LowStock(ctx context.Context) ([]*entity.RawMaterial, error) {
	return l.materials.ListBelowMinimum(ctx)
}
