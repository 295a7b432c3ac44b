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

// FinishedGoodsLedger libro de producto terminado.
// Producción, ventas, conteos y devoluciones comparten SetAbsoluteStock; el movimiento
// registra el delta con su dirección.
type FinishedGoodsLedger struct {
	guard     *TxGuard
	inventory repository.FinishedGoodsRepository
	movements repository.FinishedGoodsMovementRepository
	cache     cacheSignal
	now       func() time.Time
}

// NewFinishedGoodsLedger construye el libro de producto terminado.
func NewFinishedGoodsLedger(
	guard *TxGuard,
	inv repository.FinishedGoodsRepository,
	movements repository.FinishedGoodsMovementRepository,
	cache CacheInvalidator,
	log *logger.Logger,
) *FinishedGoodsLedger {
	if log == nil {
		log = logger.Nop()
	}
	return &FinishedGoodsLedger{
		guard:     guard,
		inventory: inv,
		movements: movements,
		cache:     cacheSignal{cache: cache, log: log.Component("finished_goods_ledger")},
		now:       time.Now,
	}
}

// SetStockInput fija el stock absoluto de un producto.
// Kind vacío se infiere del signo del delta (ajuste_entrada / ajuste_salida).
type SetStockInput struct {
	ProductID    string
	NewStock     decimal.Decimal
	Kind         entity.FinishedMovementKind
	ActorID      string
	Notes        string
	ProductionID *string
	OrderID      *string
}

// ReplenishFinishedInput entrada de producción con costo promedio ponderado.
type ReplenishFinishedInput struct {
	ProductID       string
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal
	ElaborationDate time.Time
	ActorID         string
	Notes           string
	ProductionID    *string
}

// EnsureRow crea la fila del producto con stock cero si no existe. Idempotente.
func (l *FinishedGoodsLedger) EnsureRow(ctx context.Context, tx *Tx, productID string) (*entity.FinishedGoodsInventory, error) {
	if productID == "" {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "producto requerido")
	}
	return Guarded(ctx, l.guard, tx, func(tx *Tx) (*entity.FinishedGoodsInventory, error) {
		if err := tx.FinishedGoods.EnsureRow(ctx, productID); err != nil {
			return nil, err
		}
		return tx.FinishedGoods.Get(ctx, productID)
	})
}

// Get devuelve el inventario del producto; un producto sin fila tiene stock cero.
func (l *FinishedGoodsLedger) Get(ctx context.Context, productID string) (*entity.FinishedGoodsInventory, error) {
	inv, err := l.inventory.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return &entity.FinishedGoodsInventory{ProductID: productID}, nil
	}
	return inv, nil
}

// SetAbsoluteStock fija el stock en NewStock y registra un movimiento por |delta|.
// Si el stock no cambia no se registra movimiento.
func (l *FinishedGoodsLedger) SetAbsoluteStock(ctx context.Context, tx *Tx, in SetStockInput) (*entity.FinishedGoodsInventory, error) {
	if in.ProductID == "" {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "producto requerido")
	}
	in.NewStock = inventory.RoundQuantity(in.NewStock)
	if in.NewStock.LessThan(decimal.Zero) {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "el stock no puede ser negativo")
	}
	inv, err := Guarded(ctx, l.guard, tx, func(tx *Tx) (*entity.FinishedGoodsInventory, error) {
		inv, err := l.lock(ctx, tx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if err := l.apply(ctx, tx, inv, in); err != nil {
			return nil, err
		}
		return inv, nil
	})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		l.signal(ctx, inv.ProductID)
	}
	return inv, nil
}

// DeductSale descuenta quantity por una venta (usado por el módulo de pedidos).
func (l *FinishedGoodsLedger) DeductSale(ctx context.Context, tx *Tx, productID string, quantity decimal.Decimal, orderID *string, actorID, notes string) (*entity.FinishedGoodsInventory, error) {
	quantity, err := inventory.PositiveQuantity(quantity, "la cantidad vendida")
	if err != nil {
		return nil, err
	}
	inv, err := Guarded(ctx, l.guard, tx, func(tx *Tx) (*entity.FinishedGoodsInventory, error) {
		inv, err := l.lock(ctx, tx, productID)
		if err != nil {
			return nil, err
		}
		if quantity.GreaterThan(inv.Stock) {
			return nil, domain.NewInsufficientStock(productID, "", "", quantity, inv.Stock)
		}
		err = l.apply(ctx, tx, inv, SetStockInput{
			ProductID: productID,
			NewStock:  inv.Stock.Sub(quantity),
			Kind:      entity.FinishedMovementSale,
			ActorID:   actorID,
			Notes:     notes,
			OrderID:   orderID,
		})
		if err != nil {
			return nil, err
		}
		return inv, nil
	})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		l.signal(ctx, inv.ProductID)
	}
	return inv, nil
}

// ReplenishWeightedAverage suma producción al stock recalculando el costo promedio
// ponderado, y fija la fecha de elaboración (y de vencimiento si hay vida útil).
func (l *FinishedGoodsLedger) ReplenishWeightedAverage(ctx context.Context, tx *Tx, in ReplenishFinishedInput) (*entity.FinishedGoodsInventory, error) {
	qty, err := inventory.PositiveQuantity(in.Quantity, "la cantidad producida")
	if err != nil {
		return nil, err
	}
	in.Quantity = qty
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "el costo unitario no puede ser negativo")
	}
	in.UnitCost = inventory.RoundCost(in.UnitCost)
	inv, err := Guarded(ctx, l.guard, tx, func(tx *Tx) (*entity.FinishedGoodsInventory, error) {
		inv, err := l.lock(ctx, tx, in.ProductID)
		if err != nil {
			return nil, err
		}
		inv.AverageCost = inventory.CostCalculator(inv.Stock, inv.AverageCost, in.Quantity, in.UnitCost)
		elaboration := in.ElaborationDate
		inv.ElaborationDate = &elaboration
		if inv.ShelfLifeDays > 0 {
			expiry := elaboration.AddDate(0, 0, inv.ShelfLifeDays)
			inv.ExpiryDate = &expiry
		}
		err = l.apply(ctx, tx, inv, SetStockInput{
			ProductID:    in.ProductID,
			NewStock:     inv.Stock.Add(in.Quantity),
			Kind:         entity.FinishedMovementProduction,
			ActorID:      in.ActorID,
			Notes:        in.Notes,
			ProductionID: in.ProductionID,
		})
		if err != nil {
			return nil, err
		}
		return inv, nil
	})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		l.signal(ctx, inv.ProductID)
	}
	return inv, nil
}

// Movements historial de un producto, más recientes primero.
func (l *FinishedGoodsLedger) Movements(ctx context.Context, productID string, limit, offset int) ([]*entity.FinishedGoodsMovement, error) {
	return l.movements.ListByProduct(ctx, productID, limit, offset)
}

// LowStock productos por debajo de su stock mínimo.
func (l *FinishedGoodsLedger) LowStock(ctx context.Context) ([]*entity.FinishedGoodsInventory, error) {
	return l.inventory.ListBelowMinimum(ctx)
}

// lock asegura la fila (upsert) y la bloquea para update.
func (l *FinishedGoodsLedger) lock(ctx context.Context, tx *Tx, productID string) (*entity.FinishedGoodsInventory, error) {
	if err := tx.FinishedGoods.EnsureRow(ctx, productID); err != nil {
		return nil, err
	}
	inv, err := tx.FinishedGoods.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// apply persiste la fila bloqueada con el nuevo stock y registra el movimiento del delta.
func (l *FinishedGoodsLedger) apply(ctx context.Context, tx *Tx, inv *entity.FinishedGoodsInventory, in SetStockInput) error {
	delta := in.NewStock.Sub(inv.Stock)
	kind, err := movementKind(in.Kind, delta)
	if err != nil {
		return err
	}
	now := l.now()
	before := inv.Stock
	inv.Stock = in.NewStock
	inv.UpdatedAt = now
	if err := tx.FinishedGoods.Update(ctx, inv); err != nil {
		return err
	}
	if delta.IsZero() {
		return nil
	}
	return tx.FinishedMovements.Create(ctx, &entity.FinishedGoodsMovement{
		ID:           uuid.New().String(),
		ProductID:    inv.ProductID,
		Kind:         kind,
		Quantity:     delta.Abs(),
		StockBefore:  before,
		StockAfter:   inv.Stock,
		ProductionID: in.ProductionID,
		OrderID:      in.OrderID,
		ActorID:      in.ActorID,
		Notes:        in.Notes,
		CreatedAt:    now,
	})
}

// movementKind infiere el tipo por el signo del delta o valida que el explícito lo respete.
func movementKind(kind entity.FinishedMovementKind, delta decimal.Decimal) (entity.FinishedMovementKind, error) {
	if kind == "" {
		if delta.LessThan(decimal.Zero) {
			return entity.FinishedMovementAdjustOut, nil
		}
		return entity.FinishedMovementAdjustIn, nil
	}
	switch {
	case !kind.Inbound() && !kind.Outbound():
		return "", domain.Invalid(domain.ErrInvalidArgument, "tipo de movimiento %q desconocido", kind)
	case delta.GreaterThan(decimal.Zero) && !kind.Inbound():
		return "", domain.Invalid(domain.ErrInvalidArgument, "el tipo %q no puede aumentar el stock", kind)
	case delta.LessThan(decimal.Zero) && !kind.Outbound():
		return "", domain.Invalid(domain.ErrInvalidArgument, "el tipo %q no puede disminuir el stock", kind)
	}
	return kind, nil
}

func (l *FinishedGoodsLedger) signal(ctx context.Context, productID string) {
	l.cache.signal(ctx, CacheKeyInventorySummary, CacheKeyFinishedGoodsLow, ProductCacheKey(productID))
}
