package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.FinishedGoodsRepository = (*FinishedGoodsRepo)(nil)

// FinishedGoodsRepo inventario de producto terminado sobre PostgreSQL.
type FinishedGoodsRepo struct {
	q Querier
}

// NewFinishedGoodsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinishedGoodsRepository(q Querier) *FinishedGoodsRepo {
	return &FinishedGoodsRepo{q: q}
}

const finishedGoodsColumns = `product_id, stock, min_stock, average_cost, elaboration_date,
	shelf_life_days, expiry_date, updated_at`

func scanFinishedGoods(row pgx.Row) (*entity.FinishedGoodsInventory, error) {
	var inv entity.FinishedGoodsInventory
	err := row.Scan(
		&inv.ProductID, &inv.Stock, &inv.MinStock, &inv.AverageCost, &inv.ElaborationDate,
		&inv.ShelfLifeDays, &inv.ExpiryDate, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// EnsureRow crea la fila con stock cero si no existe (ON CONFLICT DO NOTHING).
func (r *FinishedGoodsRepo) EnsureRow(ctx context.Context, productID string) error {
	query := `
		INSERT INTO finished_goods_inventory (product_id, stock, updated_at)
		VALUES ($1, 0, now())
		ON CONFLICT (product_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, productID); err != nil {
		return fmt.Errorf("ensure finished goods row: %w", err)
	}
	return nil
}

// Get obtiene la fila del producto.
func (r *FinishedGoodsRepo) Get(ctx context.Context, productID string) (*entity.FinishedGoodsInventory, error) {
	query := `SELECT ` + finishedGoodsColumns + ` FROM finished_goods_inventory WHERE product_id = $1`
	inv, err := scanFinishedGoods(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get finished goods: %w", err)
	}
	return inv, nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE).
func (r *FinishedGoodsRepo) GetForUpdate(ctx context.Context, productID string) (*entity.FinishedGoodsInventory, error) {
	query := `SELECT ` + finishedGoodsColumns + ` FROM finished_goods_inventory WHERE product_id = $1 FOR UPDATE`
	inv, err := scanFinishedGoods(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get finished goods for update: %w", err)
	}
	return inv, nil
}

// Update persiste stock, costo promedio y fechas.
func (r *FinishedGoodsRepo) Update(ctx context.Context, inv *entity.FinishedGoodsInventory) error {
	query := `
		UPDATE finished_goods_inventory
		SET stock = $2, min_stock = $3, average_cost = $4, elaboration_date = $5,
		    shelf_life_days = $6, expiry_date = $7, updated_at = $8
		WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ProductID, inv.Stock, inv.MinStock, inv.AverageCost, inv.ElaborationDate,
		inv.ShelfLifeDays, inv.ExpiryDate, inv.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, inv.ProductID)
		}
		return fmt.Errorf("update finished goods: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBelowMinimum productos con stock menor al mínimo.
func (r *FinishedGoodsRepo) ListBelowMinimum(ctx context.Context) ([]*entity.FinishedGoodsInventory, error) {
	query := `
		SELECT ` + finishedGoodsColumns + `
		FROM finished_goods_inventory
		WHERE min_stock > 0 AND stock < min_stock
		ORDER BY product_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list finished goods below minimum: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinishedGoodsInventory
	for rows.Next() {
		inv, err := scanFinishedGoods(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

var _ repository.FinishedGoodsMovementRepository = (*FinishedGoodsMovementRepo)(nil)

// FinishedGoodsMovementRepo movimientos de producto terminado (solo inserción).
type FinishedGoodsMovementRepo struct {
	q Querier
}

// NewFinishedGoodsMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinishedGoodsMovementRepository(q Querier) *FinishedGoodsMovementRepo {
	return &FinishedGoodsMovementRepo{q: q}
}

const finishedMovementColumns = `id, product_id, kind, quantity, stock_before, stock_after,
	production_id, order_id, actor_id, notes, created_at`

// Create inserta un movimiento.
func (r *FinishedGoodsMovementRepo) Create(ctx context.Context, mov *entity.FinishedGoodsMovement) error {
	query := `
		INSERT INTO finished_goods_movements (` + finishedMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.ProductID, mov.Kind, mov.Quantity, mov.StockBefore, mov.StockAfter,
		mov.ProductionID, mov.OrderID, nullIfEmpty(mov.ActorID), mov.Notes, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create finished goods movement: %w", err)
	}
	return nil
}

// ListByProduct historial de un producto, más recientes primero.
func (r *FinishedGoodsMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.FinishedGoodsMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + finishedMovementColumns + `
		FROM finished_goods_movements
		WHERE product_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, productID, limit, offset)
}

// ListByProduction movimientos de una producción.
func (r *FinishedGoodsMovementRepo) ListByProduction(ctx context.Context, productionID string) ([]*entity.FinishedGoodsMovement, error) {
	query := `
		SELECT ` + finishedMovementColumns + `
		FROM finished_goods_movements
		WHERE production_id = $1
		ORDER BY created_at, ctid`
	return r.list(ctx, query, productionID)
}

func (r *FinishedGoodsMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.FinishedGoodsMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list finished goods movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinishedGoodsMovement
	for rows.Next() {
		var (
			m       entity.FinishedGoodsMovement
			actorID *string
		)
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.StockBefore, &m.StockAfter,
			&m.ProductionID, &m.OrderID, &actorID, &m.Notes, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		m.ActorID = derefStr(actorID)
		list = append(list, &m)
	}
	return list, rows.Err()
}
