package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL (usable con pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const rawMaterialColumns = `id, name, code, unit, stock, min_stock, unit_cost, supplier,
	last_purchase_date, active, created_at, updated_at, deleted_at`

func scanRawMaterial(row pgx.Row) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := row.Scan(
		&m.ID, &m.Name, &m.Code, &m.Unit, &m.Stock, &m.MinStock, &m.UnitCost, &m.Supplier,
		&m.LastPurchaseDate, &m.Active, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste una materia prima.
func (r *RawMaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (` + rawMaterialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Code, m.Unit, m.Stock, m.MinStock, m.UnitCost, m.Supplier,
		m.LastPurchaseDate, m.Active, m.CreatedAt, m.UpdatedAt, m.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima (incluidas las eliminadas lógicamente).
func (r *RawMaterialRepo) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1`
	m, err := scanRawMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return m, nil
}

// GetForUpdate obtiene la materia prima y bloquea la fila (SELECT FOR UPDATE).
func (r *RawMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1 FOR UPDATE`
	m, err := scanRawMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material for update: %w", err)
	}
	return m, nil
}

// UpdateStock persiste stock, costo promedio y fecha de última compra.
func (r *RawMaterialRepo) UpdateStock(ctx context.Context, m *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials
		SET stock = $2, unit_cost = $3, last_purchase_date = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, m.ID, m.Stock, m.UnitCost, m.LastPurchaseDate, m.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, m.Name)
		}
		return fmt.Errorf("update raw material stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBelowMinimum materias primas activas con stock menor al mínimo.
func (r *RawMaterialRepo) ListBelowMinimum(ctx context.Context) ([]*entity.RawMaterial, error) {
	query := `
		SELECT ` + rawMaterialColumns + `
		FROM raw_materials
		WHERE active AND deleted_at IS NULL AND min_stock > 0 AND stock < min_stock
		ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list raw materials below minimum: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		m, err := scanRawMaterial(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SetActive activa o desactiva la materia prima.
func (r *RawMaterialRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE raw_materials SET active = $2, updated_at = $3 WHERE id = $1`, id, active, at)
	if err != nil {
		return fmt.Errorf("set raw material active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la materia prima como eliminada.
func (r *RawMaterialRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE raw_materials SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete raw material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.RawMaterialMovementRepository = (*RawMaterialMovementRepo)(nil)

// RawMaterialMovementRepo movimientos de materia prima (solo inserción).
type RawMaterialMovementRepo struct {
	q Querier
}

// NewRawMaterialMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialMovementRepository(q Querier) *RawMaterialMovementRepo {
	return &RawMaterialMovementRepo{q: q}
}

const rawMovementColumns = `id, raw_material_id, kind, quantity, unit_cost, stock_before, stock_after,
	production_id, actor_id, notes, invoice_number, created_at`

func scanRawMovement(row pgx.Row) (*entity.RawMaterialMovement, error) {
	var (
		m        entity.RawMaterialMovement
		unitCost decimal.NullDecimal
		actorID  *string
		invoice  *string
	)
	err := row.Scan(
		&m.ID, &m.RawMaterialID, &m.Kind, &m.Quantity, &unitCost, &m.StockBefore, &m.StockAfter,
		&m.ProductionID, &actorID, &m.Notes, &invoice, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.UnitCost = decimalPtr(unitCost)
	m.ActorID = derefStr(actorID)
	m.InvoiceNumber = derefStr(invoice)
	return &m, nil
}

// Create inserta un movimiento.
func (r *RawMaterialMovementRepo) Create(ctx context.Context, mov *entity.RawMaterialMovement) error {
	query := `
		INSERT INTO raw_material_movements (` + rawMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.RawMaterialID, mov.Kind, mov.Quantity, nullDecimal(mov.UnitCost), mov.StockBefore, mov.StockAfter,
		mov.ProductionID, nullIfEmpty(mov.ActorID), mov.Notes, nullIfEmpty(mov.InvoiceNumber), mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create raw material movement: %w", err)
	}
	return nil
}

// ListByMaterial historial de una materia prima, más recientes primero.
func (r *RawMaterialMovementRepo) ListByMaterial(ctx context.Context, materialID string, limit, offset int) ([]*entity.RawMaterialMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + rawMovementColumns + `
		FROM raw_material_movements
		WHERE raw_material_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, materialID, limit, offset)
}

// ListByProduction movimientos de una producción en orden de inserción.
func (r *RawMaterialMovementRepo) ListByProduction(ctx context.Context, productionID string) ([]*entity.RawMaterialMovement, error) {
	query := `
		SELECT ` + rawMovementColumns + `
		FROM raw_material_movements
		WHERE production_id = $1
		ORDER BY created_at, ctid`
	return r.list(ctx, query, productionID)
}

func (r *RawMaterialMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.RawMaterialMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list raw material movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterialMovement
	for rows.Next() {
		m, err := scanRawMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
