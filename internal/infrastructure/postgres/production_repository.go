package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo órdenes de producción sobre PostgreSQL.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

const productionColumns = `id, product_id, recipe_id, operator_id, baker_id, production_date, start_time, end_time,
	quantity, unit, actual_flour, theoretical_flour, flour_variance, variance_class,
	total_cost, unit_cost, status, notes, created_at, updated_at`

func scanProduction(row pgx.Row) (*entity.ProductionRun, error) {
	var (
		p                                entity.ProductionRun
		operator, class                  *string
		actual, theoretical, varianceQty decimal.NullDecimal
	)
	err := row.Scan(
		&p.ID, &p.ProductID, &p.RecipeID, &operator, &p.BakerID, &p.ProductionDate, &p.StartTime, &p.EndTime,
		&p.Quantity, &p.Unit, &actual, &theoretical, &varianceQty, &class,
		&p.TotalCost, &p.UnitCost, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.OperatorID = derefStr(operator)
	p.ActualFlour = decimalPtr(actual)
	p.TheoreticalFlour = decimalPtr(theoretical)
	p.FlourVariance = decimalPtr(varianceQty)
	if class != nil {
		vc := entity.VarianceClass(*class)
		p.VarianceClass = &vc
	}
	return &p, nil
}

func varianceClassArg(vc *entity.VarianceClass) *string {
	if vc == nil {
		return nil
	}
	s := string(*vc)
	return &s
}

// Create inserta la orden.
func (r *ProductionRepo) Create(ctx context.Context, p *entity.ProductionRun) error {
	query := `
		INSERT INTO production_runs (` + productionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ProductID, p.RecipeID, nullIfEmpty(p.OperatorID), p.BakerID, p.ProductionDate, p.StartTime, p.EndTime,
		p.Quantity, p.Unit, nullDecimal(p.ActualFlour), nullDecimal(p.TheoreticalFlour), nullDecimal(p.FlourVariance),
		varianceClassArg(p.VarianceClass), p.TotalCost, p.UnitCost, p.Status, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production run: %w", err)
	}
	return nil
}

// GetByID obtiene la orden.
func (r *ProductionRepo) GetByID(ctx context.Context, id string) (*entity.ProductionRun, error) {
	query := `SELECT ` + productionColumns + ` FROM production_runs WHERE id = $1`
	p, err := scanProduction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production run: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene la orden y bloquea la fila: dos Process concurrentes sobre la misma orden se serializan.
func (r *ProductionRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionRun, error) {
	query := `SELECT ` + productionColumns + ` FROM production_runs WHERE id = $1 FOR UPDATE`
	p, err := scanProduction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production run for update: %w", err)
	}
	return p, nil
}

// Update persiste estado, costos, variación y notas.
func (r *ProductionRepo) Update(ctx context.Context, p *entity.ProductionRun) error {
	query := `
		UPDATE production_runs
		SET end_time = $2, actual_flour = $3, theoretical_flour = $4, flour_variance = $5, variance_class = $6,
		    total_cost = $7, unit_cost = $8, status = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.EndTime, nullDecimal(p.ActualFlour), nullDecimal(p.TheoreticalFlour), nullDecimal(p.FlourVariance),
		varianceClassArg(p.VarianceClass), p.TotalCost, p.UnitCost, p.Status, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByRecipe cantidad de órdenes que referencian la receta.
func (r *ProductionRepo) CountByRecipe(ctx context.Context, recipeID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM production_runs WHERE recipe_id = $1`, recipeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count production runs: %w", err)
	}
	return n, nil
}
