package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

// ProductionConfig parámetros del procesamiento de producción.
type ProductionConfig struct {
	PrimaryKeyword    string          // nombre de la materia prima principal (harina)
	VarianceTolerance decimal.Decimal // tolerancia de la variación de harina
}

// ProductionProcessor orquesta una orden de producción: agrega requerimientos, verifica stock,
// descuenta materias primas, calcula costo y variación de harina, y repone producto terminado.
type ProductionProcessor struct {
	guard       *TxGuard
	productions repository.ProductionRepository
	raw         *RawMaterialLedger
	finished    *FinishedGoodsLedger
	converter   *inventory.UnitConverter
	primary     inventory.PrimaryMatcher
	tolerance   decimal.Decimal
	cache       cacheSignal
	log         *logger.Logger
	now         func() time.Time
}

// NewProductionProcessor construye el procesador.
func NewProductionProcessor(
	guard *TxGuard,
	productions repository.ProductionRepository,
	raw *RawMaterialLedger,
	finished *FinishedGoodsLedger,
	converter *inventory.UnitConverter,
	cache CacheInvalidator,
	log *logger.Logger,
	cfg ProductionConfig,
) *ProductionProcessor {
	if log == nil {
		log = logger.Nop()
	}
	if converter == nil {
		converter = inventory.NewUnitConverter()
	}
	tolerance := cfg.VarianceTolerance
	if !tolerance.GreaterThan(decimal.Zero) {
		tolerance = inventory.DefaultVarianceTolerance
	}
	log = log.Component("production")
	return &ProductionProcessor{
		guard:       guard,
		productions: productions,
		raw:         raw,
		finished:    finished,
		converter:   converter,
		primary:     inventory.NewPrimaryMatcher(cfg.PrimaryKeyword),
		tolerance:   tolerance,
		cache:       cacheSignal{cache: cache, log: log},
		log:         log,
		now:         time.Now,
	}
}

// RegisterInput datos para abrir una orden de producción en estado en_proceso.
// RecipeID vacío toma la receta activa del producto.
type RegisterInput struct {
	ProductID      string
	RecipeID       string
	OperatorID     string
	BakerID        *string
	ProductionDate time.Time
	Quantity       decimal.Decimal
	Unit           entity.Unit
	ActualFlour    *decimal.Decimal
	Notes          string
}

// ProcessInput datos de Process. ActualFlour, si viene, reemplaza al declarado al registrar.
type ProcessInput struct {
	Extras      []entity.ExtraIngredient
	ActualFlour *decimal.Decimal
	ActorID     string
}

// requirement una línea de consumo: un ingrediente de la receta o un extra.
type requirement struct {
	materialID string
	quantity   decimal.Decimal // en unidad nativa de la materia prima
	extra      bool
	primary    bool
}

// Register abre una orden en en_proceso tomando una referencia fija a la receta.
func (p *ProductionProcessor) Register(ctx context.Context, in RegisterInput) (*entity.ProductionRun, error) {
	if in.ProductID == "" {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "producto requerido")
	}
	qty, err := inventory.PositiveQuantity(in.Quantity, "la cantidad a producir")
	if err != nil {
		return nil, err
	}
	in.Quantity = qty
	if in.Unit == "" {
		in.Unit = entity.UnitPiece
	}
	if !in.Unit.Valid() {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "unidad %q no soportada", in.Unit)
	}
	if in.ActualFlour != nil {
		flour, err := inventory.PositiveQuantity(*in.ActualFlour, "la harina real usada")
		if err != nil {
			return nil, err
		}
		in.ActualFlour = &flour
	}
	now := p.now()
	if in.ProductionDate.IsZero() {
		in.ProductionDate = now
	}
	return Guarded(ctx, p.guard, nil, func(tx *Tx) (*entity.ProductionRun, error) {
		product, err := tx.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		recipe, err := p.resolveRecipe(ctx, tx, in.ProductID, in.RecipeID)
		if err != nil {
			return nil, err
		}
		run := &entity.ProductionRun{
			ID:             uuid.New().String(),
			ProductID:      in.ProductID,
			RecipeID:       recipe.ID,
			OperatorID:     in.OperatorID,
			BakerID:        in.BakerID,
			ProductionDate: in.ProductionDate,
			StartTime:      &now,
			Quantity:       in.Quantity,
			Unit:           in.Unit,
			ActualFlour:    in.ActualFlour,
			Status:         entity.ProductionInProgress,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.Productions.Create(ctx, run); err != nil {
			return nil, err
		}
		return run, nil
	})
}

func (p *ProductionProcessor) resolveRecipe(ctx context.Context, tx *Tx, productID, recipeID string) (*entity.Recipe, error) {
	var (
		r   *entity.Recipe
		err error
	)
	if recipeID == "" {
		r, err = tx.Recipes.GetActiveByProduct(ctx, productID)
	} else {
		r, err = tx.Recipes.GetByID(ctx, recipeID)
	}
	if err != nil {
		return nil, err
	}
	if r == nil || r.DeletedAt != nil {
		return nil, domain.Invalid(domain.ErrInvalidRecipe, "el producto %s no tiene receta activa", productID)
	}
	if !r.Active {
		return nil, domain.Invalid(domain.ErrInvalidRecipe, "la receta %q está inactiva", r.Name)
	}
	if r.ProductID != productID {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "la receta %q no corresponde al producto", r.Name)
	}
	return r, nil
}

// Process completa una orden en_proceso. Todo el trabajo corre en una sola transacción:
// ante cualquier error los libros quedan como estaban.
func (p *ProductionProcessor) Process(ctx context.Context, runID string, in ProcessInput) (*entity.ProductionRun, error) {
	extras := make([]entity.ExtraIngredient, len(in.Extras))
	for i, ex := range in.Extras {
		qty := inventory.RoundQuantity(ex.Quantity)
		if ex.RawMaterialID == "" || !qty.GreaterThan(decimal.Zero) {
			return nil, domain.Invalid(domain.ErrInvalidArgument, "ingrediente extra %d: materia prima y cantidad > 0 son obligatorias", i+1)
		}
		ex.Quantity = qty
		extras[i] = ex
	}
	in.Extras = extras
	if in.ActualFlour != nil {
		flour, err := inventory.PositiveQuantity(*in.ActualFlour, "la harina real usada")
		if err != nil {
			return nil, err
		}
		in.ActualFlour = &flour
	}
	run, err := Guarded(ctx, p.guard, nil, func(tx *Tx) (*entity.ProductionRun, error) {
		return p.process(ctx, tx, runID, in)
	})
	if err != nil {
		return nil, err
	}
	p.cache.signal(ctx,
		CacheKeyInventorySummary,
		CacheKeyRawMaterialsLow,
		CacheKeyFinishedGoodsLow,
		ProductCacheKey(run.ProductID),
	)
	p.log.Info().
		Str("production_id", run.ID).
		Str("product_id", run.ProductID).
		Str("quantity", run.Quantity.String()).
		Str("total_cost", run.TotalCost.String()).
		Msg("producción completada")
	return run, nil
}

func (p *ProductionProcessor) process(ctx context.Context, tx *Tx, runID string, in ProcessInput) (*entity.ProductionRun, error) {
	run, err := tx.Productions.GetForUpdate(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrNotFound
	}
	if run.Status != entity.ProductionInProgress {
		return nil, domain.Invalid(domain.ErrInvalidState, "la producción está en estado %s", run.Status)
	}
	recipe, err := tx.Recipes.GetByID(ctx, run.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil || recipe.DeletedAt != nil {
		return nil, domain.Invalid(domain.ErrInvalidRecipe, "la receta %s de la producción no existe", run.RecipeID)
	}
	if !recipe.YieldQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.Invalid(domain.ErrInvalidRecipe, "el rendimiento de %q debe ser mayor a cero", recipe.Name)
	}
	if !run.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.Invalid(domain.ErrInvalidArgument, "la cantidad producida debe ser mayor a cero")
	}
	actualFlour := run.ActualFlour
	if in.ActualFlour != nil {
		actualFlour = in.ActualFlour
	}

	materials, err := p.lockMaterials(ctx, tx, recipe, in.Extras)
	if err != nil {
		return nil, err
	}

	// Líneas de requerimiento: receta en orden declarado, luego extras en el orden del llamador
	factor := recipe.Factor(run.Quantity)
	lines := make([]requirement, 0, len(recipe.Ingredients)+len(in.Extras))
	var variance *inventory.FlourVariance
	primaryFound := false
	for _, ing := range recipe.Ingredients {
		m := materials[ing.RawMaterialID]
		if m == nil {
			return nil, domain.Invalid(domain.ErrInvalidRecipe, "el ingrediente %s referencia una materia prima eliminada", ing.RawMaterialID)
		}
		qty, err := p.converter.Convert(ing.Quantity.Mul(factor), ing.Unit, m.Unit)
		if err != nil {
			return nil, err
		}
		line := requirement{materialID: m.ID, quantity: inventory.RoundQuantity(qty)}
		if !primaryFound && p.primary.Matches(m.Name) {
			primaryFound = true
			line.primary = true
			if actualFlour != nil {
				v := inventory.ClassifyVariance(line.quantity, *actualFlour, p.tolerance)
				variance = &v
				line.quantity = *actualFlour
			}
		}
		lines = append(lines, line)
	}
	for _, ex := range in.Extras {
		lines = append(lines, requirement{materialID: ex.RawMaterialID, quantity: ex.Quantity, extra: true})
	}
	if actualFlour != nil && !primaryFound {
		p.log.Warn().Str("production_id", run.ID).Msg("harina real declarada pero la receta no tiene harina")
	}

	// Verificación agregada por materia prima antes de cualquier descuento
	if shortages := aggregateShortages(lines, materials); len(shortages) > 0 {
		return nil, &domain.InsufficientStockError{Shortages: shortages}
	}

	productionID := run.ID
	total := decimal.Zero
	for _, line := range lines {
		notes := fmt.Sprintf("Producción %s", run.ID)
		if line.extra {
			notes = fmt.Sprintf("Producción %s: ingrediente extra", run.ID)
		}
		m, err := p.raw.Consume(ctx, tx, ConsumeInput{
			MaterialID:   line.materialID,
			Quantity:     line.quantity,
			Kind:         entity.RawMovementProduction,
			ActorID:      in.ActorID,
			Notes:        notes,
			ProductionID: &productionID,
		})
		if err != nil {
			return nil, err
		}
		total = total.Add(line.quantity.Mul(m.UnitCost))
	}

	run.TotalCost = inventory.RoundCost(total)
	run.UnitCost = inventory.RoundCost(total.Div(run.Quantity))

	_, err = p.finished.ReplenishWeightedAverage(ctx, tx, ReplenishFinishedInput{
		ProductID:       run.ProductID,
		Quantity:        run.Quantity,
		UnitCost:        run.UnitCost,
		ElaborationDate: run.ProductionDate,
		ActorID:         in.ActorID,
		Notes:           fmt.Sprintf("Entrada de producción %s", run.ID),
		ProductionID:    &productionID,
	})
	if err != nil {
		return nil, err
	}

	now := p.now()
	run.ActualFlour = actualFlour
	if variance != nil {
		run.TheoreticalFlour = &variance.Theoretical
		run.FlourVariance = &variance.Variance
		run.VarianceClass = &variance.Class
	}
	run.Status = entity.ProductionCompleted
	run.EndTime = &now
	run.UpdatedAt = now
	if err := tx.Productions.Update(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// lockMaterials bloquea, en orden de ID, cada materia prima involucrada. Las no encontradas
// o eliminadas quedan fuera del mapa.
func (p *ProductionProcessor) lockMaterials(ctx context.Context, tx *Tx, recipe *entity.Recipe, extras []entity.ExtraIngredient) (map[string]*entity.RawMaterial, error) {
	ids := make([]string, 0, len(recipe.Ingredients)+len(extras))
	seen := make(map[string]bool)
	for _, ing := range recipe.Ingredients {
		if !seen[ing.RawMaterialID] {
			seen[ing.RawMaterialID] = true
			ids = append(ids, ing.RawMaterialID)
		}
	}
	for _, ex := range extras {
		if !seen[ex.RawMaterialID] {
			seen[ex.RawMaterialID] = true
			ids = append(ids, ex.RawMaterialID)
		}
	}
	// Orden fijo de bloqueo para no cruzarse con otra producción concurrente
	sort.Strings(ids)
	out := make(map[string]*entity.RawMaterial, len(ids))
	for _, id := range ids {
		m, err := tx.RawMaterials.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if m != nil && !m.Deleted() {
			out[id] = m
		}
	}
	return out, nil
}

// aggregateShortages suma los requerimientos por materia prima y devuelve los faltantes,
// en el orden de primera aparición. Un extra con materia prima inexistente es un faltante.
func aggregateShortages(lines []requirement, materials map[string]*entity.RawMaterial) []domain.Shortage {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := totals[l.materialID]; !ok {
			order = append(order, l.materialID)
			totals[l.materialID] = decimal.Zero
		}
		totals[l.materialID] = totals[l.materialID].Add(l.quantity)
	}
	var shortages []domain.Shortage
	for _, id := range order {
		required := totals[id]
		m := materials[id]
		if m == nil {
			shortages = append(shortages, domain.Shortage{
				MaterialID: id,
				Required:   required,
				Available:  decimal.Zero,
				Shortfall:  required,
			})
			continue
		}
		if required.GreaterThan(m.Stock) {
			shortages = append(shortages, domain.Shortage{
				MaterialID:   id,
				MaterialName: m.Name,
				Required:     required,
				Available:    m.Stock,
				Shortfall:    required.Sub(m.Stock),
				Unit:         string(m.Unit),
			})
		}
	}
	return shortages
}

// Cancel pasa una orden en_proceso a cancelado. No revierte movimientos: una orden en_proceso
// todavía no afectó los libros, y una completada no puede cancelarse.
func (p *ProductionProcessor) Cancel(ctx context.Context, runID, actorID, reason string) (*entity.ProductionRun, error) {
	run, err := Guarded(ctx, p.guard, nil, func(tx *Tx) (*entity.ProductionRun, error) {
		run, err := tx.Productions.GetForUpdate(ctx, runID)
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, domain.ErrNotFound
		}
		if run.Status != entity.ProductionInProgress {
			return nil, domain.Invalid(domain.ErrInvalidState, "solo se cancela una producción en_proceso (estado actual %s)", run.Status)
		}
		now := p.now()
		note := "Cancelada"
		if actorID != "" {
			note += " por " + actorID
		}
		if r := strings.TrimSpace(reason); r != "" {
			note += ": " + r
		}
		if run.Notes != "" {
			note = run.Notes + "\n" + note
		}
		run.Notes = note
		run.Status = entity.ProductionCancelled
		run.EndTime = &now
		run.UpdatedAt = now
		if err := tx.Productions.Update(ctx, run); err != nil {
			return nil, err
		}
		return run, nil
	})
	if err != nil {
		return nil, err
	}
	p.log.Info().Str("production_id", run.ID).Str("actor_id", actorID).Msg("producción cancelada")
	return run, nil
}

// Get devuelve una orden de producción.
func (p *ProductionProcessor) Get(ctx context.Context, runID string) (*entity.ProductionRun, error) {
	run, err := p.productions.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrNotFound
	}
	return run, nil
}

// RunMovements movimientos que generó una producción en ambos libros.
type RunMovements struct {
	Raw      []*entity.RawMaterialMovement
	Finished []*entity.FinishedGoodsMovement
}

// Movements devuelve los movimientos asociados a la producción.
func (p *ProductionProcessor) Movements(ctx context.Context, runID string) (*RunMovements, error) {
	if _, err := p.Get(ctx, runID); err != nil {
		return nil, err
	}
	raw, err := p.raw.movements.ListByProduction(ctx, runID)
	if err != nil {
		return nil, err
	}
	finished, err := p.finished.movements.ListByProduction(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &RunMovements{Raw: raw, Finished: finished}, nil
}
