package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
	"github.com/jhoicas/Panaderia-api/internal/infrastructure/memory"
)

const testActor = "user-panadero"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, got.Equal(d(want)), "esperado %s, obtenido %s %v", want, got, msgAndArgs)
}

// fixture motor completo sobre el store en memoria.
type fixture struct {
	ctx    context.Context
	store  *memory.Store
	engine *inventory.Engine
	cache  *recordingInvalidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return newFixtureWithRunner(t, store, store)
}

func newFixtureWithRunner(t *testing.T, store *memory.Store, runner inventory.TxRunner) *fixture {
	t.Helper()
	cache := &recordingInvalidator{}
	return &fixture{
		ctx:    context.Background(),
		store:  store,
		cache:  cache,
		engine: inventory.NewEngine(runner, store.Tx(), cache, nil, inventory.ProductionConfig{}),
	}
}

func (f *fixture) addProduct(t *testing.T, name string) string {
	t.Helper()
	id := uuid.New().String()
	f.store.AddProduct(entity.Product{ID: id, SKU: "SKU-" + id[:8], Name: name, Unit: entity.UnitPiece, Active: true})
	return id
}

func (f *fixture) addMaterial(t *testing.T, name string, unit entity.Unit, stock, unitCost string) string {
	t.Helper()
	now := time.Now()
	m := entity.RawMaterial{
		ID:        uuid.New().String(),
		Name:      name,
		Unit:      unit,
		Stock:     d(stock),
		UnitCost:  d(unitCost),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.store.Tx().RawMaterials.Create(f.ctx, &m))
	return m.ID
}

func (f *fixture) material(t *testing.T, id string) *entity.RawMaterial {
	t.Helper()
	m, err := f.store.Tx().RawMaterials.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

func (f *fixture) addRecipe(t *testing.T, productID, yield string, ings ...inventory.IngredientInput) *entity.Recipe {
	t.Helper()
	r, err := f.engine.Recipes.Create(f.ctx, inventory.CreateRecipeInput{
		ProductID:     productID,
		Name:          "Receta de prueba",
		YieldQuantity: d(yield),
		YieldUnit:     entity.UnitPiece,
		Ingredients:   ings,
	})
	require.NoError(t, err)
	return r
}

func ing(materialID, qty string, unit entity.Unit) inventory.IngredientInput {
	return inventory.IngredientInput{RawMaterialID: materialID, Quantity: d(qty), Unit: unit}
}

func (f *fixture) register(t *testing.T, productID, qty string) *entity.ProductionRun {
	t.Helper()
	run, err := f.engine.Production.Register(f.ctx, inventory.RegisterInput{
		ProductID:  productID,
		OperatorID: testActor,
		Quantity:   d(qty),
	})
	require.NoError(t, err)
	return run
}

// assertReconciled verifica que cada movimiento cuadre y que el saldo final sea
// el inicial más la suma con signo de los movimientos.
func (f *fixture) assertReconciled(t *testing.T, materialID, initial string) {
	t.Helper()
	movs, err := f.engine.RawMaterials.Movements(f.ctx, materialID, 0, 0)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, mov := range movs {
		assert.True(t, mov.Quantity.GreaterThan(decimal.Zero))
		assert.Truef(t, mov.StockBefore.Add(mov.SignedQuantity()).Equal(mov.StockAfter),
			"movimiento %s: %s %s -> %s", mov.Kind, mov.StockBefore, mov.Quantity, mov.StockAfter)
		sum = sum.Add(mov.SignedQuantity())
	}
	m := f.material(t, materialID)
	assertDec(t, d(initial).Add(sum).String(), m.Stock, "saldo conciliado")
	assert.False(t, m.Stock.IsNegative())
}

// recordingInvalidator guarda las claves invalidadas.
type recordingInvalidator struct {
	mu   sync.Mutex
	keys []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, keys...)
	return nil
}

func (r *recordingInvalidator) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

var errBoom = errors.New("fallo de escritura simulado")

// failingFinishedRunner abre transacciones reales del store pero hace fallar el
// registro de movimientos de producto terminado.
type failingFinishedRunner struct {
	store *memory.Store
}

func (r failingFinishedRunner) Run(ctx context.Context, fn func(tx *inventory.Tx) error) error {
	return r.store.Run(ctx, func(tx *inventory.Tx) error {
		tx.FinishedMovements = failingFinishedMovements{tx.FinishedMovements}
		return fn(tx)
	})
}

type failingFinishedMovements struct {
	repository.FinishedGoodsMovementRepository
}

func (failingFinishedMovements) Create(context.Context, *entity.FinishedGoodsMovement) error {
	return errBoom
}

func (f *fixture) addInactiveMaterial(t *testing.T, name string) string {
	t.Helper()
	now := time.Now()
	m := entity.RawMaterial{
		ID: uuid.New().String(), Name: name, Unit: entity.UnitKilogram,
		Active: false, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.store.Tx().RawMaterials.Create(f.ctx, &m))
	return m.ID
}

func (f *fixture) addMaterialWithMin(t *testing.T, name, stock, minStock, unitCost string) string {
	t.Helper()
	now := time.Now()
	m := entity.RawMaterial{
		ID: uuid.New().String(), Name: name, Unit: entity.UnitKilogram,
		Stock: d(stock), MinStock: d(minStock), UnitCost: d(unitCost),
		Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.store.Tx().RawMaterials.Create(f.ctx, &m))
	return m.ID
}

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 6, 0, 0, 0, time.UTC)
}
