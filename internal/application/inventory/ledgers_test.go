package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// RawMaterialLedger
// ──────────────────────────────────────────────────────────────────────────────

func TestRawLedger_CompraRecalculaPromedio(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "10", "2.00")

	m, err := f.engine.RawMaterials.Replenish(f.ctx, nil, inventory.ReplenishInput{
		MaterialID:    flour,
		Quantity:      d("10"),
		UnitCost:      dp("4.00"),
		ActorID:       testActor,
		InvoiceNumber: "FV-001",
	})
	require.NoError(t, err)
	assertDec(t, "20", m.Stock)
	assertDec(t, "3.00", m.UnitCost)
	require.NotNil(t, m.LastPurchaseDate)

	movs, err := f.engine.RawMaterials.Movements(f.ctx, flour, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.RawMovementPurchase, movs[0].Kind)
	assert.Equal(t, "FV-001", movs[0].InvoiceNumber)
	require.NotNil(t, movs[0].UnitCost)
	assertDec(t, "4.00", *movs[0].UnitCost)
	assert.Contains(t, f.cache.Keys(), inventory.RawMaterialCacheKey(flour))
}

func TestRawLedger_CompraConStockCeroTomaCosto(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "0", "9.99")

	m, err := f.engine.RawMaterials.Replenish(f.ctx, nil, inventory.ReplenishInput{
		MaterialID: flour, Quantity: d("25"), UnitCost: dp("1.80"), ActorID: testActor,
	})
	require.NoError(t, err)
	assertDec(t, "1.80", m.UnitCost)
}

func TestRawLedger_DevolucionNoCambiaCosto(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "10", "2.00")

	m, err := f.engine.RawMaterials.Replenish(f.ctx, nil, inventory.ReplenishInput{
		MaterialID: flour, Quantity: d("2"), UnitCost: dp("50"), Kind: entity.RawMovementReturn, ActorID: testActor,
	})
	require.NoError(t, err)
	assertDec(t, "12", m.Stock)
	assertDec(t, "2.00", m.UnitCost)
	assert.Nil(t, m.LastPurchaseDate)
}

func TestRawLedger_NoNegatividad(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "5", "2.00")

	_, err := f.engine.RawMaterials.Consume(f.ctx, nil, inventory.ConsumeInput{
		MaterialID: flour, Quantity: d("5.001"), Kind: entity.RawMovementWaste, ActorID: testActor,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assertDec(t, "0.001", stockErr.Shortages[0].Shortfall)
	assertDec(t, "5", f.material(t, flour).Stock)

	m, err := f.engine.RawMaterials.Consume(f.ctx, nil, inventory.ConsumeInput{
		MaterialID: flour, Quantity: d("5"), Kind: entity.RawMovementWaste, ActorID: testActor,
	})
	require.NoError(t, err)
	assertDec(t, "0", m.Stock)
	f.assertReconciled(t, flour, "5")
}

func TestRawLedger_ValidaTipoYCantidad(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "5", "2.00")

	cases := []struct {
		name string
		run  func() error
	}{
		{"consumo con tipo de entrada", func() error {
			_, err := f.engine.RawMaterials.Consume(f.ctx, nil, inventory.ConsumeInput{MaterialID: flour, Quantity: d("1"), Kind: entity.RawMovementPurchase})
			return err
		}},
		{"entrada con tipo de salida", func() error {
			_, err := f.engine.RawMaterials.Replenish(f.ctx, nil, inventory.ReplenishInput{MaterialID: flour, Quantity: d("1"), Kind: entity.RawMovementWaste})
			return err
		}},
		{"consumo cero", func() error {
			_, err := f.engine.RawMaterials.Consume(f.ctx, nil, inventory.ConsumeInput{MaterialID: flour, Quantity: d("0")})
			return err
		}},
		{"entrada negativa", func() error {
			_, err := f.engine.RawMaterials.Replenish(f.ctx, nil, inventory.ReplenishInput{MaterialID: flour, Quantity: d("-2")})
			return err
		}},
		{"costo negativo", func() error {
			_, err := f.engine.RawMaterials.Replenish(f.ctx, nil, inventory.ReplenishInput{MaterialID: flour, Quantity: d("1"), UnitCost: dp("-1")})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), domain.ErrInvalidArgument)
		})
	}
	assertDec(t, "5", f.material(t, flour).Stock)

	_, err := f.engine.RawMaterials.Consume(f.ctx, nil, inventory.ConsumeInput{MaterialID: "no-existe", Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRawLedger_CantidadSeLlevaATresDecimales(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "10", "2.00")

	m, err := f.engine.RawMaterials.Consume(f.ctx, nil, inventory.ConsumeInput{
		MaterialID: flour, Quantity: d("1.2345"), Kind: entity.RawMovementWaste, ActorID: testActor,
	})
	require.NoError(t, err)
	assertDec(t, "8.765", m.Stock)

	m, err = f.engine.RawMaterials.Replenish(f.ctx, nil, inventory.ReplenishInput{
		MaterialID: flour, Quantity: d("0.0006"), UnitCost: dp("3.456"), ActorID: testActor,
	})
	require.NoError(t, err)
	assertDec(t, "8.766", m.Stock)

	movs, err := f.engine.RawMaterials.Movements(f.ctx, flour, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assertDec(t, "0.001", movs[0].Quantity)
	require.NotNil(t, movs[0].UnitCost)
	assertDec(t, "3.46", *movs[0].UnitCost)
	assertDec(t, "1.235", movs[1].Quantity)
	assertDec(t, "10", movs[1].StockBefore)
	assertDec(t, "8.765", movs[1].StockAfter)
	for _, mov := range movs {
		for _, v := range []string{mov.Quantity.String(), mov.StockBefore.String(), mov.StockAfter.String()} {
			assert.True(t, d(v).Equal(d(v).Round(3)), "%s excede tres decimales", v)
		}
	}
	f.assertReconciled(t, flour, "10")
}

func TestRawLedger_CantidadQueRedondeaACeroSeRechaza(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "10", "2.00")

	_, err := f.engine.RawMaterials.Consume(f.ctx, nil, inventory.ConsumeInput{MaterialID: flour, Quantity: d("0.0004")})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = f.engine.RawMaterials.Replenish(f.ctx, nil, inventory.ReplenishInput{MaterialID: flour, Quantity: d("0.0004")})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assertDec(t, "10", f.material(t, flour).Stock)
	movs, err := f.engine.RawMaterials.Movements(f.ctx, flour, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRawLedger_HasStock(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "5", "2.00")

	ok, err := f.engine.RawMaterials.HasStock(f.ctx, flour, d("5"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.engine.RawMaterials.HasStock(f.ctx, flour, d("5.1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRawLedger_EliminarSoloInactivaSinRecetas(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Pan")
	active := f.addMaterial(t, "Harina", entity.UnitKilogram, "5", "2.00")
	assert.ErrorIs(t, f.engine.RawMaterials.Delete(f.ctx, active), domain.ErrInvalidState, "sigue activa")

	inUse := f.addInactiveMaterial(t, "Anís")
	f.addRecipe(t, productID, "10", ing(inUse, "10", entity.UnitGram))
	assert.ErrorIs(t, f.engine.RawMaterials.Delete(f.ctx, inUse), domain.ErrInvalidState, "usada en receta activa")

	unused := f.addInactiveMaterial(t, "Colorante")
	require.NoError(t, f.engine.RawMaterials.Delete(f.ctx, unused))
	_, err := f.engine.RawMaterials.Consume(f.ctx, nil, inventory.ConsumeInput{MaterialID: unused, Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.engine.RawMaterials.Delete(f.ctx, unused), domain.ErrNotFound)
}

func TestRawLedger_DesactivarYEliminar(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterialWithMin(t, "Harina", "2", "10", "1.00")

	m, err := f.engine.RawMaterials.Deactivate(f.ctx, flour)
	require.NoError(t, err)
	assert.False(t, m.Active)
	assertDec(t, "2", m.Stock)
	assert.False(t, f.material(t, flour).Active)
	assert.Contains(t, f.cache.Keys(), inventory.RawMaterialCacheKey(flour))

	low, err := f.engine.RawMaterials.LowStock(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, low, "una inactiva no aparece en stock bajo")

	_, err = f.engine.RawMaterials.Deactivate(f.ctx, flour)
	require.NoError(t, err, "desactivar dos veces no falla")

	require.NoError(t, f.engine.RawMaterials.Delete(f.ctx, flour))
	_, err = f.engine.RawMaterials.Deactivate(f.ctx, flour)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.engine.RawMaterials.Deactivate(f.ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRawLedger_BajoMinimo(t *testing.T) {
	f := newFixture(t)
	low := f.addMaterialWithMin(t, "Harina", "2", "10", "1.00")
	f.addMaterialWithMin(t, "Sal", "5", "1", "0.50")

	list, err := f.engine.RawMaterials.LowStock(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, low, list[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// FinishedGoodsLedger: stock absoluto 10 -> 7 -> 9.
// ──────────────────────────────────────────────────────────────────────────────

func TestFinishedLedger_StockAbsoluto(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Baguette")

	set := func(stock string) *entity.FinishedGoodsInventory {
		inv, err := f.engine.FinishedGoods.SetAbsoluteStock(f.ctx, nil, inventory.SetStockInput{
			ProductID: productID, NewStock: d(stock), ActorID: testActor,
		})
		require.NoError(t, err)
		return inv
	}
	set("10")
	assertDec(t, "7", set("7").Stock)
	assertDec(t, "9", set("9").Stock)

	movs, err := f.engine.FinishedGoods.Movements(f.ctx, productID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	// más recientes primero
	assert.Equal(t, entity.FinishedMovementAdjustIn, movs[0].Kind)
	assertDec(t, "2", movs[0].Quantity)
	assertDec(t, "7", movs[0].StockBefore)
	assertDec(t, "9", movs[0].StockAfter)
	assert.Equal(t, entity.FinishedMovementAdjustOut, movs[1].Kind)
	assertDec(t, "3", movs[1].Quantity)
	assertDec(t, "10", movs[1].StockBefore)
	assertDec(t, "7", movs[1].StockAfter)
	for _, mov := range movs {
		assert.True(t, mov.StockBefore.Add(mov.SignedQuantity()).Equal(mov.StockAfter))
	}
}

func TestFinishedLedger_SinCambioNoRegistraMovimiento(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Baguette")
	f.store.PutFinishedGoods(entity.FinishedGoodsInventory{ProductID: productID, Stock: d("4")})

	inv, err := f.engine.FinishedGoods.SetAbsoluteStock(f.ctx, nil, inventory.SetStockInput{ProductID: productID, NewStock: d("4")})
	require.NoError(t, err)
	assertDec(t, "4", inv.Stock)

	movs, err := f.engine.FinishedGoods.Movements(f.ctx, productID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestFinishedLedger_TipoExplicitoDebeRespetarDireccion(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Baguette")
	f.store.PutFinishedGoods(entity.FinishedGoodsInventory{ProductID: productID, Stock: d("10")})

	_, err := f.engine.FinishedGoods.SetAbsoluteStock(f.ctx, nil, inventory.SetStockInput{
		ProductID: productID, NewStock: d("12"), Kind: entity.FinishedMovementWaste,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.engine.FinishedGoods.SetAbsoluteStock(f.ctx, nil, inventory.SetStockInput{
		ProductID: productID, NewStock: d("12"), Kind: "regalo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.engine.FinishedGoods.SetAbsoluteStock(f.ctx, nil, inventory.SetStockInput{
		ProductID: productID, NewStock: d("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	inv, err := f.engine.FinishedGoods.SetAbsoluteStock(f.ctx, nil, inventory.SetStockInput{
		ProductID: productID, NewStock: d("8"), Kind: entity.FinishedMovementWaste, ActorID: testActor,
	})
	require.NoError(t, err)
	assertDec(t, "8", inv.Stock)

	movs, err := f.engine.FinishedGoods.Movements(f.ctx, productID, 1, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.FinishedMovementWaste, movs[0].Kind)
}

func TestFinishedLedger_Venta(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Baguette")
	f.store.PutFinishedGoods(entity.FinishedGoodsInventory{ProductID: productID, Stock: d("5")})
	orderID := "pedido-42"

	_, err := f.engine.FinishedGoods.DeductSale(f.ctx, nil, productID, d("6"), &orderID, testActor, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	inv, err := f.engine.FinishedGoods.DeductSale(f.ctx, nil, productID, d("2"), &orderID, testActor, "mostrador")
	require.NoError(t, err)
	assertDec(t, "3", inv.Stock)

	movs, err := f.engine.FinishedGoods.Movements(f.ctx, productID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.FinishedMovementSale, movs[0].Kind)
	require.NotNil(t, movs[0].OrderID)
	assert.Equal(t, orderID, *movs[0].OrderID)
}

func TestFinishedLedger_CantidadesATresDecimales(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Galletas")
	f.store.PutFinishedGoods(entity.FinishedGoodsInventory{ProductID: productID, Stock: d("5")})

	inv, err := f.engine.FinishedGoods.DeductSale(f.ctx, nil, productID, d("1.0004"), nil, testActor, "")
	require.NoError(t, err)
	assertDec(t, "4", inv.Stock)

	_, err = f.engine.FinishedGoods.DeductSale(f.ctx, nil, productID, d("0.0004"), nil, testActor, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	inv, err = f.engine.FinishedGoods.SetAbsoluteStock(f.ctx, nil, inventory.SetStockInput{ProductID: productID, NewStock: d("6.12345")})
	require.NoError(t, err)
	assertDec(t, "6.123", inv.Stock)

	movs, err := f.engine.FinishedGoods.Movements(f.ctx, productID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assertDec(t, "2.123", movs[0].Quantity)
	for _, mov := range movs {
		assert.True(t, mov.Quantity.Equal(mov.Quantity.Round(3)))
		assert.True(t, mov.StockAfter.Sub(mov.StockBefore).Abs().Equal(mov.Quantity))
	}
}

func TestFinishedLedger_PromedioPonderadoYVencimiento(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Pan de molde")
	f.store.PutFinishedGoods(entity.FinishedGoodsInventory{ProductID: productID, ShelfLifeDays: 3})

	first, err := f.engine.FinishedGoods.ReplenishWeightedAverage(f.ctx, nil, inventory.ReplenishFinishedInput{
		ProductID: productID, Quantity: d("10"), UnitCost: d("1.50"), ElaborationDate: day(1),
	})
	require.NoError(t, err)
	assertDec(t, "1.50", first.AverageCost)

	second, err := f.engine.FinishedGoods.ReplenishWeightedAverage(f.ctx, nil, inventory.ReplenishFinishedInput{
		ProductID: productID, Quantity: d("10"), UnitCost: d("2.00"), ElaborationDate: day(2),
	})
	require.NoError(t, err)
	assertDec(t, "20", second.Stock)
	assertDec(t, "1.75", second.AverageCost)
	require.NotNil(t, second.ExpiryDate)
	assert.True(t, second.ExpiryDate.Equal(day(5)))
}

func TestFinishedLedger_ProductoSinFilaTieneStockCero(t *testing.T) {
	f := newFixture(t)
	inv, err := f.engine.FinishedGoods.Get(f.ctx, "sin-fila")
	require.NoError(t, err)
	assert.True(t, inv.Stock.IsZero())

	row, err := f.engine.FinishedGoods.EnsureRow(f.ctx, nil, "sin-fila")
	require.NoError(t, err)
	assert.True(t, row.Stock.IsZero())
	again, err := f.engine.FinishedGoods.EnsureRow(f.ctx, nil, "sin-fila")
	require.NoError(t, err)
	assert.Equal(t, row.ProductID, again.ProductID)
}

// ──────────────────────────────────────────────────────────────────────────────
// TxGuard: con tx externo las unidades se aplanan y el rollback es uno solo.
// ──────────────────────────────────────────────────────────────────────────────

func TestTxGuard_AplanaTransaccionAnidada(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Baguette")
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "10", "2.00")

	err := f.engine.Guard.Run(f.ctx, nil, func(tx *inventory.Tx) error {
		if _, err := f.engine.RawMaterials.Consume(f.ctx, tx, inventory.ConsumeInput{MaterialID: flour, Quantity: d("4"), ActorID: testActor}); err != nil {
			return err
		}
		if _, err := f.engine.FinishedGoods.SetAbsoluteStock(f.ctx, tx, inventory.SetStockInput{ProductID: productID, NewStock: d("3")}); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	assertDec(t, "10", f.material(t, flour).Stock)
	inv, err := f.engine.FinishedGoods.Get(f.ctx, productID)
	require.NoError(t, err)
	assert.True(t, inv.Stock.IsZero())
	movs, err := f.engine.RawMaterials.Movements(f.ctx, flour, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
	assert.Empty(t, f.cache.Keys(), "las unidades anidadas no señalan caché")

	err = f.engine.Guard.Run(f.ctx, nil, func(tx *inventory.Tx) error {
		_, err := f.engine.RawMaterials.Consume(f.ctx, tx, inventory.ConsumeInput{MaterialID: flour, Quantity: d("4"), ActorID: testActor})
		return err
	})
	require.NoError(t, err)
	assertDec(t, "6", f.material(t, flour).Stock)
}

func TestGuarded_NoDevuelveValorSiFalla(t *testing.T) {
	f := newFixture(t)
	v, err := inventory.Guarded(f.ctx, f.engine.Guard, nil, func(*inventory.Tx) (int, error) {
		return 7, errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Zero(t, v)

	v, err = inventory.Guarded(f.ctx, f.engine.Guard, nil, func(*inventory.Tx) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestTxGuard_RollbackAntePanic(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "10", "2.00")

	assert.Panics(t, func() {
		_ = f.engine.Guard.Run(f.ctx, nil, func(tx *inventory.Tx) error {
			_, err := f.engine.RawMaterials.Consume(f.ctx, tx, inventory.ConsumeInput{MaterialID: flour, Quantity: d("4")})
			require.NoError(t, err)
			panic("fallo inesperado")
		})
	})
	assertDec(t, "10", f.material(t, flour).Stock)
}
