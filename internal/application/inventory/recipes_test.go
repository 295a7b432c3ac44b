package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

func TestRecipe_CrearCalculaCostos(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Pan de bono")
	flour := f.addMaterial(t, "Harina", entity.UnitKilogram, "100", "2.40")
	milk := f.addMaterial(t, "Leche", entity.UnitLiter, "20", "1.10")

	r := f.addRecipe(t, productID, "24",
		ing(flour, "1500", entity.UnitGram),
		ing(milk, "0.5", entity.UnitLiter),
	)
	assert.Equal(t, 1, r.Version)
	assert.True(t, r.Active)
	require.Len(t, r.Ingredients, 2)
	assertDec(t, "3.60", r.Ingredients[0].Cost)
	assertDec(t, "0.55", r.Ingredients[1].Cost)
	assertDec(t, "4.15", r.TotalCost)
	// 4.15 / 24 = 0.1729..
	assertDec(t, "0.17", r.UnitCost)

	got, err := f.engine.Recipes.Get(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Ingredients[0].DisplayOrder)
	assert.Equal(t, flour, got.Ingredients[0].RawMaterialID)
}

func TestRecipe_CrearValidaciones(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Pan de bono")
	cheese := f.addMaterial(t, "Queso", entity.UnitKilogram, "10", "9.00")
	eggs := f.addMaterial(t, "Huevos", entity.UnitPiece, "60", "0.40")

	cases := []struct {
		name string
		in   inventory.CreateRecipeInput
		want error
	}{
		{"rendimiento cero", inventory.CreateRecipeInput{ProductID: productID, Name: "x", YieldQuantity: d("0"), YieldUnit: entity.UnitPiece,
			Ingredients: []inventory.IngredientInput{ing(cheese, "1", entity.UnitKilogram)}}, domain.ErrInvalidRecipe},
		{"sin ingredientes", inventory.CreateRecipeInput{ProductID: productID, Name: "x", YieldQuantity: d("1"), YieldUnit: entity.UnitPiece}, domain.ErrInvalidRecipe},
		{"producto inexistente", inventory.CreateRecipeInput{ProductID: "no-existe", Name: "x", YieldQuantity: d("1"), YieldUnit: entity.UnitPiece,
			Ingredients: []inventory.IngredientInput{ing(cheese, "1", entity.UnitKilogram)}}, domain.ErrNotFound},
		{"materia prima inexistente", inventory.CreateRecipeInput{ProductID: productID, Name: "x", YieldQuantity: d("1"), YieldUnit: entity.UnitPiece,
			Ingredients: []inventory.IngredientInput{ing("no-existe", "1", entity.UnitKilogram)}}, domain.ErrInvalidRecipe},
		{"conversión imposible", inventory.CreateRecipeInput{ProductID: productID, Name: "x", YieldQuantity: d("1"), YieldUnit: entity.UnitPiece,
			Ingredients: []inventory.IngredientInput{ing(eggs, "200", entity.UnitGram)}}, domain.ErrUnsupportedConversion},
		{"cantidad negativa", inventory.CreateRecipeInput{ProductID: productID, Name: "x", YieldQuantity: d("1"), YieldUnit: entity.UnitPiece,
			Ingredients: []inventory.IngredientInput{ing(cheese, "-1", entity.UnitKilogram)}}, domain.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.engine.Recipes.Create(f.ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRecipe_EditarIngredientesSubeVersion(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Galletas")
	butter := f.addMaterial(t, "Mantequilla", entity.UnitKilogram, "10", "8.00")
	sugar := f.addMaterial(t, "Azúcar", entity.UnitKilogram, "10", "2.00")
	r := f.addRecipe(t, productID, "50", ing(butter, "1", entity.UnitKilogram))

	updated, err := f.engine.Recipes.UpdateIngredients(f.ctx, r.ID, []inventory.IngredientInput{
		ing(butter, "0.8", entity.UnitKilogram),
		ing(sugar, "500", entity.UnitGram),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assertDec(t, "7.40", updated.TotalCost)

	got, err := f.engine.Recipes.Get(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	require.Len(t, got.Ingredients, 2)
	assertDec(t, "6.40", got.Ingredients[0].Cost)
	assertDec(t, "1.00", got.Ingredients[1].Cost)
	assertDec(t, "7.40", got.TotalCost)
	assertDec(t, "0.15", got.UnitCost)

	_, err = f.engine.Recipes.UpdateIngredients(f.ctx, r.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRecipe)
}

func TestRecipe_RecalcularTrasCompra(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Galletas")
	butter := f.addMaterial(t, "Mantequilla", entity.UnitKilogram, "10", "8.00")
	r := f.addRecipe(t, productID, "10", ing(butter, "1", entity.UnitKilogram))
	assertDec(t, "8.00", r.TotalCost)

	_, err := f.engine.RawMaterials.Replenish(f.ctx, nil, inventory.ReplenishInput{
		MaterialID: butter, Quantity: d("10"), UnitCost: dp("10.00"), ActorID: testActor,
	})
	require.NoError(t, err)

	recalculated, err := f.engine.RecipeCosts.CalculateCosts(f.ctx, nil, r.ID)
	require.NoError(t, err)
	assertDec(t, "9.00", recalculated.TotalCost)
	assertDec(t, "0.90", recalculated.UnitCost)
	assert.Equal(t, 1, recalculated.Version, "recalcular costos no cambia la versión")

	_, err = f.engine.RecipeCosts.CalculateCosts(f.ctx, nil, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecipe_VerificarStock(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Galletas")
	butter := f.addMaterial(t, "Mantequilla", entity.UnitKilogram, "1", "8.00")
	sugar := f.addMaterial(t, "Azúcar", entity.UnitKilogram, "10", "2.00")
	r := f.addRecipe(t, productID, "10",
		ing(butter, "500", entity.UnitGram),
		ing(sugar, "1", entity.UnitKilogram),
	)

	ok, err := f.engine.RecipeCosts.VerifyStock(f.ctx, r.ID, d("20"))
	require.NoError(t, err)
	assert.True(t, ok.Sufficient)
	assert.Empty(t, ok.Shortages)

	short, err := f.engine.RecipeCosts.VerifyStock(f.ctx, r.ID, d("30"))
	require.NoError(t, err)
	assert.False(t, short.Sufficient)
	require.Len(t, short.Shortages, 1)
	assert.Equal(t, butter, short.Shortages[0].MaterialID)
	assertDec(t, "1.5", short.Shortages[0].Required)
	assertDec(t, "0.5", short.Shortages[0].Shortfall)
	assert.Equal(t, "kg", short.Shortages[0].Unit)

	_, err = f.engine.RecipeCosts.VerifyStock(f.ctx, r.ID, d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRecipe_DesactivarSinHistorialLaElimina(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Galletas")
	butter := f.addMaterial(t, "Mantequilla", entity.UnitKilogram, "10", "8.00")
	r := f.addRecipe(t, productID, "10", ing(butter, "1", entity.UnitKilogram))

	deleted, err := f.engine.Recipes.Deactivate(f.ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = f.engine.Recipes.Get(f.ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.engine.Recipes.Deactivate(f.ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecipe_DesactivarConHistorialLaConserva(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Galletas")
	butter := f.addMaterial(t, "Mantequilla", entity.UnitKilogram, "10", "8.00")
	r := f.addRecipe(t, productID, "10", ing(butter, "1", entity.UnitKilogram))
	run := f.register(t, productID, "10")

	deleted, err := f.engine.Recipes.Deactivate(f.ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err := f.engine.Recipes.Get(f.ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	// La orden ya registrada conserva su referencia y se puede procesar.
	done, err := f.engine.Production.Process(f.ctx, run.ID, inventory.ProcessInput{ActorID: testActor})
	require.NoError(t, err)
	assert.Equal(t, r.ID, done.RecipeID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lista de compras sugeridas.
// ──────────────────────────────────────────────────────────────────────────────

func TestReplenishment_PrioridadPorCobertura(t *testing.T) {
	f := newFixture(t)
	flour := f.addMaterialWithMin(t, "Harina", "5", "20", "2.00")
	yeast := f.addMaterialWithMin(t, "Levadura", "1", "2", "12.00")
	f.addMaterialWithMin(t, "Sal", "5", "1", "0.50")

	list, err := f.engine.Replenishment.GenerateReplenishmentList(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Harina cubre 25 %, levadura 50 %
	assert.Equal(t, flour, list[0].MaterialID)
	assert.Equal(t, 1, list[0].Priority)
	assertDec(t, "30", list[0].IdealStock)
	assertDec(t, "25", list[0].SuggestedQty)
	assertDec(t, "50.00", list[0].EstimatedCost)

	assert.Equal(t, yeast, list[1].MaterialID)
	assert.Equal(t, 2, list[1].Priority)
	assertDec(t, "2", list[1].SuggestedQty)
	assertDec(t, "24.00", list[1].EstimatedCost)
}
