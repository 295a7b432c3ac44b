package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// RecipeHandler recetas y consultas de costo/stock (protegido).
type RecipeHandler struct {
	recipes *inventory.RecipeUseCase
	engine  *inventory.RecipeCostEngine
	errs    errorResponder
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(recipes *inventory.RecipeUseCase, engine *inventory.RecipeCostEngine, errs errorResponder) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, engine: engine, errs: errs}
}

func toIngredientInputs(in []dto.RecipeIngredientRequest) []inventory.IngredientInput {
	out := make([]inventory.IngredientInput, 0, len(in))
	for _, ing := range in {
		out = append(out, inventory.IngredientInput{
			RawMaterialID: ing.RawMaterialID,
			Quantity:      ing.Quantity,
			Unit:          entity.Unit(ing.Unit),
		})
	}
	return out
}

// Create godoc
// @Summary      Crear receta (versión 1, con costos calculados)
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "receta"
// @Success      201   {object}  dto.RecipeResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	r, err := h.recipes.Create(c.Context(), inventory.CreateRecipeInput{
		ProductID:     in.ProductID,
		Name:          in.Name,
		Description:   in.Description,
		YieldQuantity: in.YieldQuantity,
		YieldUnit:     entity.Unit(in.YieldUnit),
		Ingredients:   toIngredientInputs(in.Ingredients),
	})
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRecipeResponse(r))
}

// GetByID devuelve la receta con ingredientes.
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.recipes.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(toRecipeResponse(r))
}

// UpdateIngredients reemplaza los ingredientes e incrementa la versión.
func (h *RecipeHandler) UpdateIngredients(c *fiber.Ctx) error {
	var in dto.UpdateRecipeIngredientsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	r, err := h.recipes.UpdateIngredients(c.Context(), c.Params("id"), toIngredientInputs(in.Ingredients))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(toRecipeResponse(r))
}

// RecalculateCosts recalcula costos con los costos vigentes de materias primas.
func (h *RecipeHandler) RecalculateCosts(c *fiber.Ctx) error {
	r, err := h.engine.CalculateCosts(c.Context(), nil, c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(toRecipeResponse(r))
}

// Deactivate desactiva la receta (o la elimina si no tiene producciones).
func (h *RecipeHandler) Deactivate(c *fiber.Ctx) error {
	deleted, err := h.recipes.Deactivate(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted, "active": false})
}

// StockCheck godoc
// @Summary      Verificar stock para producir una cantidad
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true  "ID de la receta"
// @Param        quantity  query  string  true  "cantidad a producir"
// @Success      200  {object}  dto.StockCheckResponse
// @Router       /api/recipes/{id}/stock-check [get]
func (h *RecipeHandler) StockCheck(c *fiber.Ctx) error {
	qty, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un número"})
	}
	check, err := h.engine.VerifyStock(c.Context(), c.Params("id"), qty)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(dto.StockCheckResponse{Sufficient: check.Sufficient, Shortages: toShortageDTOs(check.Shortages)})
}
