package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// ProductionHandler órdenes de producción (protegido).
type ProductionHandler struct {
	processor *inventory.ProductionProcessor
	errs      errorResponder
}

// NewProductionHandler construye el handler.
func NewProductionHandler(processor *inventory.ProductionProcessor, errs errorResponder) *ProductionHandler {
	return &ProductionHandler{processor: processor, errs: errs}
}

// Register godoc
// @Summary      Registrar orden de producción (en_proceso)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterProductionRequest  true  "product_id, quantity, recipe_id opcional"
// @Success      201   {object}  dto.ProductionRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/production-runs [post]
func (h *ProductionHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var date time.Time
	if in.ProductionDate != nil {
		date = *in.ProductionDate
	}
	run, err := h.processor.Register(c.Context(), inventory.RegisterInput{
		ProductID:      in.ProductID,
		RecipeID:       in.RecipeID,
		OperatorID:     GetUserID(c),
		BakerID:        in.BakerID,
		ProductionDate: date,
		Quantity:       in.Quantity,
		Unit:           entity.Unit(in.Unit),
		ActualFlour:    in.ActualFlour,
		Notes:          in.Notes,
	})
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductionResponse(run))
}

// Process godoc
// @Summary      Procesar orden de producción
// @Description  Descuenta materias primas (receta + extras), calcula costo y variación de harina
//
//	y repone producto terminado en una sola transacción.
//
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la producción"
// @Param        body  body  dto.ProcessProductionRequest  false "extras y harina real"
// @Success      200   {object}  dto.ProductionRunResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK con details o INVALID_STATE"
// @Router       /api/production-runs/{id}/process [post]
func (h *ProductionHandler) Process(c *fiber.Ctx) error {
	var in dto.ProcessProductionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	extras := make([]entity.ExtraIngredient, 0, len(in.Extras))
	for _, ex := range in.Extras {
		extras = append(extras, entity.ExtraIngredient{RawMaterialID: ex.RawMaterialID, Quantity: ex.Quantity})
	}
	run, err := h.processor.Process(c.Context(), c.Params("id"), inventory.ProcessInput{
		Extras:      extras,
		ActualFlour: in.ActualFlour,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(toProductionResponse(run))
}

// Cancel godoc
// @Summary      Cancelar orden en_proceso
// @Tags         production
// @Security     Bearer
// @Param        id  path  string  true  "ID de la producción"
// @Success      200 {object}  dto.ProductionRunResponse
// @Failure      409 {object}  dto.ErrorResponse
// @Router       /api/production-runs/{id}/cancel [post]
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelProductionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	run, err := h.processor.Cancel(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(toProductionResponse(run))
}

// GetByID devuelve una orden de producción.
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	run, err := h.processor.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(toProductionResponse(run))
}

// Movements devuelve los movimientos de ambos libros asociados a la orden.
func (h *ProductionHandler) Movements(c *fiber.Ctx) error {
	movs, err := h.processor.Movements(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(dto.ProductionMovementsResponse{
		RawMaterials:  toRawMovementResponses(movs.Raw),
		FinishedGoods: toFinishedMovementResponses(movs.Finished),
	})
}
