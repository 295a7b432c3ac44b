package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/application/usecase"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// RawMaterialHandler compras, ajustes e historial de materias primas (protegido).
type RawMaterialHandler struct {
	catalog       *usecase.RawMaterialUseCase
	ledger        *inventory.RawMaterialLedger
	replenishment *inventory.ReplenishmentUseCase
	errs          errorResponder
}

// NewRawMaterialHandler construye el handler.
func NewRawMaterialHandler(
	catalog *usecase.RawMaterialUseCase,
	ledger *inventory.RawMaterialLedger,
	replenishment *inventory.ReplenishmentUseCase,
	errs errorResponder,
) *RawMaterialHandler {
	return &RawMaterialHandler{catalog: catalog, ledger: ledger, replenishment: replenishment, errs: errs}
}

// Create godoc
// @Summary      Crear materia prima
// @Tags         raw-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRawMaterialRequest  true  "Datos de la materia prima"
// @Success      201   {object}  dto.RawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/raw-materials [post]
func (h *RawMaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRawMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.catalog.Create(c.Context(), in, GetUserID(c))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRawMaterialResponse(m))
}

// GetByID devuelve la materia prima con su stock y costo promedio.
func (h *RawMaterialHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.catalog.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(toRawMaterialResponse(m))
}

// Purchase godoc
// @Summary      Registrar compra o entrada de materia prima
// @Tags         raw-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la materia prima"
// @Param        body  body  dto.RawMaterialPurchaseRequest  true  "quantity, unit_cost (compras)"
// @Success      201   {object}  dto.RawMaterialResponse
// @Router       /api/raw-materials/{id}/purchases [post]
func (h *RawMaterialHandler) Purchase(c *fiber.Ctx) error {
	var in dto.RawMaterialPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.ledger.Replenish(c.Context(), nil, inventory.ReplenishInput{
		MaterialID:    c.Params("id"),
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		Kind:          entity.RawMovementKind(in.Kind),
		ActorID:       GetUserID(c),
		InvoiceNumber: in.InvoiceNumber,
		Notes:         in.Notes,
	})
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRawMaterialResponse(m))
}

// Consume registra una salida manual (ajuste_salida o merma).
func (h *RawMaterialHandler) Consume(c *fiber.Ctx) error {
	var in dto.RawMaterialConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	kind := entity.RawMovementKind(in.Kind)
	if kind == "" {
		kind = entity.RawMovementAdjustOut
	}
	m, err := h.ledger.Consume(c.Context(), nil, inventory.ConsumeInput{
		MaterialID: c.Params("id"),
		Quantity:   in.Quantity,
		Kind:       kind,
		ActorID:    GetUserID(c),
		Notes:      in.Notes,
	})
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRawMaterialResponse(m))
}

// Movements historial paginado (?limit=&offset=).
func (h *RawMaterialHandler) Movements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.ledger.Movements(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(fiber.Map{
		"items": toRawMovementResponses(list),
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// LowStock materias primas por debajo del mínimo.
func (h *RawMaterialHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.ledger.LowStock(c.Context())
	if err != nil {
		return h.errs.respond(c, err)
	}
	items := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toRawMaterialResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// Deactivate godoc
// @Summary      Desactivar materia prima
// @Description  Paso previo a eliminarla. Conserva stock e historial.
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la materia prima"
// @Success      200  {object}  dto.RawMaterialResponse
// @Router       /api/raw-materials/{id}/deactivate [patch]
func (h *RawMaterialHandler) Deactivate(c *fiber.Ctx) error {
	m, err := h.ledger.Deactivate(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(toRawMaterialResponse(m))
}

// Delete elimina lógicamente una materia prima inactiva sin recetas activas.
func (h *RawMaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.Delete(c.Context(), c.Params("id")); err != nil {
		return h.errs.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PurchaseSuggestions godoc
// @Summary      Lista de compras sugeridas
// @Description  Materias primas bajo el mínimo, ordenadas por prioridad (1 = menor cobertura).
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PurchaseSuggestionListResponse
// @Router       /api/raw-materials/purchase-suggestions [get]
func (h *RawMaterialHandler) PurchaseSuggestions(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return h.errs.respond(c, err)
	}
	out := dto.PurchaseSuggestionListResponse{Items: make([]dto.PurchaseSuggestionResponse, 0, len(list))}
	for _, s := range list {
		out.Items = append(out.Items, dto.PurchaseSuggestionResponse{
			MaterialID:    s.MaterialID,
			Name:          s.Name,
			Unit:          s.Unit,
			Supplier:      s.Supplier,
			CurrentStock:  s.CurrentStock,
			MinStock:      s.MinStock,
			IdealStock:    s.IdealStock,
			SuggestedQty:  s.SuggestedQty,
			UnitCost:      s.UnitCost,
			EstimatedCost: s.EstimatedCost,
			Priority:      s.Priority,
		})
		out.TotalCost = out.TotalCost.Add(s.EstimatedCost)
	}
	out.Total = len(out.Items)
	return c.JSON(out)
}
