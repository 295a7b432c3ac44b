package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// FinishedGoodsHandler stock de producto terminado (protegido).
type FinishedGoodsHandler struct {
	ledger *inventory.FinishedGoodsLedger
	errs   errorResponder
}

// NewFinishedGoodsHandler construye el handler.
func NewFinishedGoodsHandler(ledger *inventory.FinishedGoodsLedger, errs errorResponder) *FinishedGoodsHandler {
	return &FinishedGoodsHandler{ledger: ledger, errs: errs}
}

// Get devuelve el inventario del producto (stock cero si aún no tiene fila).
func (h *FinishedGoodsHandler) Get(c *fiber.Ctx) error {
	inv, err := h.ledger.Get(c.Context(), c.Params("productId"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(toFinishedGoodsResponse(inv))
}

// SetStock godoc
// @Summary      Fijar stock absoluto (conteo físico, devolución, merma)
// @Tags         finished-goods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                       true  "ID del producto"
// @Param        body       body  dto.SetFinishedStockRequest  true  "new_stock, kind opcional"
// @Success      200  {object}  dto.FinishedGoodsResponse
// @Router       /api/finished-goods/{productId}/stock [put]
func (h *FinishedGoodsHandler) SetStock(c *fiber.Ctx) error {
	var in dto.SetFinishedStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.ledger.SetAbsoluteStock(c.Context(), nil, inventory.SetStockInput{
		ProductID: c.Params("productId"),
		NewStock:  in.NewStock,
		Kind:      entity.FinishedMovementKind(in.Kind),
		ActorID:   GetUserID(c),
		Notes:     in.Notes,
	})
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(toFinishedGoodsResponse(inv))
}

// Sale descuenta stock por una venta.
func (h *FinishedGoodsHandler) Sale(c *fiber.Ctx) error {
	var in dto.FinishedGoodsSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.ledger.DeductSale(c.Context(), nil, c.Params("productId"), in.Quantity, in.OrderID, GetUserID(c), in.Notes)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFinishedGoodsResponse(inv))
}

// Movements historial paginado del producto.
func (h *FinishedGoodsHandler) Movements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.ledger.Movements(c.Context(), c.Params("productId"), page.Limit, page.Offset)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(fiber.Map{
		"items": toFinishedMovementResponses(list),
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// LowStock productos por debajo del mínimo.
func (h *FinishedGoodsHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.ledger.LowStock(c.Context())
	if err != nil {
		return h.errs.respond(c, err)
	}
	items := make([]dto.FinishedGoodsResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, toFinishedGoodsResponse(inv))
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}
