package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	invdomain "github.com/jhoicas/Panaderia-api/internal/domain/inventory"
	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

// printer formatea cantidades con separadores en español (1.234,5) para los mensajes al operador.
var printer = message.NewPrinter(language.Spanish)

// errorResponder traduce errores de dominio a respuestas HTTP. Los errores internos se
// registran y se devuelven como un fallo genérico.
type errorResponder struct {
	log *logger.Logger
}

func (r errorResponder) respond(c *fiber.Ctx, err error) error {
	var conv *domain.ConversionError
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		shortages, _ := domain.Shortages(err)
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: shortageMessage(shortages),
			Details: toShortageDTOs(shortages),
		})
	case errors.As(err, &conv):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "UNSUPPORTED_CONVERSION",
			Message: err.Error(),
			Details: fiber.Map{"from": conv.From, "to": conv.To},
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidRecipe):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_RECIPE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	r.log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno, intente más tarde"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func shortageMessage(shortages []domain.Shortage) string {
	if len(shortages) == 0 {
		return domain.ErrInsufficientStock.Error()
	}
	msg := "stock insuficiente:"
	for i, s := range shortages {
		name := s.MaterialName
		if name == "" {
			name = s.MaterialID
		}
		if i > 0 {
			msg += ";"
		}
		msg += printer.Sprintf(" %s faltan %s %s (requiere %s, disponible %s)",
			name, quantityText(s.Shortfall), s.Unit, quantityText(s.Required), quantityText(s.Available))
	}
	return msg
}

// quantityText escribe la cantidad exacta a tres decimales con coma decimal; la parte
// entera lleva los separadores de miles del printer.
func quantityText(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	fixed := v.StringFixed(invdomain.QuantityPrecision)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + whole + "," + frac
	}
	return sign + printer.Sprintf("%d", n) + "," + frac
}

func toShortageDTOs(shortages []domain.Shortage) []dto.ShortageDTO {
	out := make([]dto.ShortageDTO, 0, len(shortages))
	for _, s := range shortages {
		out = append(out, dto.ShortageDTO{
			MaterialID:   s.MaterialID,
			MaterialName: s.MaterialName,
			Required:     s.Required,
			Available:    s.Available,
			Shortfall:    s.Shortfall,
			Unit:         s.Unit,
		})
	}
	return out
}
