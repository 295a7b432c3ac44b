package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidArgument       = errors.New("argumento inválido")
	ErrInvalidState          = errors.New("estado inválido para la operación")
	ErrInvalidRecipe         = errors.New("receta inválida")
	ErrUnsupportedConversion = errors.New("conversión de unidades no soportada")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
)

// Shortage describe el faltante de una materia prima para cubrir un requerimiento.
type Shortage struct {
	MaterialID   string
	MaterialName string
	Required     decimal.Decimal
	Available    decimal.Decimal
	Shortfall    decimal.Decimal
	Unit         string
}

// InsufficientStockError lleva la lista completa de faltantes. errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	if len(e.Shortages) == 0 {
		return ErrInsufficientStock.Error()
	}
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		name := s.MaterialName
		if name == "" {
			name = s.MaterialID
		}
		parts = append(parts, fmt.Sprintf("%s: requiere %s %s, disponible %s, faltan %s",
			name, s.Required.String(), s.Unit, s.Available.String(), s.Shortfall.String()))
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// NewInsufficientStock construye el error para un único material.
func NewInsufficientStock(materialID, name, unit string, required, available decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{Shortages: []Shortage{{
		MaterialID:   materialID,
		MaterialName: name,
		Required:     required,
		Available:    available,
		Shortfall:    required.Sub(available),
		Unit:         unit,
	}}}
}

// ConversionError indica que no existe regla de conversión entre dos unidades.
type ConversionError struct {
	From string
	To   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: de %q a %q", ErrUnsupportedConversion.Error(), e.From, e.To)
}

func (e *ConversionError) Is(target error) bool { return target == ErrUnsupportedConversion }

// Invalid envuelve un sentinel con un detalle legible: Invalid(ErrInvalidArgument, "cantidad debe ser > 0").
func Invalid(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Shortages extrae los faltantes de un error, si los tiene.
func Shortages(err error) ([]Shortage, bool) {
	var se *InsufficientStockError
	if errors.As(err, &se) {
		return se.Shortages, true
	}
	return nil, false
}
