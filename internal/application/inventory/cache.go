package inventory

import (
	"context"

	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

// Claves de vistas agregadas cacheadas que dependen de niveles de inventario.
const (
	CacheKeyInventorySummary  = "inventario:resumen"
	CacheKeyRawMaterialsLow   = "inventario:materias_primas:bajo_minimo"
	CacheKeyFinishedGoodsLow  = "inventario:productos:bajo_minimo"
	cacheKeyProductPrefix     = "inventario:producto:"
	cacheKeyRawMaterialPrefix = "inventario:materia_prima:"
)

// ProductCacheKey clave de la vista cacheada del stock de un producto.
func ProductCacheKey(productID string) string { return cacheKeyProductPrefix + productID }

// RawMaterialCacheKey clave de la vista cacheada de una materia prima.
func RawMaterialCacheKey(materialID string) string { return cacheKeyRawMaterialPrefix + materialID }

// CacheInvalidator invalida vistas cacheadas. Solo señaliza; el cacheo en sí vive fuera del motor.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// NoopInvalidator no invalida nada (sin Redis configurado).
type NoopInvalidator struct{}

// Invalidate no hace nada.
func (NoopInvalidator) Invalidate(context.Context, ...string) error { return nil }

// cacheSignal envía la señal después del commit; un fallo se registra y no revierte nada.
type cacheSignal struct {
	cache CacheInvalidator
	log   *logger.Logger
}

func (s cacheSignal) signal(ctx context.Context, keys ...string) {
	if s.cache == nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("invalidación de caché de inventario")
	}
}
