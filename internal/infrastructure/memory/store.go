// Package memory implementa los puertos de persistencia del motor de inventario en memoria.
// Se usa en pruebas y con APP_STORE=memory para desarrollo local.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// Store guarda todas las tablas del motor. Las transacciones toman el mutex completo:
// equivale a bloquear todas las filas, así que dos transacciones nunca se intercalan.
type Store struct {
	mu sync.Mutex
	data
}

type data struct {
	rawMaterials      map[string]entity.RawMaterial
	rawMovements      []entity.RawMaterialMovement
	recipes           map[string]entity.Recipe
	finishedGoods     map[string]entity.FinishedGoodsInventory
	finishedMovements []entity.FinishedGoodsMovement
	productions       map[string]entity.ProductionRun
	products          map[string]entity.Product
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: data{
		rawMaterials:  make(map[string]entity.RawMaterial),
		recipes:       make(map[string]entity.Recipe),
		finishedGoods: make(map[string]entity.FinishedGoodsInventory),
		productions:   make(map[string]entity.ProductionRun),
		products:      make(map[string]entity.Product),
	}}
}

// snapshot copia profunda del estado para poder restaurarlo en rollback.
func (d *data) snapshot() data {
	out := data{
		rawMaterials:      make(map[string]entity.RawMaterial, len(d.rawMaterials)),
		rawMovements:      append([]entity.RawMaterialMovement(nil), d.rawMovements...),
		recipes:           make(map[string]entity.Recipe, len(d.recipes)),
		finishedGoods:     make(map[string]entity.FinishedGoodsInventory, len(d.finishedGoods)),
		finishedMovements: append([]entity.FinishedGoodsMovement(nil), d.finishedMovements...),
		productions:       make(map[string]entity.ProductionRun, len(d.productions)),
		products:          make(map[string]entity.Product, len(d.products)),
	}
	for k, v := range d.rawMaterials {
		out.rawMaterials[k] = v
	}
	for k, v := range d.recipes {
		out.recipes[k] = copyRecipe(v)
	}
	for k, v := range d.finishedGoods {
		out.finishedGoods[k] = v
	}
	for k, v := range d.productions {
		out.productions[k] = v
	}
	for k, v := range d.products {
		out.products[k] = v
	}
	return out
}

// Run implementa inventory.TxRunner: snapshot al inicio, restauración si fn falla o entra en pánico.
func (s *Store) Run(ctx context.Context, fn func(tx *inventory.Tx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.data.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.data = snap
			panic(p)
		}
		if err != nil {
			s.data = snap
		}
	}()
	return fn(s.bind(true))
}

// Tx devuelve repositorios fuera de transacción (cada llamada toma el mutex).
func (s *Store) Tx() *inventory.Tx {
	return s.bind(false)
}

func (s *Store) bind(inTx bool) *inventory.Tx {
	v := view{s: s, inTx: inTx}
	return &inventory.Tx{
		RawMaterials:      rawMaterialRepo{v},
		RawMovements:      rawMovementRepo{v},
		Recipes:           recipeRepo{v},
		FinishedGoods:     finishedGoodsRepo{v},
		FinishedMovements: finishedMovementRepo{v},
		Productions:       productionRepo{v},
		Products:          productRepo{v},
	}
}

// view es la base de los repositorios: dentro de Run el mutex ya está tomado.
type view struct {
	s    *Store
	inTx bool
}

func (v view) lock() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

// AddProduct registra un producto (el CRUD de productos vive fuera del motor).
func (s *Store) AddProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// PutFinishedGoods fija la fila de inventario de un producto (mínimo, vida útil, stock inicial).
func (s *Store) PutFinishedGoods(inv entity.FinishedGoodsInventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishedGoods[inv.ProductID] = inv
}

func errDuplicate(kind, id string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrDuplicate, kind, id)
}

func errMissing(kind, id string) error {
	return fmt.Errorf("memory: %s %s no existe", kind, id)
}

func copyRecipe(r entity.Recipe) entity.Recipe {
	r.Ingredients = append([]entity.RecipeIngredient(nil), r.Ingredients...)
	return r
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
