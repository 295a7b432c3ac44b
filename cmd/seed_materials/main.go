// seed_materials carga el catálogo inicial de materias primas desde un CSV.
//
// Uso: go run ./cmd/seed_materials [ruta/materias_primas.csv] [latin1]
// Por defecto busca materias_primas.csv en el directorio actual. Con "latin1" el archivo
// se decodifica como ISO-8859-1 (exportaciones de hojas de cálculo antiguas).
//
// Columnas: nombre,codigo,unidad,stock,stock_minimo,costo_unitario,proveedor
// El stock inicial entra como compra para que el historial cuadre con el saldo.
// Las filas cuyo código ya existe se omiten.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/application/usecase"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Panaderia-api/pkg/config"
	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

const seedActor = "seed_materials"

type row struct {
	name, code, supplier string
	unit                 entity.Unit
	stock, min, cost     decimal.Decimal
}

func main() {
	csvPath := "materias_primas.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	latin1 := len(os.Args) > 2 && strings.EqualFold(os.Args[2], "latin1")

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("abrir CSV")
	}
	defer f.Close()

	var in io.Reader = f
	if latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := readRows(in)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	reads := postgres.Bind(pool)
	engine := inventory.NewEngine(postgres.NewTxRunner(pool), reads, nil, log, inventory.ProductionConfig{})

	materials := usecase.NewRawMaterialUseCase(engine.Guard, reads.RawMaterials, engine.RawMaterials)

	var created, skipped int
	for _, r := range rows {
		_, err := materials.Create(ctx, dto.CreateRawMaterialRequest{
			Name:     r.name,
			Code:     r.code,
			Unit:     string(r.unit),
			Stock:    r.stock,
			MinStock: r.min,
			UnitCost: r.cost,
			Supplier: r.supplier,
		}, seedActor)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			log.Fatal().Err(err).Str("name", r.name).Msg("crear materia prima")
		}
		created++
	}
	fmt.Printf("Materias primas: %d creadas, %d omitidas (código existente)\n", created, skipped)
}

func readRows(in io.Reader) ([]row, error) {
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make([]row, 0, len(records))
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue
		}
		if len(rec) < 7 {
			return nil, fmt.Errorf("línea %d: se esperaban 7 columnas, hay %d", i+1, len(rec))
		}
		unit := entity.Unit(strings.TrimSpace(rec[2]))
		if !unit.Valid() {
			return nil, fmt.Errorf("línea %d: unidad %q no soportada", i+1, rec[2])
		}
		nums := make([]decimal.Decimal, 3)
		for j, col := range rec[3:6] {
			col = strings.TrimSpace(col)
			if col == "" {
				continue
			}
			d, err := decimal.NewFromString(strings.ReplaceAll(col, ",", "."))
			if err != nil || d.IsNegative() {
				return nil, fmt.Errorf("línea %d: valor numérico inválido %q", i+1, col)
			}
			nums[j] = d
		}
		out = append(out, row{
			name:     strings.TrimSpace(rec[0]),
			code:     strings.TrimSpace(rec[1]),
			unit:     unit,
			stock:    nums[0],
			min:      nums[1],
			cost:     nums[2],
			supplier: strings.TrimSpace(rec[6]),
		})
	}
	return out, nil
}
