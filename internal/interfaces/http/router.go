package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/application/usecase"
	"github.com/jhoicas/Panaderia-api/pkg/jwt"
	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine       *inventory.Engine
	Products     *usecase.ProductUseCase
	RawMaterials *usecase.RawMaterialUseCase
	JWTSecret    string
	Logger       *logger.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	errs := errorResponder{log: log.Component("http")}
	engine := deps.Engine

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleBaker, jwt.RoleSeller)
	backOffice := RequireRole(jwt.RoleAdmin, jwt.RoleBaker)
	adminOnly := RequireRole(jwt.RoleAdmin)
	sales := RequireRole(jwt.RoleAdmin, jwt.RoleSeller)

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Products, errs)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/:id", anyRole, productHandler.GetByID)

	// Producción
	production := api.Group("/production-runs")
	productionHandler := NewProductionHandler(engine.Production, errs)
	production.Post("/", backOffice, productionHandler.Register)
	production.Get("/:id", anyRole, productionHandler.GetByID)
	production.Get("/:id/movements", backOffice, productionHandler.Movements)
	production.Post("/:id/process", backOffice, productionHandler.Process)
	production.Post("/:id/cancel", backOffice, productionHandler.Cancel)

	// Recetas
	recipes := api.Group("/recipes")
	recipeHandler := NewRecipeHandler(engine.Recipes, engine.RecipeCosts, errs)
	recipes.Post("/", backOffice, recipeHandler.Create)
	recipes.Get("/:id", backOffice, recipeHandler.GetByID)
	recipes.Put("/:id/ingredients", backOffice, recipeHandler.UpdateIngredients)
	recipes.Post("/:id/costs", backOffice, recipeHandler.RecalculateCosts)
	recipes.Delete("/:id", backOffice, recipeHandler.Deactivate)
	recipes.Get("/:id/stock-check", backOffice, recipeHandler.StockCheck)

	// Materias primas
	raw := api.Group("/raw-materials")
	rawHandler := NewRawMaterialHandler(deps.RawMaterials, engine.RawMaterials, engine.Replenishment, errs)
	raw.Post("/", adminOnly, rawHandler.Create)
	raw.Get("/low-stock", backOffice, rawHandler.LowStock)
	raw.Get("/purchase-suggestions", backOffice, rawHandler.PurchaseSuggestions)
	raw.Get("/:id", backOffice, rawHandler.GetByID)
	raw.Post("/:id/purchases", backOffice, rawHandler.Purchase)
	raw.Post("/:id/consumptions", backOffice, rawHandler.Consume)
	raw.Get("/:id/movements", backOffice, rawHandler.Movements)
	raw.Patch("/:id/deactivate", adminOnly, rawHandler.Deactivate)
	raw.Delete("/:id", adminOnly, rawHandler.Delete)

	// Producto terminado
	finished := api.Group("/finished-goods")
	finishedHandler := NewFinishedGoodsHandler(engine.FinishedGoods, errs)
	finished.Get("/low-stock", anyRole, finishedHandler.LowStock)
	finished.Get("/:productId", anyRole, finishedHandler.Get)
	finished.Put("/:productId/stock", backOffice, finishedHandler.SetStock)
	finished.Post("/:productId/sales", sales, finishedHandler.Sale)
	finished.Get("/:productId/movements", anyRole, finishedHandler.Movements)
}
