package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/part"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/application/tree"
	"github.com/jhoicas/Almacen-api/internal/application/user"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC    *stock.StockUseCase
	LocationUC *tree.LocationUseCase
	CategoryUC *tree.CategoryUseCase
	PartUC     *part.PartUseCase
	UserUC     *user.UserUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Todas las rutas van protegidas: el
// Bearer Token aporta la identidad que se estampa en el historial.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Identidad autenticada
	userHandler := NewUserHandler(deps.UserUC)
	api.Get("/me", userHandler.Me)

	// Stock items
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/", stockHandler.Create)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Post("/serials/validate", stockHandler.ValidateSerials)
	stockGroup.Get("/:id", stockHandler.GetByID)
	stockGroup.Post("/:id/add", stockHandler.Add)
	stockGroup.Post("/:id/take", stockHandler.Take)
	stockGroup.Post("/:id/stocktake", stockHandler.Stocktake)
	stockGroup.Post("/:id/move", stockHandler.Move)
	stockGroup.Post("/:id/split", stockHandler.Split)
	stockGroup.Post("/:id/serialize", stockHandler.Serialize)
	stockGroup.Get("/:id/tracking", stockHandler.Tracking)
	stockGroup.Get("/:id/barcode", stockHandler.Barcode)

	// Stock locations (árbol)
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Get("/:id/children", locationHandler.Children)
	locations.Put("/:id", locationHandler.Update)
	locations.Post("/:id/reparent", locationHandler.Reparent)
	locations.Delete("/:id", locationHandler.Delete)
	locations.Get("/:id/barcode", locationHandler.Barcode)

	// Part categories (árbol)
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Post("/:id/reparent", categoryHandler.Reparent)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Get("/:id/barcode", categoryHandler.Barcode)

	// Parts (registro mínimo)
	parts := api.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC, deps.StockUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Get("/:id/stock", partHandler.Stock)
}
