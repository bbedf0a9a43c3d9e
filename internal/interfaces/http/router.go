package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/megamind/stockmanager-api/internal/application/auth"
	salepkg "github.com/megamind/stockmanager-api/internal/application/sale"
	stockapp "github.com/megamind/stockmanager-api/internal/application/stock"
	"github.com/megamind/stockmanager-api/internal/application/usecase"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	CustomerUC *usecase.CustomerUseCase
	StockUC    *stockapp.UseCase
	SaleUC     *salepkg.UseCase

	CardPDFGen stockapp.CardPDFGenerator

	JWTSecret        string
	ReportPageSize   int
	CardCarryForward bool
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Sales
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/top-products", saleHandler.TopProducts)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/invoice.pdf", saleHandler.InvoicePDF)

	// Stock (grand livre)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.CardPDFGen, deps.ReportPageSize, deps.CardCarryForward)
	// la création de mouvement est réservée aux rôles admin et manager
	stockGroup.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleManager), stockHandler.CreateMovement)
	stockGroup.Get("/products/:id/history", stockHandler.History)
	stockGroup.Get("/products/:id/stock-card", stockHandler.StockCard)
	stockGroup.Get("/products/:id/stock-card.pdf", stockHandler.StockCardPDF)
	stockGroup.Get("/entries", stockHandler.Entries)
	stockGroup.Get("/exits", stockHandler.Exits)
	stockGroup.Get("/entries/period", stockHandler.EntriesByPeriod)
	stockGroup.Get("/exits/period", stockHandler.ExitsByPeriod)
}
