package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger-api/internal/application/billing"
	"github.com/tu-usuario/retail-ledger-api/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	LocationUC    *usecase.LocationUseCase
	CustomerUC    *usecase.CustomerUseCase
	MovementUC    *inventory.MovementUseCase
	InventoryQ    *inventory.QueryUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	CreateReturn  *billing.CreateReturnUseCase
	InvoicePDF    *billing.PDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products (catálogo)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/scan", productHandler.Scan)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/barcode.png", productHandler.BarcodePNG)

	// Locations
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Inventory (movimientos y consultas)
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.InventoryQ)
	invGroup.Post("/stock-in", inventoryHandler.StockIn)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Get("/balance", inventoryHandler.Balance)
	invGroup.Get("/reconcile", inventoryHandler.Reconcile)
	invGroup.Get("/ledger", inventoryHandler.Ledger)

	// Invoices (contabilización)
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.CreateReturn, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/summary", invoiceHandler.ReturnSummary)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Returns (contabilización)
	returns := api.Group("/returns")
	returnHandler := NewReturnHandler(deps.CreateReturn)
	returns.Post("/", returnHandler.Create)
	returns.Get("/:id", returnHandler.GetByID)
}
