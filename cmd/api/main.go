package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/retail-ledger-api/internal/application/billing"
	"github.com/tu-usuario/retail-ledger-api/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger-api/internal/application/usecase"
	infrabarcode "github.com/tu-usuario/retail-ledger-api/internal/infrastructure/barcode"
	infrapdf "github.com/tu-usuario/retail-ledger-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/retail-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/retail-ledger-api/internal/interfaces/http"
	"github.com/tu-usuario/retail-ledger-api/pkg/config"
	"github.com/tu-usuario/retail-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	ledgerRepo := postgres.NewStockLedgerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	barcodeRenderer := infrabarcode.NewCode128Renderer()
	productUC := usecase.NewProductUseCase(productRepo, barcodeRenderer)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)

	movementUC := inventory.NewMovementUseCase(txRunner, productRepo, locationRepo)
	inventoryQueryUC := inventory.NewQueryUseCase(productRepo, balanceRepo, ledgerRepo)

	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		txRunner, productRepo, locationRepo, customerRepo, invoiceRepo,
	)
	createReturnUC := billing.NewCreateReturnUseCase(
		txRunner, productRepo, locationRepo, customerRepo, invoiceRepo, returnRepo,
	)

	// PDF: representación gráfica de la factura
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoicePDFUC := billing.NewPDFUseCase(
		invoiceRepo, customerRepo, locationRepo, productRepo, pdfGenerator,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Retail Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		LocationUC:    locationUC,
		CustomerUC:    customerUC,
		MovementUC:    movementUC,
		InventoryQ:    inventoryQueryUC,
		CreateInvoice: createInvoiceUC,
		CreateReturn:  createReturnUC,
		InvoicePDF:    invoicePDFUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
