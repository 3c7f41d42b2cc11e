package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/retail-ledger-api/internal/domain"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// InvoiceLineForPDF línea de factura enriquecida con datos del producto
// para el render.
type InvoiceLineForPDF struct {
	entity.InvoiceLine
	SKU         string
	ProductName string
}

// InvoicePDFGenerator puerto de render del documento de factura. El render
// vive fuera del núcleo de contabilización: lee documentos ya POSTED.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer, location *entity.StockLocation, lines []InvoiceLineForPDF) ([]byte, error)
}

// PDFUseCase genera la representación gráfica (PDF) de una factura contabilizada.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF recupera la factura con sus líneas, las enriquece con
// SKU y nombre de producto y genera el PDF.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	var customer *entity.Customer
	if inv.CustomerID != "" {
		customer, _ = uc.customerRepo.GetByID(inv.CustomerID)
	}
	location, err := uc.locationRepo.GetByID(inv.LocationID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener ubicación: %w", err)
	}

	rawLines, err := uc.invoiceRepo.GetLines(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	enriched := make([]InvoiceLineForPDF, 0, len(rawLines))
	for _, l := range rawLines {
		sku, name := l.ProductID, "Producto "+l.ProductID // fallback
		if product, pErr := uc.productRepo.GetByID(l.ProductID); pErr == nil && product != nil {
			sku, name = product.SKU, product.Name
		}
		enriched = append(enriched, InvoiceLineForPDF{
			InvoiceLine: *l,
			SKU:         sku,
			ProductName: name,
		})
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, customer, location, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.InvoiceNo), nil
}
