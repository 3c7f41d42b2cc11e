package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger-api/internal/application/billing"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	createUC *billing.CreateInvoiceUseCase
	returnUC *billing.CreateReturnUseCase
	pdfUC    *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(createUC *billing.CreateInvoiceUseCase, returnUC *billing.CreateReturnUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{createUC: createUC, returnUC: returnUC, pdfUC: pdfUC}
}

// Create contabiliza una factura y descuenta inventario (todo o nada).
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	posted, err := h.createUC.CreateInvoice(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(posted)
}

// GetByID obtiene el detalle completo de una factura.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	invoice, err := h.createUC.GetInvoice(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(invoice)
}

// ReturnSummary muestra, por SKU, lo vendido, lo ya devuelto y lo aún
// elegible para devolución de una factura.
// GET /api/invoices/summary?invoice_no=INV-00042
func (h *InvoiceHandler) ReturnSummary(c *fiber.Ctx) error {
	invoiceNo := c.Query("invoice_no")
	if invoiceNo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invoice_no requerido"})
	}
	summary, err := h.returnUC.GetInvoiceReturnSummary(c.Context(), invoiceNo)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(summary)
}

// DownloadPDF genera y descarga la factura en PDF.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
