package dto

import "github.com/shopspring/decimal"

// LineItemRequest línea de factura o devolución (SKU, cantidad, precio
// unitario opcional). Si Price es nil se usa el precio de venta del
// producto — el orden de resolución es regla dura, no conveniencia.
type LineItemRequest struct {
	SKU   string           `json:"sku" validate:"required"`
	Qty   int64            `json:"qty" validate:"required,min=1"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	LocationID string            `json:"location_id" validate:"required"`
	CustomerID string            `json:"customer_id,omitempty"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateReturnRequest body para POST /api/returns.
// InvoiceID opcional: si va presente, el validador de elegibilidad debe
// aprobar cada línea antes de contabilizar.
type CreateReturnRequest struct {
	LocationID string            `json:"location_id" validate:"required"`
	InvoiceID  string            `json:"invoice_id,omitempty"`
	CustomerID string            `json:"customer_id,omitempty"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PostedDocResponse respuesta de contabilización (factura o devolución).
type PostedDocResponse struct {
	ID    string `json:"id"`
	DocNo string `json:"doc_no"`
}

// InvoiceLineResponse línea en la respuesta de factura.
type InvoiceLineResponse struct {
	ID        string          `json:"id"`
	LineNo    int             `json:"line_no"`
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku,omitempty"`
	Qty       int64           `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// InvoiceResponse factura con líneas para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID         string                `json:"id"`
	InvoiceNo  string                `json:"invoice_no"`
	CustomerID string                `json:"customer_id,omitempty"`
	LocationID string                `json:"location_id"`
	Date       string                `json:"date"`
	Status     string                `json:"status"`
	Subtotal   decimal.Decimal       `json:"subtotal"`
	Total      decimal.Decimal       `json:"total"`
	Lines      []InvoiceLineResponse `json:"lines"`
}

// ReturnResponse devolución con líneas para GET /api/returns/:id.
type ReturnResponse struct {
	ID          string                `json:"id"`
	ReturnNo    string                `json:"return_no"`
	InvoiceID   string                `json:"invoice_id,omitempty"`
	CustomerID  string                `json:"customer_id,omitempty"`
	LocationID  string                `json:"location_id"`
	Date        string                `json:"date"`
	Status      string                `json:"status"`
	TotalRefund decimal.Decimal       `json:"total_refund"`
	Lines       []InvoiceLineResponse `json:"lines"`
}

// ReturnSummaryLine línea del resumen de elegibilidad de devolución.
type ReturnSummaryLine struct {
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	SoldQty          int64           `json:"sold_qty"`
	AlreadyReturned  int64           `json:"already_returned"`
	RemainingAllowed int64           `json:"remaining_allowed"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}

// ReturnSummaryResponse respuesta de GET /api/invoices/summary.
type ReturnSummaryResponse struct {
	InvoiceID string              `json:"invoice_id"`
	InvoiceNo string              `json:"invoice_no"`
	Total     decimal.Decimal     `json:"total"`
	Lines     []ReturnSummaryLine `json:"lines"`
}
