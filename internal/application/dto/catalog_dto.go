package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Color        string          `json:"color,omitempty"`
	Size         string          `json:"size,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	IsActive     *bool           `json:"is_active,omitempty"` // nil = activo
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name         string          `json:"name" validate:"required"`
	Color        string          `json:"color,omitempty"`
	Size         string          `json:"size,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	IsActive     bool            `json:"is_active"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Color        string          `json:"color,omitempty"`
	Size         string          `json:"size,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	BarcodeValue string          `json:"barcode_value,omitempty"`
	IsActive     bool            `json:"is_active"`
}

// ScanResponse respuesta de GET /api/scan (resolución por SKU o barcode).
type ScanResponse struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	IsActive bool            `json:"is_active"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required"`
}

// LocationResponse ubicación en respuestas.
type LocationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	CustomerType string `json:"customer_type,omitempty" validate:"omitempty,oneof=retail wholesale local_supply"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	CustomerType string `json:"customer_type"`
}
