package dto

import "github.com/shopspring/decimal"

// StockInRequest body para POST /api/inventory/stock-in.
// UnitCost opcional: si va presente se recalcula el costo promedio
// ponderado del producto; si no, el asiento toma el costo actual.
type StockInRequest struct {
	LocationID  string           `json:"location_id" validate:"required"`
	SKU         string           `json:"sku" validate:"required"`
	Qty         int64            `json:"qty" validate:"required,min=1"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceNo string           `json:"reference_no,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// AdjustRequest body para POST /api/inventory/adjust. Qty es el delta con
// signo; un ajuste negativo que dejara el saldo bajo cero se rechaza.
type AdjustRequest struct {
	LocationID string `json:"location_id" validate:"required"`
	SKU        string `json:"sku" validate:"required"`
	Qty        int64  `json:"qty" validate:"required"`
	Notes      string `json:"notes" validate:"required"`
}

// BalanceResponse respuesta de GET /api/inventory/balance.
type BalanceResponse struct {
	SKU        string `json:"sku"`
	LocationID string `json:"location_id"`
	OnHand     int64  `json:"on_hand"`
	Reserved   int64  `json:"reserved"`
	Available  int64  `json:"available"`
}

// ReconciliationResponse respuesta de GET /api/inventory/reconcile.
// LedgerOnHand es el saldo derivado del libro (IN + RETURN - OUT + ADJUST,
// los asientos ADJUST llevan signo); Consistent indica si coincide con el
// saldo materializado.
type ReconciliationResponse struct {
	SKU          string           `json:"sku"`
	LocationID   string           `json:"location_id"`
	OnHand       int64            `json:"on_hand"`
	LedgerOnHand int64            `json:"ledger_on_hand"`
	Consistent   bool             `json:"consistent"`
	Sums         map[string]int64 `json:"sums_by_movement_type"`
}

// LedgerEntryResponse asiento del libro en respuestas de solo lectura.
type LedgerEntryResponse struct {
	ID               string          `json:"id"`
	DateTime         string          `json:"date_time"`
	ProductID        string          `json:"product_id"`
	LocationID       string          `json:"location_id"`
	MovementType     string          `json:"movement_type"`
	Qty              int64           `json:"qty"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	UnitSellingPrice decimal.Decimal `json:"unit_selling_price"`
	ReferenceType    string          `json:"reference_type,omitempty"`
	ReferenceNo      string          `json:"reference_no,omitempty"`
	CustomerName     string          `json:"customer_name,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}
