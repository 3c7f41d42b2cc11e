package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Items   []ErrorItem `json:"items,omitempty"`
}

// ErrorItem rechazo estructurado por línea (validación de devoluciones,
// stock insuficiente). Los contadores solo aplican según el código.
type ErrorItem struct {
	SKU             string `json:"sku"`
	Code            string `json:"code"`
	OnHand          *int64 `json:"on_hand,omitempty"`
	Sold            *int64 `json:"sold,omitempty"`
	AlreadyReturned *int64 `json:"already_returned,omitempty"`
	Remaining       *int64 `json:"remaining_allowed,omitempty"`
	Requested       *int64 `json:"requested,omitempty"`
}
