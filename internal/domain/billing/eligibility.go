package billing

import (
	"github.com/tu-usuario/retail-ledger-api/internal/domain"
)

// RequestedLine es una línea solicitada en una devolución (por SKU).
type RequestedLine struct {
	SKU string
	Qty int64
}

// ValidateReturn calcula la elegibilidad de una devolución contra una
// factura (servicio de dominio, puro). sold y alreadyReturned son los
// agregados por SKU de la factura y de todas las devoluciones que la
// referencian; requested puede traer SKUs repetidos y se suman.
//
// Lista vacía => elegible. La lectura de los agregados debe hacerse bajo
// la misma transacción que escribirá las líneas de devolución, con la
// fila de la factura bloqueada (ver motor de devoluciones).
func ValidateReturn(sold, alreadyReturned map[string]int64, requested []RequestedLine) []domain.ReturnRejection {
	wanted := make(map[string]int64, len(requested))
	order := make([]string, 0, len(requested))
	for _, line := range requested {
		if _, seen := wanted[line.SKU]; !seen {
			order = append(order, line.SKU)
		}
		wanted[line.SKU] += line.Qty
	}

	var rejections []domain.ReturnRejection
	for _, sku := range order {
		req := wanted[sku]
		soldQty := sold[sku]
		retQty := alreadyReturned[sku]
		remaining := soldQty - retQty
		if remaining < 0 {
			remaining = 0
		}
		switch {
		case soldQty <= 0:
			rejections = append(rejections, domain.ReturnRejection{
				SKU:       sku,
				Reason:    domain.ErrReturnNotSold,
				Requested: req,
			})
		case req > remaining:
			rejections = append(rejections, domain.ReturnRejection{
				SKU:             sku,
				Reason:          domain.ErrReturnExceedsAllowed,
				Sold:            soldQty,
				AlreadyReturned: retQty,
				Remaining:       remaining,
				Requested:       req,
			})
		}
	}
	return rejections
}
