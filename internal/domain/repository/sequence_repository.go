package repository

// Nombres de secuencias de numeración de documentos.
const (
	SequenceInvoice = "invoice_no"
	SequenceReturn  = "return_no"
)

// SequenceRepository asigna consecutivos monotónicos para numerar
// documentos. Next no participa del rollback de la transacción (semántica
// nextval de PostgreSQL): los huecos por rollback son aceptados a cambio
// de no serializar todas las contabilizaciones en una misma fila.
type SequenceRepository interface {
	Next(name string) (int64, error)
}
