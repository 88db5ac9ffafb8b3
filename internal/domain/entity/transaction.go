package entity

import "time"

// Estaciones conocidas. Station es una etiqueta libre en la transacción; estas
// constantes cubren los flujos del sistema de referencia.
const (
	StationPrinting   = "Printing Station"
	StationPicking    = "Picking Station"
	StationInventory  = "Inventory Management"
	StationCompletion = "Work Order Completion"
)

// Transaction es una línea inmutable del log de auditoría del Stock Ledger.
// Una fila por cada ajuste aplicado, incluidas las líneas individuales de la
// completación de una orden de trabajo. Nunca se actualiza ni se borra.
type Transaction struct {
	ID         int64  // asignado por la BD (monotónico)
	GroupID    string // agrupa las líneas de un mismo batch; vacío en ajustes sueltos
	PartNumber string
	Change     int64 // con signo: positivo entrada, negativo salida
	Station    string
	Notes      string
	Actor      string
	CreatedAt  time.Time
}
