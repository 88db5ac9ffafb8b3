package entity

import "time"

// Familias de producto (orden fijo de presentación).
const (
	FamilyH6 = "H6"
	FamilyH7 = "H7"
	FamilyH9 = "H9"
)

// Estados de stock para clasificación visual. Nunca bloquean operaciones.
const (
	StockStateOK       = "ok"
	StockStateLow      = "low"
	StockStateCritical = "critical"
)

// Part representa un componente físico (bracket) del catálogo.
// Quantity solo se muta a través del Stock Ledger; el invariante Quantity >= 0
// se valida en el caso de uso y se respalda con un CHECK en la tabla.
type Part struct {
	PartNumber string
	Name       string
	Family     string
	Quantity   int64
	MinStock   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StockState clasifica la cantidad actual frente a los umbrales. criticalAt y
// defaultMin vienen de StockSettings; el MinStock propio del part tiene prioridad.
func (p *Part) StockState(criticalAt, defaultMin int64) string {
	min := p.MinStock
	if min <= 0 {
		min = defaultMin
	}
	switch {
	case p.Quantity <= criticalAt:
		return StockStateCritical
	case p.Quantity <= min:
		return StockStateLow
	default:
		return StockStateOK
	}
}
