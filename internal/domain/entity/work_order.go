package entity

import "time"

// Estados de una orden de trabajo. La transición active -> completed ocurre
// exactamente una vez; una orden completada se conserva como historial.
const (
	WorkOrderActive    = "active"
	WorkOrderCompleted = "completed"
)

// WorkOrder representa una orden de trabajo sobre un tipo de set del catálogo.
// OrderNumber es texto libre del cliente y no es único.
type WorkOrder struct {
	ID              string
	OrderNumber     string
	SetType         string
	RequiredSets    int64
	IncludeModifier bool
	Status          string
	CreatedAt       time.Time
	CreatedBy       string
}

// IsActive indica si la orden admite completación o borrado.
func (w *WorkOrder) IsActive() bool { return w.Status == WorkOrderActive }
