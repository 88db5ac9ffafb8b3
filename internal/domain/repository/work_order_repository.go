package repository

import "github.com/mcalvo/bracket-tracker-api/internal/domain/entity"

// WorkOrderRepository define el puerto de persistencia para órdenes de trabajo.
type WorkOrderRepository interface {
	Create(order *entity.WorkOrder) error
	GetByID(id string) (*entity.WorkOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para
	// serializar completaciones concurrentes de la misma orden.
	GetForUpdate(id string) (*entity.WorkOrder, error)
	// MarkCompleted pasa la orden de active a completed. Devuelve cuántas filas
	// cambiaron: 0 significa que la orden ya no estaba activa.
	MarkCompleted(id string) (int64, error)
	// Delete borra la orden solo si sigue activa; devuelve filas afectadas.
	Delete(id string) (int64, error)
	// List devuelve las órdenes por tipo de set y fecha de creación.
	// status vacío = todas.
	List(status string) ([]*entity.WorkOrder, error)
}
