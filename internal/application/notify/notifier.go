// Package notify define el puerto Change Notifier: el core publica un evento
// síncrono después de cada mutación confirmada y el transporte (push, SSE,
// webhook) queda fuera, detrás de la interfaz.
package notify

import (
	"context"
	"time"

	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
)

// Tipos de evento publicados por el core.
const (
	EventPartChanged        = "part_changed"
	EventBatchChanged       = "batch_changed"
	EventWorkOrderCreated   = "work_order_created"
	EventWorkOrderCompleted = "work_order_completed"
	EventWorkOrderDeleted   = "work_order_deleted"
)

// PartChange es el detalle de un part afectado por una mutación del ledger.
type PartChange struct {
	PartNumber  string             `json:"part_number"`
	NewQuantity int64              `json:"new_quantity"`
	Transaction entity.Transaction `json:"transaction"`
}

// Event es la carga publicada al Notifier. Part se llena en part_changed,
// Lines en batch_changed, WorkOrder en los eventos de órdenes.
type Event struct {
	Type      string            `json:"type"`
	Part      *PartChange       `json:"part,omitempty"`
	Lines     []PartChange      `json:"lines,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	WorkOrder *entity.WorkOrder `json:"work_order,omitempty"`
	At        time.Time         `json:"at"`
}

// Notifier recibe eventos después de que la mutación ya está confirmada.
// Es fire-and-forget: una implementación que falle debe resolverlo por su
// cuenta (log, reintento propio); nunca puede revertir ni bloquear la mutación,
// por eso el contrato no devuelve error.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// Func adapta una función a Notifier.
type Func func(ctx context.Context, ev Event)

func (f Func) Notify(ctx context.Context, ev Event) { f(ctx, ev) }

// Noop descarta todos los eventos. Útil en tests y arranques parciales.
type Noop struct{}

func (Noop) Notify(context.Context, Event) {}
