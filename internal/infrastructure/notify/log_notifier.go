package notify

import (
	"context"

	appnotify "github.com/mcalvo/bracket-tracker-api/internal/application/notify"
	"github.com/mcalvo/bracket-tracker-api/pkg/logger"
)

// LogNotifier escribe cada evento al log estructurado. Sirve como rastro de
// auditoría operativo además del log de transacciones en BD.
type LogNotifier struct {
	log *logger.Logger
}

var _ appnotify.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, ev appnotify.Event) {
	evt := n.log.Info().Str("event", ev.Type)
	if ev.Part != nil {
		evt = evt.Str("part_number", ev.Part.PartNumber).Int64("new_quantity", ev.Part.NewQuantity)
	}
	if len(ev.Lines) > 0 {
		evt = evt.Int("lines", len(ev.Lines))
	}
	if ev.WorkOrder != nil {
		evt = evt.Str("work_order", ev.WorkOrder.OrderNumber).Str("set_type", ev.WorkOrder.SetType)
	}
	if ev.Reason != "" {
		evt = evt.Str("reason", ev.Reason)
	}
	evt.Msg("cambio de inventario")
}

// Composite entrega el mismo evento a varios notifiers en orden.
type Composite []appnotify.Notifier

var _ appnotify.Notifier = (Composite)(nil)

func (c Composite) Notify(ctx context.Context, ev appnotify.Event) {
	for _, n := range c {
		n.Notify(ctx, ev)
	}
}
