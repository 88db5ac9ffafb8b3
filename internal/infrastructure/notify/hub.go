// Package notify contiene los adaptadores del puerto Change Notifier: hub de
// suscriptores para SSE, logging estructurado y composición de varios sinks.
package notify

import (
	"context"
	"sync"

	appnotify "github.com/mcalvo/bracket-tracker-api/internal/application/notify"
)

// Hub reparte eventos a suscriptores en memoria (una conexión SSE por
// suscriptor). La entrega es best-effort: si el canal de un suscriptor está
// lleno el evento se descarta para ese suscriptor, nunca se bloquea al core.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int]chan appnotify.Event
}

var _ appnotify.Notifier = (*Hub)(nil)

// NewHub crea el hub sin suscriptores.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan appnotify.Event)}
}

// Subscribe registra un suscriptor y devuelve su canal junto con la función de
// baja. El canal se cierra al darse de baja.
func (h *Hub) Subscribe() (<-chan appnotify.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan appnotify.Event, 16)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Notify entrega el evento a todos los suscriptores sin bloquear.
func (h *Hub) Notify(_ context.Context, ev appnotify.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			// suscriptor lento: se pierde este evento para él
		}
	}
}

// Subscribers devuelve cuántas conexiones están suscritas.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
