package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/mcalvo/bracket-tracker-api/internal/application/ledger"
	"github.com/mcalvo/bracket-tracker-api/internal/infrastructure/notify"
)

// EventsHandler expone los cambios de inventario como Server-Sent Events.
type EventsHandler struct {
	hub      *notify.Hub
	ledgerUC *ledger.StockLedgerUseCase
}

// NewEventsHandler construye el handler de SSE.
func NewEventsHandler(hub *notify.Hub, ledgerUC *ledger.StockLedgerUseCase) *EventsHandler {
	return &EventsHandler{hub: hub, ledgerUC: ledgerUC}
}

type snapshotPart struct {
	PartNumber string `json:"part_number"`
	Quantity   int64  `json:"quantity"`
}

type snapshotActivity struct {
	PartNumber string    `json:"part_number"`
	Change     int64     `json:"change"`
	Station    string    `json:"station"`
	Actor      string    `json:"actor"`
	CreatedAt  time.Time `json:"created_at"`
}

type snapshotPayload struct {
	Parts    []snapshotPart     `json:"parts"`
	Activity []snapshotActivity `json:"recent_activity"`
}

// snapshot arma el estado inicial que recibe cada cliente al conectarse: las
// cantidades actuales y los últimos 10 movimientos del ledger.
func (h *EventsHandler) snapshot() (snapshotPayload, error) {
	var payload snapshotPayload
	parts, err := h.ledgerUC.ListParts()
	if err != nil {
		return payload, err
	}
	for _, p := range parts {
		payload.Parts = append(payload.Parts, snapshotPart{PartNumber: p.PartNumber, Quantity: p.Quantity})
	}
	recent, err := h.ledgerUC.History("", 10)
	if err != nil {
		return payload, err
	}
	for _, tx := range recent {
		payload.Activity = append(payload.Activity, snapshotActivity{
			PartNumber: tx.PartNumber,
			Change:     tx.Change,
			Station:    tx.Station,
			Actor:      tx.Actor,
			CreatedAt:  tx.CreatedAt,
		})
	}
	return payload, nil
}

// Stream godoc
// @Summary      Stream SSE de cambios de inventario
// @Tags         events
// @Produce      text/event-stream
// @Router       /api/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	initial, err := h.snapshot()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("snapshot inicial no disponible")
	}
	events, cancel := h.hub.Subscribe()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		if data, err := json.Marshal(initial); err == nil {
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
			if err := w.Flush(); err != nil {
				return
			}
		}

		// Keepalive periódico: detecta clientes desconectados aunque no haya
		// eventos que enviar.
		keepalive := time.NewTicker(25 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}
