// Package webhook envía alertas de inventario a un endpoint de chat externo.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	appnotify "github.com/mcalvo/bracket-tracker-api/internal/application/notify"
	"github.com/mcalvo/bracket-tracker-api/pkg/logger"
)

// Notifier publica alertas vía POST JSON. Solo reacciona a completaciones de
// órdenes y a parts que quedan en nivel crítico; el resto de eventos se ignora.
// El envío corre en una goroutine propia y nunca propaga fallos al core.
type Notifier struct {
	client *http.Client
	log    *logger.Logger

	// urlFn y criticalFn leen la configuración vigente en el momento del evento,
	// así un cambio de settings aplica sin reiniciar.
	urlFn      func() string
	criticalFn func() int64
}

var _ appnotify.Notifier = (*Notifier)(nil)

// NewNotifier construye el adaptador. urlFn devuelve el endpoint actual (vacío
// = deshabilitado); criticalFn el umbral crítico vigente.
func NewNotifier(log *logger.Logger, urlFn func() string, criticalFn func() int64) *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: 5 * time.Second},
		log:        log,
		urlFn:      urlFn,
		criticalFn: criticalFn,
	}
}

type payload struct {
	Text string `json:"text"`
}

func (n *Notifier) Notify(_ context.Context, ev appnotify.Event) {
	url := n.urlFn()
	if url == "" {
		return
	}
	messages := n.messagesFor(ev)
	if len(messages) == 0 {
		return
	}
	go func() {
		for _, msg := range messages {
			n.post(url, msg)
		}
	}()
}

func (n *Notifier) messagesFor(ev appnotify.Event) []string {
	var out []string
	if ev.Type == appnotify.EventWorkOrderCompleted && ev.WorkOrder != nil {
		out = append(out, fmt.Sprintf("Orden de trabajo %s completada: %d set(s) %s",
			ev.WorkOrder.OrderNumber, ev.WorkOrder.RequiredSets, ev.WorkOrder.SetType))
	}
	critical := n.criticalFn()
	check := func(ch appnotify.PartChange) {
		if ch.NewQuantity <= critical {
			out = append(out, fmt.Sprintf("Stock crítico: %s quedó en %d unidades",
				ch.PartNumber, ch.NewQuantity))
		}
	}
	if ev.Part != nil {
		check(*ev.Part)
	}
	for _, ln := range ev.Lines {
		check(ln)
	}
	return out
}

func (n *Notifier) post(url, text string) {
	body, err := json.Marshal(payload{Text: text})
	if err != nil {
		return
	}
	resp, err := n.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		n.log.Warn().Err(err).Msg("webhook: envío fallido")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.log.Warn().Int("status", resp.StatusCode).Msg("webhook: respuesta no exitosa")
	}
}
