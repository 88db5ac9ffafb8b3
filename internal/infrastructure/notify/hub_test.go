package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appnotify "github.com/mcalvo/bracket-tracker-api/internal/application/notify"
)

func TestHub_EntregaATodosLosSuscriptores(t *testing.T) {
	hub := NewHub()
	ch1, cancel1 := hub.Subscribe()
	ch2, cancel2 := hub.Subscribe()
	defer cancel1()
	defer cancel2()

	assert.Equal(t, 2, hub.Subscribers())

	hub.Notify(context.Background(), appnotify.Event{Type: appnotify.EventPartChanged})

	ev1 := <-ch1
	ev2 := <-ch2
	assert.Equal(t, appnotify.EventPartChanged, ev1.Type)
	assert.Equal(t, appnotify.EventPartChanged, ev2.Type)
}

func TestHub_BajaCierraElCanal(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()

	cancel()
	_, ok := <-ch
	assert.False(t, ok, "el canal se cierra al darse de baja")
	assert.Zero(t, hub.Subscribers())

	// Una segunda baja no debe hacer pánico.
	cancel()
}

func TestHub_SuscriptorLentoNoBloquea(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	defer cancel()

	// El canal tiene buffer 16; llenarlo de sobra no debe bloquear Notify.
	for i := 0; i < 50; i++ {
		hub.Notify(context.Background(), appnotify.Event{Type: appnotify.EventBatchChanged})
	}
}

func TestComposite_EntregaEnOrden(t *testing.T) {
	var order []string
	first := appnotify.Func(func(_ context.Context, _ appnotify.Event) { order = append(order, "first") })
	second := appnotify.Func(func(_ context.Context, _ appnotify.Event) { order = append(order, "second") })

	Composite{first, second}.Notify(context.Background(), appnotify.Event{})

	require.Equal(t, []string{"first", "second"}, order)
}
