package workorder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcalvo/bracket-tracker-api/internal/application/ledger"
	"github.com/mcalvo/bracket-tracker-api/internal/application/notify"
	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/testsupport"
)

type fixture struct {
	uc       *WorkOrderUseCase
	parts    *testsupport.MemoryPartRepo
	txs      *testsupport.MemoryTransactionRepo
	orders   *testsupport.MemoryWorkOrderRepo
	notifier *testsupport.RecordingNotifier
}

func newFixture(parts ...entity.Part) *fixture {
	partRepo := testsupport.NewMemoryPartRepo(parts...)
	txRepo := testsupport.NewMemoryTransactionRepo()
	orderRepo := testsupport.NewMemoryWorkOrderRepo()
	runner := testsupport.NewMemoryTxRunner(partRepo, txRepo, orderRepo)
	notifier := &testsupport.RecordingNotifier{}
	stockLedger := ledger.NewStockLedgerUseCase(runner, partRepo, txRepo, notify.Noop{})
	uc := NewWorkOrderUseCase(runner, stockLedger, orderRepo, partRepo, notifier)
	return &fixture{uc: uc, parts: partRepo, txs: txRepo, orders: orderRepo, notifier: notifier}
}

func h6Parts() []entity.Part {
	return []entity.Part{
		{PartNumber: "H6-1", Family: entity.FamilyH6, Quantity: 15},
		{PartNumber: "H6-2", Family: entity.FamilyH6, Quantity: 12},
		{PartNumber: "H6-3", Family: entity.FamilyH6, Quantity: 8},
		{PartNumber: "H6-4", Family: entity.FamilyH6, Quantity: 10},
	}
}

func TestCreate_OrdenValida(t *testing.T) {
	f := newFixture(h6Parts()...)

	order, err := f.uc.Create(context.Background(), "WO-100", "H6", 3, false, "admin@test.local")

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "WO-100", order.OrderNumber)
	assert.Equal(t, entity.WorkOrderActive, order.Status)
	assert.False(t, order.IncludeModifier)

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.EventWorkOrderCreated, events[0].Type)
}

func TestCreate_OrderNumberDuplicadoPermitido(t *testing.T) {
	f := newFixture(h6Parts()...)

	first, err := f.uc.Create(context.Background(), "WO-100", "H6", 1, false, "admin")
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), "WO-100", "H6", 2, false, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreate_Rechazos(t *testing.T) {
	f := newFixture(h6Parts()...)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "", "H6", 1, false, "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidWorkOrder)

	_, err = f.uc.Create(ctx, "WO-1", "H6", 0, false, "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidWorkOrder)

	_, err = f.uc.Create(ctx, "WO-1", "H8", 1, false, "admin")
	assert.ErrorIs(t, err, domain.ErrUnknownSetType)
}

func TestCreate_ModificadorSeNormalizaSinDeclaracion(t *testing.T) {
	f := newFixture(entity.Part{PartNumber: "H7-282", Family: entity.FamilyH7, Quantity: 5})

	// H7-282 no declara modificador: include_modifier se ignora.
	order, err := f.uc.Create(context.Background(), "WO-7", "H7-282", 1, true, "admin")
	require.NoError(t, err)
	assert.False(t, order.IncludeModifier)
}

func TestComplete_DeduceYMarcaCompletada(t *testing.T) {
	f := newFixture(h6Parts()...)
	ctx := context.Background()

	order, err := f.uc.Create(ctx, "WO-200", "H6", 3, false, "admin")
	require.NoError(t, err)

	completed, err := f.uc.Complete(ctx, order.ID, "operator@test.local")
	require.NoError(t, err)
	assert.Equal(t, entity.WorkOrderCompleted, completed.Status)

	for pn, want := range map[string]int64{"H6-1": 12, "H6-2": 9, "H6-3": 5, "H6-4": 10} {
		part, _ := f.parts.GetByNumber(pn)
		assert.Equal(t, want, part.Quantity, pn)
	}

	rows := f.txs.All()
	require.Len(t, rows, 3, "una línea de log por componente de la receta")
	for _, row := range rows {
		assert.Equal(t, int64(-3), row.Change)
		assert.Equal(t, entity.StationCompletion, row.Station)
		assert.Equal(t, order.ID, row.GroupID, "las líneas comparten la orden como grupo")
		assert.Equal(t, "Work order WO-200 completed", row.Notes)
	}

	stored, _ := f.orders.GetByID(order.ID)
	assert.Equal(t, entity.WorkOrderCompleted, stored.Status)
}

func TestComplete_ConModificadorDeduceCuartoComponente(t *testing.T) {
	f := newFixture(h6Parts()...)
	ctx := context.Background()

	order, err := f.uc.Create(ctx, "WO-201", "H6", 2, true, "admin")
	require.NoError(t, err)

	_, err = f.uc.Complete(ctx, order.ID, "operator")
	require.NoError(t, err)

	part, _ := f.parts.GetByNumber("H6-4")
	assert.Equal(t, int64(8), part.Quantity)
	assert.Len(t, f.txs.All(), 4)
}

func TestComplete_SegundaVezFallaConAlreadyCompleted(t *testing.T) {
	f := newFixture(h6Parts()...)
	ctx := context.Background()

	order, _ := f.uc.Create(ctx, "WO-202", "H6", 1, false, "admin")
	_, err := f.uc.Complete(ctx, order.ID, "operator")
	require.NoError(t, err)

	_, err = f.uc.Complete(ctx, order.ID, "operator")
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)

	// La segunda completación no deduce nada.
	part, _ := f.parts.GetByNumber("H6-1")
	assert.Equal(t, int64(14), part.Quantity)
}

func TestComplete_StockInsuficienteNoMutaNada(t *testing.T) {
	f := newFixture(h6Parts()...)
	ctx := context.Background()

	// H6-3 tiene 8: una orden de 9 sets no alcanza.
	order, _ := f.uc.Create(ctx, "WO-203", "H6", 9, false, "admin")
	_, err := f.uc.Complete(ctx, order.ID, "operator")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortfalls, 1)
	assert.Equal(t, "H6-3", insufficient.Shortfalls[0].PartNumber)
	assert.Equal(t, int64(1), insufficient.Shortfalls[0].Missing)

	for pn, want := range map[string]int64{"H6-1": 15, "H6-2": 12, "H6-3": 8} {
		part, _ := f.parts.GetByNumber(pn)
		assert.Equal(t, want, part.Quantity, pn)
	}
	assert.Empty(t, f.txs.All())

	stored, _ := f.orders.GetByID(order.ID)
	assert.Equal(t, entity.WorkOrderActive, stored.Status, "la orden sigue activa tras el rechazo")
}

func TestComplete_OrdenInexistente(t *testing.T) {
	f := newFixture(h6Parts()...)

	_, err := f.uc.Complete(context.Background(), "no-existe", "operator")
	assert.ErrorIs(t, err, domain.ErrInvalidWorkOrder)
}

func TestFulfillmentStatus_ReportaFaltantesSinMutar(t *testing.T) {
	f := newFixture(h6Parts()...)
	ctx := context.Background()

	order, _ := f.uc.Create(ctx, "WO-204", "H6", 10, false, "admin")
	status, err := f.uc.FulfillmentStatus(order.ID)

	require.NoError(t, err)
	assert.False(t, status.Ready)
	require.Len(t, status.Components, 3)

	byPart := make(map[string]ComponentStatus)
	for _, c := range status.Components {
		byPart[c.PartNumber] = c
	}
	assert.Equal(t, int64(0), byPart["H6-1"].Shortfall)
	assert.Equal(t, int64(2), byPart["H6-3"].Shortfall)
	assert.Equal(t, int64(8), byPart["H6-3"].Available)

	// La consulta no toca stock ni log.
	part, _ := f.parts.GetByNumber("H6-3")
	assert.Equal(t, int64(8), part.Quantity)
	assert.Empty(t, f.txs.All())
}

func TestFulfillmentStatus_ListaParaCompletar(t *testing.T) {
	f := newFixture(h6Parts()...)
	ctx := context.Background()

	order, _ := f.uc.Create(ctx, "WO-205", "H6", 8, false, "admin")
	status, err := f.uc.FulfillmentStatus(order.ID)

	require.NoError(t, err)
	assert.True(t, status.Ready)
	for _, c := range status.Components {
		assert.Zero(t, c.Shortfall)
	}
}

func TestDelete_SoloOrdenesActivas(t *testing.T) {
	f := newFixture(h6Parts()...)
	ctx := context.Background()

	order, _ := f.uc.Create(ctx, "WO-206", "H6", 1, false, "admin")
	require.NoError(t, f.uc.Delete(ctx, order.ID))

	// Borrar dos veces falla: la orden ya no existe.
	err := f.uc.Delete(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidWorkOrder)

	completedOrder, _ := f.uc.Create(ctx, "WO-207", "H6", 1, false, "admin")
	_, err = f.uc.Complete(ctx, completedOrder.ID, "operator")
	require.NoError(t, err)

	err = f.uc.Delete(ctx, completedOrder.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)

	stored, _ := f.orders.GetByID(completedOrder.ID)
	require.NotNil(t, stored, "la orden completada se conserva como historial")
}

func TestDelete_NoRevierteStock(t *testing.T) {
	f := newFixture(h6Parts()...)
	ctx := context.Background()

	order, _ := f.uc.Create(ctx, "WO-208", "H6", 2, false, "admin")
	require.NoError(t, f.uc.Delete(ctx, order.ID))

	part, _ := f.parts.GetByNumber("H6-1")
	assert.Equal(t, int64(15), part.Quantity)
	assert.Empty(t, f.txs.All())
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(h6Parts()...)
	ctx := context.Background()

	active, _ := f.uc.Create(ctx, "WO-209", "H6", 1, false, "admin")
	done, _ := f.uc.Create(ctx, "WO-210", "H6", 1, false, "admin")
	_, err := f.uc.Complete(ctx, done.ID, "operator")
	require.NoError(t, err)

	actives, err := f.uc.List(entity.WorkOrderActive)
	require.NoError(t, err)
	require.Len(t, actives, 1)
	assert.Equal(t, active.ID, actives[0].ID)

	all, err := f.uc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.uc.List("archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
