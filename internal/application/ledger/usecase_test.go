package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/testsupport"
)

func newLedgerFixture(parts ...entity.Part) (*StockLedgerUseCase, *testsupport.MemoryPartRepo, *testsupport.MemoryTransactionRepo, *testsupport.RecordingNotifier) {
	partRepo := testsupport.NewMemoryPartRepo(parts...)
	txRepo := testsupport.NewMemoryTransactionRepo()
	orderRepo := testsupport.NewMemoryWorkOrderRepo()
	runner := testsupport.NewMemoryTxRunner(partRepo, txRepo, orderRepo)
	notifier := &testsupport.RecordingNotifier{}
	uc := NewStockLedgerUseCase(runner, partRepo, txRepo, notifier)
	return uc, partRepo, txRepo, notifier
}

func TestAdjust_AplicaDeltaYRegistraTransaccion(t *testing.T) {
	uc, partRepo, txRepo, notifier := newLedgerFixture(
		entity.Part{PartNumber: "H6-1", Family: entity.FamilyH6, Quantity: 15},
	)

	qty, err := uc.Adjust(context.Background(), Line{
		PartNumber: "H6-1",
		Change:     -5,
		Station:    entity.StationPicking,
		Notes:      "picking turno mañana",
	}, "operator@test.local")

	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)

	part, err := partRepo.GetByNumber("H6-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), part.Quantity)

	rows := txRepo.All()
	require.Len(t, rows, 1)
	assert.Equal(t, "H6-1", rows[0].PartNumber)
	assert.Equal(t, int64(-5), rows[0].Change)
	assert.Equal(t, entity.StationPicking, rows[0].Station)
	assert.Equal(t, "operator@test.local", rows[0].Actor)
	assert.Empty(t, rows[0].GroupID)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "part_changed", events[0].Type)
	require.NotNil(t, events[0].Part)
	assert.Equal(t, int64(10), events[0].Part.NewQuantity)
}

func TestAdjust_RechazaCantidadNegativa(t *testing.T) {
	uc, partRepo, txRepo, notifier := newLedgerFixture(
		entity.Part{PartNumber: "H6-3", Family: entity.FamilyH6, Quantity: 8},
	)

	_, err := uc.Adjust(context.Background(), Line{
		PartNumber: "H6-3",
		Change:     -9,
		Station:    entity.StationPicking,
	}, "operator@test.local")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortfalls, 1)
	assert.Equal(t, "H6-3", insufficient.Shortfalls[0].PartNumber)
	assert.Equal(t, int64(9), insufficient.Shortfalls[0].Requested)
	assert.Equal(t, int64(8), insufficient.Shortfalls[0].Available)
	assert.Equal(t, int64(1), insufficient.Shortfalls[0].Missing)

	part, _ := partRepo.GetByNumber("H6-3")
	assert.Equal(t, int64(8), part.Quantity, "la cantidad no debe cambiar en rechazo")
	assert.Empty(t, txRepo.All(), "el log no debe registrar intentos rechazados")
	assert.Empty(t, notifier.Events())
}

func TestAdjust_PartDesconocido(t *testing.T) {
	uc, _, txRepo, _ := newLedgerFixture()

	_, err := uc.Adjust(context.Background(), Line{
		PartNumber: "ZZ-99",
		Change:     1,
		Station:    entity.StationPrinting,
	}, "operator@test.local")

	assert.ErrorIs(t, err, domain.ErrUnknownPart)
	assert.Empty(t, txRepo.All())
}

func TestAdjust_EntradaInvalida(t *testing.T) {
	uc, _, _, _ := newLedgerFixture(
		entity.Part{PartNumber: "H6-1", Family: entity.FamilyH6, Quantity: 15},
	)

	cases := []Line{
		{PartNumber: "", Change: 1, Station: entity.StationPrinting},
		{PartNumber: "H6-1", Change: 0, Station: entity.StationPrinting},
		{PartNumber: "H6-1", Change: 1, Station: "  "},
	}
	for _, line := range cases {
		_, err := uc.Adjust(context.Background(), line, "operator@test.local")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAdjustBatch_TodoONada(t *testing.T) {
	uc, partRepo, txRepo, notifier := newLedgerFixture(
		entity.Part{PartNumber: "H6-1", Family: entity.FamilyH6, Quantity: 15},
		entity.Part{PartNumber: "H6-2", Family: entity.FamilyH6, Quantity: 12},
		entity.Part{PartNumber: "H6-3", Family: entity.FamilyH6, Quantity: 8},
	)

	lines := []Line{
		{PartNumber: "H6-1", Change: -3, Station: entity.StationPicking},
		{PartNumber: "H6-2", Change: -3, Station: entity.StationPicking},
		{PartNumber: "H6-3", Change: -10, Station: entity.StationPicking},
	}
	_, err := uc.AdjustBatch(context.Background(), lines, "operator@test.local", "picking")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ninguna línea del batch se aplica, ni siquiera las que sí alcanzaban.
	for pn, want := range map[string]int64{"H6-1": 15, "H6-2": 12, "H6-3": 8} {
		part, _ := partRepo.GetByNumber(pn)
		assert.Equal(t, want, part.Quantity, pn)
	}
	assert.Empty(t, txRepo.All())
	assert.Empty(t, notifier.Events())
}

func TestAdjustBatch_ExitoRegistraGrupoYNotificaUnaVez(t *testing.T) {
	uc, partRepo, txRepo, notifier := newLedgerFixture(
		entity.Part{PartNumber: "H9-1", Family: entity.FamilyH9, Quantity: 20},
		entity.Part{PartNumber: "H9-2", Family: entity.FamilyH9, Quantity: 18},
	)

	lines := []Line{
		{PartNumber: "H9-1", Change: -4, Station: entity.StationPicking},
		{PartNumber: "H9-2", Change: -4, Station: entity.StationPicking},
	}
	quantities, err := uc.AdjustBatch(context.Background(), lines, "operator@test.local", "picking H9")

	require.NoError(t, err)
	assert.Equal(t, []int64{16, 14}, quantities)

	rows := txRepo.All()
	require.Len(t, rows, 2)
	assert.NotEmpty(t, rows[0].GroupID)
	assert.Equal(t, rows[0].GroupID, rows[1].GroupID, "las líneas de un batch comparten group_id")
	assert.Less(t, rows[0].ID, rows[1].ID, "los IDs del log son monotónicos")

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "batch_changed", events[0].Type)
	assert.Len(t, events[0].Lines, 2)
	assert.Equal(t, "picking H9", events[0].Reason)

	part, _ := partRepo.GetByNumber("H9-1")
	assert.Equal(t, int64(16), part.Quantity)
}

func TestAdjustBatch_LineasRepetidasSeValidanAcumuladas(t *testing.T) {
	uc, partRepo, txRepo, _ := newLedgerFixture(
		entity.Part{PartNumber: "H7-282", Family: entity.FamilyH7, Quantity: 5},
	)

	// Dos líneas de -3 sobre un stock de 5: individualmente caben, juntas no.
	lines := []Line{
		{PartNumber: "H7-282", Change: -3, Station: entity.StationPicking},
		{PartNumber: "H7-282", Change: -3, Station: entity.StationPicking},
	}
	_, err := uc.AdjustBatch(context.Background(), lines, "operator@test.local", "doble picking")

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	part, _ := partRepo.GetByNumber("H7-282")
	assert.Equal(t, int64(5), part.Quantity)
	assert.Empty(t, txRepo.All())
}

func TestPhysicalCount_RegistraDiferencia(t *testing.T) {
	uc, partRepo, txRepo, notifier := newLedgerFixture(
		entity.Part{PartNumber: "H9-3", Family: entity.FamilyH9, Quantity: 6},
	)

	delta, qty, err := uc.PhysicalCount(context.Background(), "H9-3", 4, "admin@test.local")

	require.NoError(t, err)
	assert.Equal(t, int64(-2), delta)
	assert.Equal(t, int64(4), qty)

	part, _ := partRepo.GetByNumber("H9-3")
	assert.Equal(t, int64(4), part.Quantity)

	rows := txRepo.All()
	require.Len(t, rows, 1)
	assert.Equal(t, entity.StationInventory, rows[0].Station)
	assert.Equal(t, "Physical count adjustment: 6 -> 4", rows[0].Notes)
	assert.Len(t, notifier.Events(), 1)
}

func TestPhysicalCount_SinDiferenciaNoEscribe(t *testing.T) {
	uc, _, txRepo, notifier := newLedgerFixture(
		entity.Part{PartNumber: "H9-3", Family: entity.FamilyH9, Quantity: 6},
	)

	delta, qty, err := uc.PhysicalCount(context.Background(), "H9-3", 6, "admin@test.local")

	require.NoError(t, err)
	assert.Zero(t, delta)
	assert.Equal(t, int64(6), qty)
	assert.Empty(t, txRepo.All())
	assert.Empty(t, notifier.Events())
}

func TestQuantityOf(t *testing.T) {
	uc, _, _, _ := newLedgerFixture(
		entity.Part{PartNumber: "H6-4", Family: entity.FamilyH6, Quantity: 10},
	)

	qty, err := uc.QuantityOf("H6-4")
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)

	_, err = uc.QuantityOf("NO-EXISTE")
	assert.ErrorIs(t, err, domain.ErrUnknownPart)
}

func TestHistory_FiltraPorFamiliaYLimita(t *testing.T) {
	uc, _, _, _ := newLedgerFixture(
		entity.Part{PartNumber: "H6-1", Family: entity.FamilyH6, Quantity: 50},
		entity.Part{PartNumber: "H9-1", Family: entity.FamilyH9, Quantity: 50},
	)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := uc.Adjust(ctx, Line{PartNumber: "H6-1", Change: 1, Station: entity.StationPrinting}, "op")
		require.NoError(t, err)
	}
	_, err := uc.Adjust(ctx, Line{PartNumber: "H9-1", Change: 1, Station: entity.StationPrinting}, "op")
	require.NoError(t, err)

	all, err := uc.History("", 50)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "H9-1", all[0].PartNumber, "lo más reciente primero")

	h6, err := uc.History(entity.FamilyH6, 2)
	require.NoError(t, err)
	require.Len(t, h6, 2)
	for _, row := range h6 {
		assert.Equal(t, "H6-1", row.PartNumber)
	}

	_, err = uc.History("H8", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_LimitePorDefecto(t *testing.T) {
	uc, _, _, _ := newLedgerFixture()

	rows, err := uc.History("", 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
}
