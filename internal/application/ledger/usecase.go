// Package ledger implementa el Stock Ledger: único punto de entrada para mutar
// cantidades. Cada mutación sigue el mismo patrón validar-luego-confirmar dentro
// de una transacción con las filas bloqueadas (SELECT FOR UPDATE), y deja una
// línea inmutable en el log de transacciones por cada ajuste aplicado.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mcalvo/bracket-tracker-api/internal/application/notify"
	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/catalog"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/repository"
)

// Line es una línea de ajuste: delta con signo sobre un part, con su estación y
// nota de auditoría.
type Line struct {
	PartNumber string
	Change     int64
	Station    string
	Notes      string
}

// StockLedgerUseCase expone las operaciones del Stock Ledger. Las lecturas usan
// los repositorios sobre el pool; las mutaciones pasan por el TxRunner.
type StockLedgerUseCase struct {
	txRunner TxRunner
	partRepo repository.PartRepository
	txRepo   repository.TransactionRepository
	notifier notify.Notifier
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	txRepo repository.TransactionRepository,
	notifier notify.Notifier,
) *StockLedgerUseCase {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &StockLedgerUseCase{txRunner: txRunner, partRepo: partRepo, txRepo: txRepo, notifier: notifier}
}

// Adjust aplica un ajuste con signo sobre un part. Falla con ErrUnknownPart si
// el part no existe y con InsufficientStockError si el resultado sería negativo;
// en ambos casos ni la cantidad ni el log cambian. En éxito devuelve la nueva
// cantidad y publica part_changed.
func (uc *StockLedgerUseCase) Adjust(ctx context.Context, line Line, actor string) (int64, error) {
	if err := validateLine(line); err != nil {
		return 0, err
	}
	var change notify.PartChange
	err := uc.txRunner.Run(ctx, func(
		parts repository.PartRepository,
		transactions repository.TransactionRepository,
		_ repository.WorkOrderRepository,
	) error {
		changes, err := uc.ApplyBatchInTx(parts, transactions, []Line{line}, actor, "", time.Now())
		if err != nil {
			return err
		}
		change = changes[0]
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.notifier.Notify(ctx, notify.Event{
		Type: notify.EventPartChanged,
		Part: &change,
		At:   time.Now(),
	})
	return change.NewQuantity, nil
}

// AdjustBatch aplica varias líneas como una sola unidad todo-o-nada: valida
// todas contra las cantidades confirmadas (filas bloqueadas) antes de aplicar
// cualquiera. Si alguna dejaría una cantidad negativa, falla con
// InsufficientStockError y cero mutaciones. En éxito escribe una transacción
// por línea y publica batch_changed una sola vez.
func (uc *StockLedgerUseCase) AdjustBatch(ctx context.Context, lines []Line, actor, reason string) ([]int64, error) {
	for _, ln := range lines {
		if err := validateLine(ln); err != nil {
			return nil, err
		}
	}
	groupID := uuid.New().String()
	var changes []notify.PartChange
	err := uc.txRunner.Run(ctx, func(
		parts repository.PartRepository,
		transactions repository.TransactionRepository,
		_ repository.WorkOrderRepository,
	) error {
		var err error
		changes, err = uc.ApplyBatchInTx(parts, transactions, lines, actor, groupID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Notify(ctx, notify.Event{
		Type:   notify.EventBatchChanged,
		Lines:  changes,
		Reason: reason,
		At:     time.Now(),
	})
	quantities := make([]int64, len(changes))
	for i, ch := range changes {
		quantities[i] = ch.NewQuantity
	}
	return quantities, nil
}

// PhysicalCount fija la cantidad absoluta observada en conteo físico y registra
// la diferencia como ajuste. Si la cantidad ya coincide no escribe nada.
// Devuelve el delta aplicado y la nueva cantidad.
func (uc *StockLedgerUseCase) PhysicalCount(ctx context.Context, partNumber string, actual int64, actor string) (int64, int64, error) {
	if partNumber == "" || actual < 0 {
		return 0, 0, domain.ErrInvalidInput
	}
	var (
		change  notify.PartChange
		delta   int64
		applied bool
	)
	err := uc.txRunner.Run(ctx, func(
		parts repository.PartRepository,
		transactions repository.TransactionRepository,
		_ repository.WorkOrderRepository,
	) error {
		// El delta se calcula con la fila bloqueada: el conteo compite con
		// cualquier otro ajuste concurrente del mismo part.
		part, err := parts.GetForUpdate(partNumber)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPart, partNumber)
		}
		delta = actual - part.Quantity
		if delta == 0 {
			return nil
		}
		line := Line{
			PartNumber: partNumber,
			Change:     delta,
			Station:    entity.StationInventory,
			Notes:      fmt.Sprintf("Physical count adjustment: %d -> %d", part.Quantity, actual),
		}
		changes, err := uc.ApplyBatchInTx(parts, transactions, []Line{line}, actor, "", time.Now())
		if err != nil {
			return err
		}
		change = changes[0]
		applied = true
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	if !applied {
		return 0, actual, nil
	}
	uc.notifier.Notify(ctx, notify.Event{
		Type: notify.EventPartChanged,
		Part: &change,
		At:   time.Now(),
	})
	return delta, change.NewQuantity, nil
}

// ApplyBatchInTx valida y aplica un batch usando los repositorios de la
// transacción del caller. Lo usa el Work Order Manager para que la deducción y
// el cambio de estado de la orden compartan una misma transacción.
//
// Bloquea cada part una sola vez, en orden de part_number para que dos batches
// concurrentes no se bloqueen mutuamente en orden cruzado. Las líneas repetidas
// sobre un mismo part se validan de forma acumulada.
func (uc *StockLedgerUseCase) ApplyBatchInTx(
	parts repository.PartRepository,
	transactions repository.TransactionRepository,
	lines []Line,
	actor, groupID string,
	now time.Time,
) ([]notify.PartChange, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	numbers := uniquePartNumbers(lines)
	projected := make(map[string]int64, len(numbers))
	for _, pn := range numbers {
		part, err := parts.GetForUpdate(pn)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPart, pn)
		}
		projected[pn] = part.Quantity
	}

	// Fase de validación: proyectar todas las líneas antes de escribir nada.
	var shortfalls []domain.Shortfall
	running := make(map[string]int64, len(numbers))
	for pn, q := range projected {
		running[pn] = q
	}
	for _, ln := range lines {
		after := running[ln.PartNumber] + ln.Change
		if after < 0 {
			shortfalls = append(shortfalls, domain.Shortfall{
				PartNumber: ln.PartNumber,
				Requested:  -ln.Change,
				Available:  running[ln.PartNumber],
				Missing:    -after,
			})
		}
		running[ln.PartNumber] = after
	}
	if len(shortfalls) > 0 {
		sort.Slice(shortfalls, func(i, j int) bool {
			return shortfalls[i].PartNumber < shortfalls[j].PartNumber
		})
		return nil, &domain.InsufficientStockError{Shortfalls: shortfalls}
	}

	// Fase de commit: una transacción de auditoría por línea, luego la cantidad
	// final por part. El rollback de la tx externa revierte todo ante un fallo.
	for pn := range running {
		running[pn] = projected[pn]
	}
	changes := make([]notify.PartChange, 0, len(lines))
	for _, ln := range lines {
		running[ln.PartNumber] += ln.Change
		row := &entity.Transaction{
			GroupID:    groupID,
			PartNumber: ln.PartNumber,
			Change:     ln.Change,
			Station:    ln.Station,
			Notes:      ln.Notes,
			Actor:      actor,
			CreatedAt:  now,
		}
		if err := transactions.Create(row); err != nil {
			return nil, err
		}
		changes = append(changes, notify.PartChange{
			PartNumber:  ln.PartNumber,
			NewQuantity: running[ln.PartNumber],
			Transaction: *row,
		})
	}
	for _, pn := range numbers {
		if err := parts.UpdateQuantity(pn, running[pn]); err != nil {
			return nil, err
		}
	}
	return changes, nil
}

// QuantityOf devuelve la cantidad confirmada de un part.
func (uc *StockLedgerUseCase) QuantityOf(partNumber string) (int64, error) {
	part, err := uc.partRepo.GetByNumber(partNumber)
	if err != nil {
		return 0, err
	}
	if part == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownPart, partNumber)
	}
	return part.Quantity, nil
}

// ListParts devuelve los parts agrupados por familia en orden fijo.
func (uc *StockLedgerUseCase) ListParts() ([]*entity.Part, error) {
	return uc.partRepo.List()
}

// History devuelve las transacciones más recientes primero, opcionalmente
// filtradas por familia. limit <= 0 usa 50; el tope es 500.
func (uc *StockLedgerUseCase) History(family string, limit int) ([]*entity.Transaction, error) {
	if family != "" && !knownFamily(family) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	return uc.txRepo.List(family, limit)
}

func validateLine(line Line) error {
	if line.PartNumber == "" || line.Change == 0 || strings.TrimSpace(line.Station) == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

func uniquePartNumbers(lines []Line) []string {
	seen := make(map[string]bool, len(lines))
	numbers := make([]string, 0, len(lines))
	for _, ln := range lines {
		if !seen[ln.PartNumber] {
			seen[ln.PartNumber] = true
			numbers = append(numbers, ln.PartNumber)
		}
	}
	sort.Strings(numbers)
	return numbers
}

func knownFamily(family string) bool {
	for _, f := range catalog.Families() {
		if f == family {
			return true
		}
	}
	return false
}
