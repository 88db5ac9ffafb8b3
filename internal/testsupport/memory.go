// Package testsupport provee implementaciones en memoria de los puertos de
// persistencia para las pruebas de los casos de uso. Reproducen el contrato
// observable de los repositorios de postgres (nil = no encontrado, IDs
// monotónicos, orden de listado) sin base de datos.
package testsupport

import (
	"context"
	"sync"
	"time"

	"github.com/mcalvo/bracket-tracker-api/internal/application/notify"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/catalog"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/repository"
)

// MemoryPartRepo implementa repository.PartRepository sobre un mapa.
type MemoryPartRepo struct {
	mu    sync.Mutex
	parts map[string]*entity.Part
}

// NewMemoryPartRepo crea el repo con los parts dados como estado inicial.
func NewMemoryPartRepo(parts ...entity.Part) *MemoryPartRepo {
	repo := &MemoryPartRepo{parts: make(map[string]*entity.Part)}
	for _, p := range parts {
		cp := p
		repo.parts[p.PartNumber] = &cp
	}
	return repo
}

func (r *MemoryPartRepo) GetByNumber(partNumber string) (*entity.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parts[partNumber]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryPartRepo) GetForUpdate(partNumber string) (*entity.Part, error) {
	return r.GetByNumber(partNumber)
}

func (r *MemoryPartRepo) UpdateQuantity(partNumber string, quantity int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.parts[partNumber]; ok {
		p.Quantity = quantity
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (r *MemoryPartRepo) List() ([]*entity.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Part
	for _, family := range catalog.Families() {
		var group []*entity.Part
		for _, p := range r.parts {
			if p.Family == family {
				cp := *p
				group = append(group, &cp)
			}
		}
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if group[j].PartNumber < group[i].PartNumber {
					group[i], group[j] = group[j], group[i]
				}
			}
		}
		out = append(out, group...)
	}
	return out, nil
}

func (r *MemoryPartRepo) Upsert(part *entity.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *part
	r.parts[part.PartNumber] = &cp
	return nil
}

// MemoryTransactionRepo implementa repository.TransactionRepository en memoria.
type MemoryTransactionRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*entity.Transaction
}

func NewMemoryTransactionRepo() *MemoryTransactionRepo {
	return &MemoryTransactionRepo{nextID: 1}
}

func (r *MemoryTransactionRepo) Create(tx *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx.ID = r.nextID
	r.nextID++
	cp := *tx
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *MemoryTransactionRepo) List(family string, limit int) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Transaction
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		row := r.rows[i]
		if family != "" {
			f, err := catalog.FamilyOf(row.PartNumber)
			if err != nil || f != family {
				continue
			}
		}
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

// All devuelve todas las filas en orden de inserción (solo para aserciones).
func (r *MemoryTransactionRepo) All() []*entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Transaction, len(r.rows))
	for i, row := range r.rows {
		cp := *row
		out[i] = &cp
	}
	return out
}

// MemoryWorkOrderRepo implementa repository.WorkOrderRepository en memoria.
type MemoryWorkOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.WorkOrder
}

func NewMemoryWorkOrderRepo() *MemoryWorkOrderRepo {
	return &MemoryWorkOrderRepo{orders: make(map[string]*entity.WorkOrder)}
}

func (r *MemoryWorkOrderRepo) Create(order *entity.WorkOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *MemoryWorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *MemoryWorkOrderRepo) GetForUpdate(id string) (*entity.WorkOrder, error) {
	return r.GetByID(id)
}

func (r *MemoryWorkOrderRepo) MarkCompleted(id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != entity.WorkOrderActive {
		return 0, nil
	}
	o.Status = entity.WorkOrderCompleted
	return 1, nil
}

func (r *MemoryWorkOrderRepo) Delete(id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != entity.WorkOrderActive {
		return 0, nil
	}
	delete(r.orders, id)
	return 1, nil
}

func (r *MemoryWorkOrderRepo) List(status string) ([]*entity.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.WorkOrder
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].SetType < out[i].SetType ||
				(out[j].SetType == out[i].SetType && out[j].CreatedAt.Before(out[i].CreatedAt)) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// MemoryTxRunner implementa ledger.TxRunner pasando los fakes directamente.
// No hay rollback real: los casos de uso validan antes de escribir, así que los
// tests de fallo afirman que no hubo escrituras.
type MemoryTxRunner struct {
	mu     sync.Mutex
	Parts  *MemoryPartRepo
	Txs    *MemoryTransactionRepo
	Orders *MemoryWorkOrderRepo
}

func NewMemoryTxRunner(parts *MemoryPartRepo, txs *MemoryTransactionRepo, orders *MemoryWorkOrderRepo) *MemoryTxRunner {
	return &MemoryTxRunner{Parts: parts, Txs: txs, Orders: orders}
}

func (r *MemoryTxRunner) Run(ctx context.Context, fn func(
	parts repository.PartRepository,
	transactions repository.TransactionRepository,
	orders repository.WorkOrderRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.Parts, r.Txs, r.Orders)
}

// RecordingNotifier captura los eventos publicados para las aserciones.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *RecordingNotifier) Notify(_ context.Context, ev notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *RecordingNotifier) Events() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.Event, len(n.events))
	copy(out, n.events)
	return out
}
