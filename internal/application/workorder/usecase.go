// Package workorder implementa el Work Order Manager: ciclo de vida de las
// órdenes de trabajo y su completación atómica contra el Stock Ledger.
package workorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcalvo/bracket-tracker-api/internal/application/ledger"
	"github.com/mcalvo/bracket-tracker-api/internal/application/notify"
	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/catalog"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/repository"
)

// ComponentStatus es el estado de un componente de la receta frente a una orden.
type ComponentStatus struct {
	PartNumber string
	Required   int64
	Available  int64
	Shortfall  int64
}

// Fulfillment es la lectura consultiva del estado de cumplimiento de una orden.
// No bloquea filas; Complete revalida con bloqueo en el momento de ejecutar.
type Fulfillment struct {
	WorkOrderID string
	Ready       bool
	Components  []ComponentStatus
}

// WorkOrderUseCase expone las operaciones del Work Order Manager.
type WorkOrderUseCase struct {
	txRunner  ledger.TxRunner
	ledger    *ledger.StockLedgerUseCase
	orderRepo repository.WorkOrderRepository
	partRepo  repository.PartRepository
	notifier  notify.Notifier
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(
	txRunner ledger.TxRunner,
	stockLedger *ledger.StockLedgerUseCase,
	orderRepo repository.WorkOrderRepository,
	partRepo repository.PartRepository,
	notifier notify.Notifier,
) *WorkOrderUseCase {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &WorkOrderUseCase{
		txRunner:  txRunner,
		ledger:    stockLedger,
		orderRepo: orderRepo,
		partRepo:  partRepo,
		notifier:  notifier,
	}
}

// Create registra una orden activa. OrderNumber es texto libre y no único;
// RequiredSets debe ser >= 1 y el tipo de set debe existir en el catálogo.
// IncludeModifier se normaliza a false cuando el tipo no declara modificador.
func (uc *WorkOrderUseCase) Create(ctx context.Context, orderNumber, setType string, requiredSets int64, includeModifier bool, createdBy string) (*entity.WorkOrder, error) {
	if orderNumber == "" || requiredSets < 1 {
		return nil, fmt.Errorf("%w: order_number requerido y required_sets >= 1", domain.ErrInvalidWorkOrder)
	}
	def, err := catalog.Definition(setType)
	if err != nil {
		return nil, err
	}
	if !def.HasModifier() {
		includeModifier = false
	}
	order := &entity.WorkOrder{
		ID:              uuid.New().String(),
		OrderNumber:     orderNumber,
		SetType:         setType,
		RequiredSets:    requiredSets,
		IncludeModifier: includeModifier,
		Status:          entity.WorkOrderActive,
		CreatedAt:       time.Now(),
		CreatedBy:       createdBy,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	uc.notifier.Notify(ctx, notify.Event{
		Type:      notify.EventWorkOrderCreated,
		WorkOrder: order,
		At:        time.Now(),
	})
	return order, nil
}

// GetByID devuelve la orden o ErrInvalidWorkOrder si no existe.
func (uc *WorkOrderUseCase) GetByID(id string) (*entity.WorkOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidWorkOrder, id)
	}
	return order, nil
}

// List devuelve las órdenes, opcionalmente filtradas por estado.
func (uc *WorkOrderUseCase) List(status string) ([]*entity.WorkOrder, error) {
	if status != "" && status != entity.WorkOrderActive && status != entity.WorkOrderCompleted {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.List(status)
}

// FulfillmentStatus compara la receta de la orden contra las cantidades
// confirmadas actuales. Es una lectura sin bloqueos: el resultado puede quedar
// obsoleto frente a mutaciones concurrentes y por eso Complete revalida.
func (uc *WorkOrderUseCase) FulfillmentStatus(id string) (*Fulfillment, error) {
	order, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	recipe, err := catalog.SetDefinition(order.SetType, order.IncludeModifier)
	if err != nil {
		return nil, err
	}
	result := &Fulfillment{WorkOrderID: order.ID, Ready: true}
	for _, pn := range recipe {
		part, err := uc.partRepo.GetByNumber(pn)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPart, pn)
		}
		comp := ComponentStatus{
			PartNumber: pn,
			Required:   order.RequiredSets,
			Available:  part.Quantity,
		}
		if part.Quantity < order.RequiredSets {
			comp.Shortfall = order.RequiredSets - part.Quantity
			result.Ready = false
		}
		result.Components = append(result.Components, comp)
	}
	return result, nil
}

// Complete ejecuta la completación: deduce RequiredSets de cada componente de
// la receta y marca la orden como completada, todo dentro de una sola
// transacción. La orden se bloquea primero para serializar completaciones
// concurrentes; el stock se revalida con las filas bloqueadas, de modo que una
// lectura de FulfillmentStatus obsoleta nunca produce cantidades negativas.
func (uc *WorkOrderUseCase) Complete(ctx context.Context, id, actor string) (*entity.WorkOrder, error) {
	var (
		completed *entity.WorkOrder
		changes   []notify.PartChange
	)
	err := uc.txRunner.Run(ctx, func(
		parts repository.PartRepository,
		transactions repository.TransactionRepository,
		orders repository.WorkOrderRepository,
	) error {
		order, err := orders.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: %s", domain.ErrInvalidWorkOrder, id)
		}
		if !order.IsActive() {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyCompleted, order.OrderNumber)
		}
		recipe, err := catalog.SetDefinition(order.SetType, order.IncludeModifier)
		if err != nil {
			return err
		}
		lines := make([]ledger.Line, 0, len(recipe))
		for _, pn := range recipe {
			lines = append(lines, ledger.Line{
				PartNumber: pn,
				Change:     -order.RequiredSets,
				Station:    entity.StationCompletion,
				Notes:      fmt.Sprintf("Work order %s completed", order.OrderNumber),
			})
		}
		changes, err = uc.ledger.ApplyBatchInTx(parts, transactions, lines, actor, order.ID, time.Now())
		if err != nil {
			return err
		}
		rows, err := orders.MarkCompleted(order.ID)
		if err != nil {
			return err
		}
		if rows != 1 {
			// La orden estaba bloqueada y activa; si el update no tocó exactamente
			// una fila, el estado y la deducción divergieron. El rollback de la tx
			// descarta la deducción y el error sube sin enmascarar.
			return fmt.Errorf("%w: la orden %s cambió de estado durante la completación", domain.ErrDataIntegrity, order.ID)
		}
		order.Status = entity.WorkOrderCompleted
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	uc.notifier.Notify(ctx, notify.Event{
		Type:   notify.EventBatchChanged,
		Lines:  changes,
		Reason: fmt.Sprintf("work order %s completed", completed.OrderNumber),
		At:     now,
	})
	uc.notifier.Notify(ctx, notify.Event{
		Type:      notify.EventWorkOrderCompleted,
		WorkOrder: completed,
		At:        now,
	})
	return completed, nil
}

// Delete elimina una orden activa. Las órdenes completadas son historial y no
// se pueden borrar; el borrado no revierte stock.
func (uc *WorkOrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidWorkOrder, id)
	}
	if !order.IsActive() {
		return fmt.Errorf("%w: una orden completada no se puede borrar", domain.ErrAlreadyCompleted)
	}
	rows, err := uc.orderRepo.Delete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidWorkOrder, id)
	}
	uc.notifier.Notify(ctx, notify.Event{
		Type:      notify.EventWorkOrderDeleted,
		WorkOrder: order,
		At:        time.Now(),
	})
	return nil
}
