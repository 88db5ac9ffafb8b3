package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación de WorkOrderRepository sobre PostgreSQL.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

// Create inserta una orden nueva.
func (r *WorkOrderRepo) Create(order *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (id, order_number, set_type, required_sets, include_modifier, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.SetType, order.RequiredSets,
		order.IncludeModifier, order.Status, order.CreatedAt, order.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por su ID. Devuelve nil si no existe.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	query := `
		SELECT id, order_number, set_type, required_sets, include_modifier, status, created_at, created_by
		FROM work_orders WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene la orden y bloquea su fila (SELECT FOR UPDATE) para
// serializar completaciones concurrentes de la misma orden.
func (r *WorkOrderRepo) GetForUpdate(id string) (*entity.WorkOrder, error) {
	query := `
		SELECT id, order_number, set_type, required_sets, include_modifier, status, created_at, created_by
		FROM work_orders WHERE id = $1
		FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *WorkOrderRepo) scanOne(query, id string) (*entity.WorkOrder, error) {
	var o entity.WorkOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.SetType, &o.RequiredSets, &o.IncludeModifier,
		&o.Status, &o.CreatedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return &o, nil
}

// MarkCompleted pasa la orden de active a completed. Devuelve filas afectadas:
// 0 significa que la orden ya no estaba activa.
func (r *WorkOrderRepo) MarkCompleted(id string) (int64, error) {
	query := `UPDATE work_orders SET status = $2 WHERE id = $1 AND status = $3`
	tag, err := r.q.Exec(context.Background(), query, id, entity.WorkOrderCompleted, entity.WorkOrderActive)
	if err != nil {
		return 0, fmt.Errorf("mark work order completed: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete borra la orden solo si sigue activa; devuelve filas afectadas.
func (r *WorkOrderRepo) Delete(id string) (int64, error) {
	query := `DELETE FROM work_orders WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(context.Background(), query, id, entity.WorkOrderActive)
	if err != nil {
		return 0, fmt.Errorf("delete work order: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List devuelve las órdenes ordenadas por tipo de set y fecha de creación.
// status vacío = todas.
func (r *WorkOrderRepo) List(status string) ([]*entity.WorkOrder, error) {
	query := `
		SELECT id, order_number, set_type, required_sets, include_modifier, status, created_at, created_by
		FROM work_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY set_type, created_at`
	rows, err := r.q.Query(context.Background(), query, status)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.WorkOrder
	for rows.Next() {
		var o entity.WorkOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.SetType, &o.RequiredSets, &o.IncludeModifier,
			&o.Status, &o.CreatedAt, &o.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}
