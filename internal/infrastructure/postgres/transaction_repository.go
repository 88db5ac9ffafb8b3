package postgres

import (
	"context"
	"fmt"

	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL.
// Solo inserta y lista: el log es append-only por contrato y la tabla no tiene
// caminos de UPDATE ni DELETE en el código.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta la línea y asigna el ID monotónico generado por la secuencia.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (group_id, part_number, change, station, notes, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		tx.GroupID, tx.PartNumber, tx.Change, tx.Station, tx.Notes, tx.Actor, tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List devuelve las transacciones más recientes primero. family vacío = todas;
// con familia filtra por la familia del part afectado.
func (r *TransactionRepo) List(family string, limit int) ([]*entity.Transaction, error) {
	query := `
		SELECT t.id, t.group_id, t.part_number, t.change, t.station, t.notes, t.actor, t.created_at
		FROM transactions t
		JOIN parts p ON p.part_number = t.part_number
		WHERE ($1 = '' OR p.family = $1)
		ORDER BY t.id DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, family, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.GroupID, &t.PartNumber, &t.Change, &t.Station, &t.Notes, &t.Actor, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
