package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación de PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de parts. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// GetByNumber obtiene un part por part_number. Devuelve nil si no existe.
func (r *PartRepo) GetByNumber(partNumber string) (*entity.Part, error) {
	query := `
		SELECT part_number, name, family, quantity, min_stock, created_at, updated_at
		FROM parts WHERE part_number = $1`
	return r.scanOne(query, partNumber)
}

// GetForUpdate obtiene el part y bloquea la fila (SELECT FOR UPDATE).
func (r *PartRepo) GetForUpdate(partNumber string) (*entity.Part, error) {
	query := `
		SELECT part_number, name, family, quantity, min_stock, created_at, updated_at
		FROM parts WHERE part_number = $1
		FOR UPDATE`
	return r.scanOne(query, partNumber)
}

func (r *PartRepo) scanOne(query, partNumber string) (*entity.Part, error) {
	var p entity.Part
	err := r.q.QueryRow(context.Background(), query, partNumber).Scan(
		&p.PartNumber, &p.Name, &p.Family, &p.Quantity, &p.MinStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// UpdateQuantity escribe la cantidad final de un part. Solo lo llama el Stock
// Ledger con la fila ya bloqueada; el CHECK (quantity >= 0) de la tabla
// respalda el invariante validado en el caso de uso.
func (r *PartRepo) UpdateQuantity(partNumber string, quantity int64) error {
	query := `UPDATE parts SET quantity = $2, updated_at = now() WHERE part_number = $1`
	tag, err := r.q.Exec(context.Background(), query, partNumber, quantity)
	if err != nil {
		return fmt.Errorf("update part quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update part quantity: part %s no existe", partNumber)
	}
	return nil
}

// List devuelve todos los parts agrupados por familia en el orden fijo de
// presentación (H6, H7, H9) y por part_number dentro de cada familia.
func (r *PartRepo) List() ([]*entity.Part, error) {
	query := `
		SELECT part_number, name, family, quantity, min_stock, created_at, updated_at
		FROM parts
		ORDER BY CASE family WHEN 'H6' THEN 1 WHEN 'H7' THEN 2 WHEN 'H9' THEN 3 ELSE 4 END,
		         part_number`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var parts []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.PartNumber, &p.Name, &p.Family, &p.Quantity, &p.MinStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		parts = append(parts, &p)
	}
	return parts, rows.Err()
}

// Upsert inserta o actualiza un part por part_number. Lo usa el seed; la
// cantidad existente se conserva para no pisar stock real.
func (r *PartRepo) Upsert(part *entity.Part) error {
	query := `
		INSERT INTO parts (part_number, name, family, quantity, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (part_number)
		DO UPDATE SET name = EXCLUDED.name, family = EXCLUDED.family,
		              min_stock = EXCLUDED.min_stock, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		part.PartNumber, part.Name, part.Family, part.Quantity, part.MinStock)
	if err != nil {
		return fmt.Errorf("upsert part: %w", err)
	}
	return nil
}
