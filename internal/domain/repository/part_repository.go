package repository

import "github.com/mcalvo/bracket-tracker-api/internal/domain/entity"

// PartRepository define el puerto de persistencia para componentes.
// Las cantidades solo se escriben desde el Stock Ledger, dentro de una
// transacción con la fila bloqueada (GetForUpdate).
type PartRepository interface {
	GetByNumber(partNumber string) (*entity.Part, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(partNumber string) (*entity.Part, error)
	UpdateQuantity(partNumber string, quantity int64) error
	// List devuelve los parts agrupados por familia en el orden fijo de
	// presentación y por part_number dentro de cada familia.
	List() ([]*entity.Part, error)
	Upsert(part *entity.Part) error
}
