package repository

import "github.com/mcalvo/bracket-tracker-api/internal/domain/entity"

// TransactionRepository define el puerto para el log de auditoría append-only.
// No existe Update ni Delete: las transacciones son inmutables.
type TransactionRepository interface {
	// Create persiste la línea y asigna el ID monotónico generado por la BD.
	Create(tx *entity.Transaction) error
	// List devuelve las transacciones más recientes primero. family vacío = todas;
	// con familia filtra por la familia del part afectado.
	List(family string, limit int) ([]*entity.Transaction, error)
}
