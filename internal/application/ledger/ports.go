package ledger

import (
	"context"

	"github.com/mcalvo/bracket-tracker-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger y para la
// completación de órdenes de trabajo (deducción + cambio de estado juntos).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		parts repository.PartRepository,
		transactions repository.TransactionRepository,
		orders repository.WorkOrderRepository,
	) error) error
}
