package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	ErrUnknownPart      = errors.New("componente desconocido")
	ErrUnknownSetType   = errors.New("tipo de set desconocido")
	ErrInvalidWorkOrder = errors.New("orden de trabajo inválida")
	ErrAlreadyCompleted = errors.New("orden de trabajo ya completada")

	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrDataIntegrity es fatal: indica que la deducción del ledger y el cambio de
	// estado de la orden dejaron de ser atómicos. No se debe enmascarar.
	ErrDataIntegrity = errors.New("inconsistencia de datos detectada")
)

// Shortfall describe cuánto falta de un componente para satisfacer una operación.
type Shortfall struct {
	PartNumber string
	Requested  int64
	Available  int64
	Missing    int64
}

// InsufficientStockError reporta qué componentes y qué faltante causaron el rechazo.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando en los callers.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	if len(e.Shortfalls) == 0 {
		return ErrInsufficientStock.Error()
	}
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s (faltan %d: hay %d, se requieren %d)",
			s.PartNumber, s.Missing, s.Available, s.Requested))
	}
	return "stock insuficiente: " + strings.Join(parts, ", ")
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
