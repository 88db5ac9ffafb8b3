package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// User representa un usuario del sistema. El core de inventario nunca consulta
// esta entidad: recibe actor y rol ya resueltos por la capa de identidad.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operator, viewer
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanMutate indica si el rol permite acciones de estación (ajustes, órdenes).
func (u *User) CanMutate() bool {
	return u.Role == RoleAdmin || u.Role == RoleOperator
}
