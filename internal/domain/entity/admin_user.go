package entity

import "time"

// AdminUser representa un usuario del panel de administración (guard admin/staff).
// El rol no se modifica después de asignado.
type AdminUser struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
