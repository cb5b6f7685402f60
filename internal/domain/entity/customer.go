package entity

import "time"

// Estados válidos para Customer. El flujo de verificación por OTP solo mueve
// pending -> active; suspended se administra desde el panel (setStatus) y la
// reactivación no vuelve a exigir OTP.
const (
	CustomerStatusPending   = "pending"
	CustomerStatusActive    = "active"
	CustomerStatusSuspended = "suspended"
)

// Customer representa una cuenta de cliente de la tienda (guard customer,
// independiente del guard admin/staff).
type Customer struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Status       string // pending, active, suspended
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la cuenta puede usar endpoints protegidos de cliente.
// La validez del token y el estado de la cuenta se verifican por separado.
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// CustomerToken es un token opaco emitido a un Customer. Se persiste solo el
// hash SHA-256; el plano se entrega una única vez al emitirlo. Al borrar el
// Customer la FK en cascada revoca todos sus tokens.
type CustomerToken struct {
	ID         string
	CustomerID string
	TokenHash  string
	CreatedAt  time.Time
	LastUsedAt *time.Time
	ExpiresAt  time.Time
}

// Expired indica si el token ya no es válido por tiempo.
func (t *CustomerToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// VerificationCode es el OTP de verificación de email de un Customer.
// Un código es de un solo uso y está acotado en el tiempo.
type VerificationCode struct {
	ID         string
	CustomerID string
	Code       string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Usable indica si el código puede consumirse en este instante.
func (v *VerificationCode) Usable(now time.Time) bool {
	return v.ConsumedAt == nil && !now.After(v.ExpiresAt)
}

// PasswordReset es un token de restablecimiento de contraseña (un solo uso,
// ventana configurable). Aplica tanto a admins como a customers según Guard.
type PasswordReset struct {
	ID         string
	Guard      string // "admin" | "customer"
	Email      string
	TokenHash  string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Usable indica si el token puede consumirse en este instante.
func (p *PasswordReset) Usable(now time.Time) bool {
	return p.ConsumedAt == nil && !now.After(p.ExpiresAt)
}
