package dto

import "time"

// LoginRequest credenciales del guard admin/staff.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string            `json:"token"`
	User  AdminUserResponse `json:"user"`
}

// ForgotPasswordRequest solicitud de enlace de restablecimiento.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest canje del token de restablecimiento.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// AdminUserResponse representación pública de un AdminUser (sin hash).
type AdminUserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest alta de admin/staff (solo super_admin).
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // super_admin | staff
}

// UpdateUserRequest modificación parcial de admin/staff. El rol no se toca.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
