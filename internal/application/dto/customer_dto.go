package dto

import "time"

// RegisterCustomerRequest registro de cuenta de cliente.
type RegisterCustomerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest canje del código de verificación de email.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResendOTPRequest reenvío del código de verificación.
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// CustomerLoginRequest credenciales del guard customer.
type CustomerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CustomerLoginResponse token opaco + cuenta autenticada.
type CustomerLoginResponse struct {
	Token    string           `json:"token"`
	Customer CustomerResponse `json:"customer"`
}

// ChangePasswordRequest cambio de contraseña con sesión activa.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CustomerResponse representación pública de un Customer (sin hash).
type CustomerResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
