package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInactiveAccount    = errors.New("cuenta no activa")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrCodeExpired        = errors.New("código expirado")
	ErrCodeInvalid        = errors.New("código inválido")
	ErrCouponExhausted    = errors.New("cupón agotado o fuera de vigencia")
)

// ValidationError agrupa mensajes de validación por campo (respuesta 422).
type ValidationError struct {
	Fields map[string][]string
}

// Error implementa error.
func (e *ValidationError) Error() string {
	return "validación fallida"
}

// NewValidationError construye un ValidationError vacío listo para Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add registra un mensaje para un campo.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// HasErrors indica si se registró algún mensaje.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// AsValidation devuelve el *ValidationError si err lo es.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
