package dto

// Response es el sobre JSON uniforme de la API: {success, message, data}.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK construye una respuesta exitosa.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail construye una respuesta de error. data puede llevar detalle
// (p. ej. errores de validación por campo) o ser nil.
func Fail(message string, data any) Response {
	return Response{Success: false, Message: message, Data: data}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y topes si Limit/Offset están fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
