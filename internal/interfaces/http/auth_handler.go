package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/authadmin"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
)

// AuthHandler maneja la autenticación del guard admin/staff.
type AuthHandler struct {
	uc *authadmin.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *authadmin.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login emite el JWT del panel.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "sesión iniciada", out)
}

// Logout es un no-op del lado servidor: el JWT es sin estado y el cliente
// descarta el token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return ok(c, "sesión cerrada", nil)
}

// Me devuelve el perfil del admin autenticado.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetAdminID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "perfil", out)
}

// ForgotPassword encola el correo con el enlace de restablecimiento. La
// respuesta no revela si el email existe.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	if err := h.uc.ForgotPassword(in.Email); err != nil {
		return writeError(c, err)
	}
	return ok(c, "si la cuenta existe, se envió un correo con instrucciones", nil)
}

// ResetPassword canjea el token de restablecimiento.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	if err := h.uc.ResetPassword(in); err != nil {
		return writeError(c, err)
	}
	return ok(c, "contraseña restablecida", nil)
}
