package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/authcustomer"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
)

// CustomerAuthHandler maneja el registro y la autenticación del guard customer.
type CustomerAuthHandler struct {
	uc *authcustomer.UseCase
}

// NewCustomerAuthHandler construye el handler.
func NewCustomerAuthHandler(uc *authcustomer.UseCase) *CustomerAuthHandler {
	return &CustomerAuthHandler{uc: uc}
}

// Register crea la cuenta en estado pending y dispara el OTP por correo.
func (h *CustomerAuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "cuenta creada, revisa tu correo para verificarla", out)
}

// VerifyOTP activa la cuenta canjeando el código de verificación.
func (h *CustomerAuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var in dto.VerifyOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.VerifyOTP(in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "cuenta verificada", out)
}

// ResendOTP reemite el código de verificación para cuentas pending.
func (h *CustomerAuthHandler) ResendOTP(c *fiber.Ctx) error {
	var in dto.ResendOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	if err := h.uc.ResendOTP(in.Email); err != nil {
		return writeError(c, err)
	}
	return ok(c, "código reenviado", nil)
}

// Login emite el token opaco del guard customer.
func (h *CustomerAuthHandler) Login(c *fiber.Ctx) error {
	var in dto.CustomerLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "sesión iniciada", out)
}

// Logout revoca el token de la sesión actual.
func (h *CustomerAuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(GetCustomerToken(c)); err != nil {
		return writeError(c, err)
	}
	return ok(c, "sesión cerrada", nil)
}

// Me devuelve el perfil del cliente autenticado.
func (h *CustomerAuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetCustomerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "perfil", out)
}

// ChangePassword cambia la contraseña de la sesión activa.
func (h *CustomerAuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	if err := h.uc.ChangePassword(GetCustomerID(c), in, GetCustomerToken(c)); err != nil {
		return writeError(c, err)
	}
	return ok(c, "contraseña actualizada", nil)
}

// ForgotPassword encola el correo de restablecimiento (guard customer).
func (h *CustomerAuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	if err := h.uc.ForgotPassword(in.Email); err != nil {
		return writeError(c, err)
	}
	return ok(c, "si la cuenta existe, se envió un correo con instrucciones", nil)
}

// ResetPassword canjea el token de restablecimiento (guard customer).
func (h *CustomerAuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	if err := h.uc.ResetPassword(in); err != nil {
		return writeError(c, err)
	}
	return ok(c, "contraseña restablecida", nil)
}
