package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
)

// CustomerHandler gestión de cuentas de clientes desde el panel (super_admin).
type CustomerHandler struct {
	uc *usecase.CustomerAdminUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerAdminUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List lista cuentas de clientes.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "clientes", out)
}

// Search busca clientes por username o email.
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.Search(c.Query("q"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "clientes", out)
}

// GetByID obtiene una cuenta de cliente.
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "cliente no encontrado")
	}
	return ok(c, "cliente", out)
}

// SetStatus suspende o reactiva una cuenta.
func (h *CustomerHandler) SetStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.SetStatus(c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "cliente no encontrado")
	}
	return ok(c, "estado actualizado", out)
}

// Delete elimina la cuenta; la cascada revoca tokens y códigos.
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return ok(c, "cliente eliminado", nil)
}
