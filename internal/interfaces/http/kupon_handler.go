package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
)

// KuponHandler CRUD y canje de cupones (super_admin|staff).
type KuponHandler struct {
	uc *usecase.KuponUseCase
}

// NewKuponHandler construye el handler.
func NewKuponHandler(uc *usecase.KuponUseCase) *KuponHandler {
	return &KuponHandler{uc: uc}
}

// Create crea un cupón.
func (h *KuponHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateKuponRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "cupón creado", out)
}

// GetByID obtiene un cupón.
func (h *KuponHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "cupón no encontrado")
	}
	return ok(c, "cupón", out)
}

// List lista cupones.
func (h *KuponHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "cupones", out)
}

// Search busca cupones por código.
func (h *KuponHandler) Search(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.Search(c.Query("q"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "cupones", out)
}

// ListActive devuelve los cupones canjeables ahora mismo.
func (h *KuponHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.ListActive()
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "cupones activos", out)
}

// Redeem canjea un cupón por código (incremento atómico del uso).
func (h *KuponHandler) Redeem(c *fiber.Ctx) error {
	var in dto.RedeemKuponRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.Redeem(in.Code)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "cupón canjeado", out)
}

// Update modifica un cupón.
func (h *KuponHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateKuponRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "cupón no encontrado")
	}
	return ok(c, "cupón actualizado", out)
}

// SetStatus activa o desactiva un cupón.
func (h *KuponHandler) SetStatus(c *fiber.Ctx) error {
	var in struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.SetActive(c.Params("id"), in.IsActive)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "cupón no encontrado")
	}
	return ok(c, "estado actualizado", out)
}

// Delete elimina el cupón.
func (h *KuponHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return ok(c, "cupón eliminado", nil)
}
