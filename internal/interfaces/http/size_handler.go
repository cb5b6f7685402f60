package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
)

// SizeHandler CRUD de tallas (dato maestro, super_admin|staff).
type SizeHandler struct {
	uc *usecase.SizeUseCase
}

// NewSizeHandler construye el handler.
func NewSizeHandler(uc *usecase.SizeUseCase) *SizeHandler {
	return &SizeHandler{uc: uc}
}

// Create crea una talla, con colores asociados opcionales.
func (h *SizeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSizeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "talla creada", out)
}

// GetByID obtiene una talla.
func (h *SizeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "talla no encontrada")
	}
	return ok(c, "talla", out)
}

// List lista tallas.
func (h *SizeHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(onlyVisibleFor(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "tallas", out)
}

// Search busca tallas por nombre.
func (h *SizeHandler) Search(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.Search(c.Query("q"), onlyVisibleFor(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "tallas", out)
}

// ListColors devuelve los colores asociados a la talla.
func (h *SizeHandler) ListColors(c *fiber.Ctx) error {
	out, err := h.uc.ListColors(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "colores", out)
}

// Update modifica una talla; color_ids presente reemplaza el pivot.
func (h *SizeHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateSizeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "talla no encontrada")
	}
	return ok(c, "talla actualizada", out)
}

// SetStatus cambia la visibilidad.
func (h *SizeHandler) SetStatus(c *fiber.Ctx) error {
	var in struct {
		Status bool `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.SetStatus(c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "talla no encontrada")
	}
	return ok(c, "estado actualizado", out)
}

// Delete elimina la talla.
func (h *SizeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return ok(c, "talla eliminada", nil)
}
