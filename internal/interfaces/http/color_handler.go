package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
)

// ColorHandler CRUD de colores (dato maestro, super_admin|staff).
type ColorHandler struct {
	uc *usecase.ColorUseCase
}

// NewColorHandler construye el handler.
func NewColorHandler(uc *usecase.ColorUseCase) *ColorHandler {
	return &ColorHandler{uc: uc}
}

// Create crea un color.
func (h *ColorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateColorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "color creado", out)
}

// GetByID obtiene un color.
func (h *ColorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "color no encontrado")
	}
	return ok(c, "color", out)
}

// List lista colores.
func (h *ColorHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(onlyVisibleFor(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "colores", out)
}

// Search busca colores por nombre.
func (h *ColorHandler) Search(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.Search(c.Query("q"), onlyVisibleFor(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "colores", out)
}

// Update modifica un color.
func (h *ColorHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateColorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("cuerpo inválido", nil))
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "color no encontrado")
	}
	return ok(c, "color actualizado", out)
}

// SetStatus cambia la visibilidad.
func (h *ColorHandler) SetStatus(c *fiber.Ctx) error {
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
		return notFound(c, "color no encontrado")
	}
	return ok(c, "estado actualizado", out)
}

// Delete elimina el color.
func (h *ColorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return ok(c, "color eliminado", nil)
}
