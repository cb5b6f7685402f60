package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
)

// KategoriHandler CRUD de categorías. Lecturas públicas (filtradas a
// visibles para anónimos), mutaciones para super_admin|staff.
type KategoriHandler struct {
	uc *usecase.KategoriUseCase
}

// NewKategoriHandler construye el handler.
func NewKategoriHandler(uc *usecase.KategoriUseCase) *KategoriHandler {
	return &KategoriHandler{uc: uc}
}

// Create crea una categoría (multipart: name, status, image).
func (h *KategoriHandler) Create(c *fiber.Ctx) error {
	name, _ := formValue(c, "name")
	status, err := formBool(c, "status")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("status inválido", nil))
	}
	statusVal := true
	if status != nil {
		statusVal = *status
	}
	out, err := h.uc.Create(name, statusVal, formFile(c, "image"))
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "categoría creada", out)
}

// GetByID obtiene una categoría.
func (h *KategoriHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "categoría no encontrada")
	}
	return ok(c, "categoría", out)
}

// List lista categorías; los anónimos solo ven las visibles.
func (h *KategoriHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(onlyVisibleFor(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "categorías", out)
}

// Search busca categorías por nombre.
func (h *KategoriHandler) Search(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.Search(c.Query("q"), onlyVisibleFor(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "categorías", out)
}

// Update modifica una categoría (multipart parcial).
func (h *KategoriHandler) Update(c *fiber.Ctx) error {
	var name *string
	if v, present := formValue(c, "name"); present {
		name = &v
	}
	status, err := formBool(c, "status")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("status inválido", nil))
	}
	out, err := h.uc.Update(c.Params("id"), name, status, formFile(c, "image"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "categoría no encontrada")
	}
	return ok(c, "categoría actualizada", out)
}

// SetStatus cambia la visibilidad.
func (h *KategoriHandler) SetStatus(c *fiber.Ctx) error {
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
		return notFound(c, "categoría no encontrada")
	}
	return ok(c, "estado actualizado", out)
}

// Delete elimina la categoría y su archivo de imagen.
func (h *KategoriHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return ok(c, "categoría eliminada", nil)
}
