package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
)

// SliderHandler CRUD de sliders de portada.
type SliderHandler struct {
	uc *usecase.SliderUseCase
}

// NewSliderHandler construye el handler.
func NewSliderHandler(uc *usecase.SliderUseCase) *SliderHandler {
	return &SliderHandler{uc: uc}
}

// Create crea un slider (multipart: caption, status, image obligatoria).
func (h *SliderHandler) Create(c *fiber.Ctx) error {
	caption, _ := formValue(c, "caption")
	status, err := formBool(c, "status")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("status inválido", nil))
	}
	statusVal := true
	if status != nil {
		statusVal = *status
	}
	out, err := h.uc.Create(caption, statusVal, formFile(c, "image"))
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "slider creado", out)
}

// GetByID obtiene un slider.
func (h *SliderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "slider no encontrado")
	}
	return ok(c, "slider", out)
}

// List lista sliders; los anónimos solo ven los visibles.
func (h *SliderHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(onlyVisibleFor(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "sliders", out)
}

// ListActive devuelve los sliders visibles de la portada.
func (h *SliderHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.ListActive()
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "sliders", out)
}

// Search busca sliders por caption.
func (h *SliderHandler) Search(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.Search(c.Query("q"), onlyVisibleFor(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "sliders", out)
}

// Update modifica un slider (multipart parcial).
func (h *SliderHandler) Update(c *fiber.Ctx) error {
	var caption *string
	if v, present := formValue(c, "caption"); present {
		caption = &v
	}
	status, err := formBool(c, "status")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("status inválido", nil))
	}
	out, err := h.uc.Update(c.Params("id"), caption, status, formFile(c, "image"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "slider no encontrado")
	}
	return ok(c, "slider actualizado", out)
}

// SetStatus cambia la visibilidad.
func (h *SliderHandler) SetStatus(c *fiber.Ctx) error {
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
		return notFound(c, "slider no encontrado")
	}
	return ok(c, "estado actualizado", out)
}

// Delete elimina el slider y su archivo de imagen.
func (h *SliderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return ok(c, "slider eliminado", nil)
}
