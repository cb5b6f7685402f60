package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
)

// ProductHandler CRUD de productos. Alta/edición por multipart: campos de
// texto, archivos en "images" y las variantes como campo JSON "variants".
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	exportUC *usecase.CatalogExportUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, exportUC *usecase.CatalogExportUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, exportUC: exportUC}
}

// Create crea un producto con imágenes y variantes en una sola transacción.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	in.CategoryID, _ = formValue(c, "kategori_id")
	in.Name, _ = formValue(c, "name")
	in.Description, _ = formValue(c, "description")
	in.Status, _ = formValue(c, "status")

	price, err := formDecimal(c, "price")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("price inválido", nil))
	}
	if price != nil {
		in.Price = *price
	}
	stock, err := formInt(c, "stock")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("stock inválido", nil))
	}
	if stock != nil {
		in.Stock = *stock
	}
	if raw, present := formValue(c, "variants"); present && raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Variants); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("variants inválido: se espera un arreglo JSON", nil))
		}
	}

	out, err := h.uc.Create(c.Context(), in, formFiles(c, "images"))
	if err != nil {
		return writeError(c, err)
	}
	return created(c, "producto creado", out)
}

// GetByID obtiene un producto con imágenes y variantes.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return ok(c, "producto", out)
}

// List lista productos; los anónimos solo ven publicados de categorías visibles.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(onlyVisibleFor(c), c.Query("kategori_id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "productos", out)
}

// Search busca productos por nombre.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.Search(c.Query("q"), onlyVisibleFor(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, "productos", out)
}

// Update modifica un producto (multipart parcial). Variantes presentes en el
// form reemplazan el conjunto completo.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if v, present := formValue(c, "kategori_id"); present {
		in.CategoryID = &v
	}
	if v, present := formValue(c, "name"); present {
		in.Name = &v
	}
	if v, present := formValue(c, "description"); present {
		in.Description = &v
	}
	if v, present := formValue(c, "status"); present {
		in.Status = &v
	}
	var err error
	if in.Price, err = formDecimal(c, "price"); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("price inválido", nil))
	}
	if in.Stock, err = formInt(c, "stock"); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("stock inválido", nil))
	}
	if raw, present := formValue(c, "variants"); present {
		in.HasVariants = true
		in.Variants = []dto.VariantRequest{}
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &in.Variants); err != nil {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("variants inválido: se espera un arreglo JSON", nil))
			}
		}
	}

	out, err := h.uc.Update(c.Context(), c.Params("id"), in, formFiles(c, "images"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return ok(c, "producto actualizado", out)
}

// SetStatus publica o despublica un producto.
func (h *ProductHandler) SetStatus(c *fiber.Ctx) error {
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
		return notFound(c, "producto no encontrado")
	}
	return ok(c, "estado actualizado", out)
}

// Delete elimina el producto, sus filas dependientes y sus archivos de imagen.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return ok(c, "producto eliminado", nil)
}

// ExportPDF descarga el catálogo completo en PDF.
func (h *ProductHandler) ExportPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.exportUC.ExportPDF()
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalogo.pdf"`)
	return c.Send(pdfBytes)
}
