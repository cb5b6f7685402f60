package http

import (
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Helpers para formularios multipart: los endpoints de catálogo reciben
// campos de texto junto con archivos de imagen, y en ediciones parciales
// importa distinguir campo ausente de campo vacío.

// formValue devuelve el valor del campo y si venía en el form.
func formValue(c *fiber.Ctx, key string) (string, bool) {
	form, err := c.MultipartForm()
	if err == nil && form != nil {
		if vs, okKey := form.Value[key]; okKey && len(vs) > 0 {
			return vs[0], true
		}
		return "", false
	}
	// Fallback para forms urlencoded.
	if c.Request().PostArgs().Has(key) {
		return c.FormValue(key), true
	}
	return "", false
}

// formBool parsea un campo booleano ("true"/"1"/"false"/"0").
func formBool(c *fiber.Ctx, key string) (*bool, error) {
	raw, present := formValue(c, key)
	if !present {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// formInt parsea un campo entero.
func formInt(c *fiber.Ctx, key string) (*int, error) {
	raw, present := formValue(c, key)
	if !present {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// formDecimal parsea un campo decimal (precio).
func formDecimal(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw, present := formValue(c, key)
	if !present {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// formFile devuelve el archivo del campo o nil si no venía.
func formFile(c *fiber.Ctx, key string) *multipart.FileHeader {
	fh, err := c.FormFile(key)
	if err != nil {
		return nil
	}
	return fh
}

// formFiles devuelve todos los archivos de un campo multipart.
func formFiles(c *fiber.Ctx, key string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[key]
}
