package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
)

// ok responde 200 con el sobre {success, message, data}.
func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(dto.OK(message, data))
}

// created responde 201 con el sobre {success, message, data}.
func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.OK(message, data))
}

// notFound responde 404.
func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Fail(message, nil))
}

// writeError mapea errores de dominio a códigos HTTP con el sobre uniforme.
func writeError(c *fiber.Ctx, err error) error {
	if ve, isVal := domain.AsValidation(err); isVal {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("validación fallida", ve.Fields))
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("recurso no encontrado", nil))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("registro duplicado", nil))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("conflicto con el estado actual", nil))
	case errors.Is(err, domain.ErrCouponExhausted):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("cupón agotado o fuera de vigencia", nil))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("credenciales inválidas", nil))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("no autorizado", nil))
	case errors.Is(err, domain.ErrInactiveAccount):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail(
			"cuenta no activa: verifica tu email o contacta a soporte",
			fiber.Map{"code": "account_inactive"},
		))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("acceso denegado", nil))
	case errors.Is(err, domain.ErrCodeExpired):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("código expirado", nil))
	case errors.Is(err, domain.ErrCodeInvalid):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("código o token inválido", nil))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("entrada inválida", nil))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("error interno", nil))
}

// pageParams lee limit/offset de la query con defaults y topes.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p.Limit, p.Offset
}
