package http

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// Locals keys del guard customer. Guard independiente del admin: token opaco
// resuelto contra la DB, sin principal unificado.
const (
	LocalCustomerID     = "customer_id"
	LocalCustomerStatus = "customer_status"
	LocalCustomerToken  = "customer_token"
)

// CustomerAuthMiddleware resuelve el token opaco contra customer_tokens
// (lookup por hash SHA-256) y carga la cuenta. Token ausente, desconocido o
// expirado: 401. El estado de la cuenta NO se verifica aquí; eso es
// RequireActiveCustomer.
func CustomerAuthMiddleware(tokens repository.CustomerTokenRepository, customers repository.CustomerRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		plain := bearerToken(c)
		if plain == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Authorization header requerido", nil))
		}
		sum := sha256.Sum256([]byte(plain))
		token, err := tokens.GetByHash(hex.EncodeToString(sum[:]))
		if err != nil {
			return writeError(c, err)
		}
		now := time.Now()
		if token == nil || token.Expired(now) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("token inválido o expirado", nil))
		}
		customer, err := customers.GetByID(token.CustomerID)
		if err != nil {
			return writeError(c, err)
		}
		if customer == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("token inválido o expirado", nil))
		}
		_ = tokens.TouchLastUsed(token.ID, now)
		c.Locals(LocalCustomerID, customer.ID)
		c.Locals(LocalCustomerStatus, customer.Status)
		c.Locals(LocalCustomerToken, plain)
		return c.Next()
	}
}

// RequireActiveCustomer exige cuenta en estado active. La respuesta es
// distinguible de un 401: 403 con code account_inactive.
func RequireActiveCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCustomerID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("no autorizado", nil))
		}
		if GetCustomerStatus(c) != entity.CustomerStatusActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(
				"cuenta no activa: verifica tu email o contacta a soporte",
				fiber.Map{"code": "account_inactive"},
			))
		}
		return c.Next()
	}
}

// GetCustomerID devuelve el ID del cliente autenticado ("" si anónimo).
func GetCustomerID(c *fiber.Ctx) string {
	v := c.Locals(LocalCustomerID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCustomerStatus devuelve el estado de la cuenta autenticada.
func GetCustomerStatus(c *fiber.Ctx) string {
	v := c.Locals(LocalCustomerStatus)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCustomerToken devuelve el token plano de la sesión actual.
func GetCustomerToken(c *fiber.Ctx) string {
	v := c.Locals(LocalCustomerToken)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
