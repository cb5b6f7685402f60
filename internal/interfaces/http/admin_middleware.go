package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/pkg/jwt"
)

// Locals keys del guard admin/staff.
const (
	LocalAdminID   = "admin_id"
	LocalAdminRole = "admin_role"
)

// bearerToken extrae el token del header Authorization. "" si no hay.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AdminAuthMiddleware valida el Bearer JWT del guard admin/staff y deja
// admin_id y admin_role en c.Locals. La autorización se resuelve antes de
// tocar cualquier recurso.
func AdminAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Authorization header requerido", nil))
		}
		adminID, role, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("token inválido o expirado", nil))
		}
		if _, valid := entity.ParseRole(role); !valid {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("token inválido o expirado", nil))
		}
		c.Locals(LocalAdminID, adminID)
		c.Locals(LocalAdminRole, role)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Sin principal: 401;
// principal con rol fuera del conjunto: 403.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleStr := GetAdminRole(c)
		if roleStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("no autorizado", nil))
		}
		role, valid := entity.ParseRole(roleStr)
		if !valid || !role.Allows(allowed...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("acceso denegado", nil))
		}
		return c.Next()
	}
}

// OptionalAdmin intenta resolver un principal admin sin exigirlo: con token
// válido deja los locals, sin token (o inválido) sigue como anónimo. Lo usan
// los listados públicos para decidir si filtran a solo-visibles.
func OptionalAdmin(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token != "" {
			if adminID, role, err := jwt.Parse(jwtSecret, token); err == nil {
				if _, valid := entity.ParseRole(role); valid {
					c.Locals(LocalAdminID, adminID)
					c.Locals(LocalAdminRole, role)
				}
			}
		}
		return c.Next()
	}
}

// GetAdminID devuelve el ID del admin autenticado ("" si anónimo).
func GetAdminID(c *fiber.Ctx) string {
	v := c.Locals(LocalAdminID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetAdminRole devuelve el rol del admin autenticado ("" si anónimo).
func GetAdminRole(c *fiber.Ctx) string {
	v := c.Locals(LocalAdminRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// onlyVisibleFor indica si un listado debe restringirse a registros
// visibles: true para peticiones sin principal admin.
func onlyVisibleFor(c *fiber.Ctx) bool {
	return GetAdminID(c) == ""
}
