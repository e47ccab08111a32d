package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/domain/authz"
)

// RequireRole devuelve un middleware Fiber que exige que el rol del token sea
// uno de los indicados. El superusuario pasa siempre. Debe usarse DESPUÉS de
// AuthMiddleware (necesita los claims en Locals).
//
// Comportamiento:
//   - 401 Unauthorized → el token no trae rol (AuthMiddleware no corrió o token viejo).
//   - 403 Forbidden    → rol presente pero no autorizado.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		if localBool(c, LocalIsSuperuser) {
			return c.Next()
		}
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "rol no encontrado en el token",
			})
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "rol '" + role + "' no autorizado para esta operación",
			})
		}
		return c.Next()
	}
}

// RequireStaff exige acceso de staff al módulo de gestión: cualquier rol de
// staff (o superusuario) pasa; una cuenta sin staff recibe 403 aunque su token
// sea válido.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authz.CanAccessModule(GetActor(c)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "la cuenta no tiene acceso al módulo de gestión",
			})
		}
		return c.Next()
	}
}
