package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/brickapp/brickapp-api/internal/application/dto"
)

// RequirePermission autoriza si la sesión tiene AL MENOS UNO de los códigos indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 MISSING_ROLE → el token no trae rol.
//   - 403 FORBIDDEN    → el rol no tiene ninguno de los permisos.
func RequirePermission(codes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRolID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "la sesión no tiene rol asignado",
			})
		}
		if len(codes) == 0 {
			return c.Next()
		}
		tiene := make(map[string]struct{}, len(GetPermisos(c)))
		for _, p := range GetPermisos(c) {
			tiene[p] = struct{}{}
		}
		for _, code := range codes {
			if _, ok := tiene[code]; ok {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "requiere permiso: " + strings.Join(codes, " o "),
		})
	}
}
