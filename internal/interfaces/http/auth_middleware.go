package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/pkg/jwt"
)

// SessionCookie nombre de la cookie HttpOnly con el token de sesión.
const SessionCookie = "brickapp_session"

// Locals keys de la sesión en Fiber.
const (
	LocalUserID    = "user_id"
	LocalEmpresaID = "empresa_id"
	LocalRolID     = "rol_id"
	LocalPermisos  = "permisos"
	LocalClaims    = "claims"
)

// RevocationChecker consulta si la sesión fue revocada: logout, usuario desactivado
// o permisos del rol cambiados después de emitir el token.
type RevocationChecker interface {
	SesionRevocada(ctx context.Context, claims *jwt.Claims) (bool, error)
}

// AuthMiddleware valida el JWT (header Bearer o cookie de sesión) y carga la sesión en c.Locals.
// revoked puede ser nil.
func AuthMiddleware(jwtSecret string, revoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := extractToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token de sesión requerido"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || claims.UserID == "" || claims.EmpresaID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if revoked != nil {
			r, err := revoked.SesionRevocada(c.UserContext(), claims)
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_CHECK_FAILED", Message: "no se pudo verificar la sesión, intente más tarde"})
			}
			if r {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "REVOKED_TOKEN", Message: "la sesión fue cerrada"})
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmpresaID, claims.EmpresaID)
		c.Locals(LocalRolID, claims.RolID)
		c.Locals(LocalPermisos, claims.Permisos)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// extractToken prioriza el header Authorization; sin header usa la cookie.
// ok=false indica un header presente pero mal formado.
func extractToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return strings.TrimSpace(c.Cookies(SessionCookie)), true
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el id del usuario de la sesión.
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetEmpresaID devuelve la empresa (tenant) de la sesión.
func GetEmpresaID(c *fiber.Ctx) string { return localString(c, LocalEmpresaID) }

// GetRolID devuelve el rol de la sesión.
func GetRolID(c *fiber.Ctx) string { return localString(c, LocalRolID) }

// GetPermisos devuelve los códigos de permiso de la sesión.
func GetPermisos(c *fiber.Ctx) []string {
	p, _ := c.Locals(LocalPermisos).([]string)
	return p
}

func getClaims(c *fiber.Ctx) *jwt.Claims {
	cl, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return cl
}
