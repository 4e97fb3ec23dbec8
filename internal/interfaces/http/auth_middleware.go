package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/charity-reports-api/internal/application/dto"
	"github.com/jhoicas/charity-reports-api/pkg/jwt"
)

// Roles reconocidos en el claim "role".
const (
	RoleAdmin          = "ADMIN"
	RoleCharityManager = "CHARITY_MANAGER"
	RoleVendor         = "VENDOR"
)

// Locals keys para los claims en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalCharityID = "charity_id"
	LocalVendorID  = "vendor_id"
)

// AuthMiddleware valida el Bearer Token JWT y copia los claims a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, strings.ToUpper(claims.Role))
		c.Locals(LocalCharityID, claims.CharityID)
		c.Locals(LocalVendorID, claims.VendorID)
		return c.Next()
	}
}

// RequireRole permite el paso sólo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE si el token no trae rol.
//   - 403 FORBIDDEN si el rol no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToUpper(r)] = true
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRole devuelve el rol en mayúsculas.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetCharityID organización asociada al token (CHARITY_MANAGER).
func GetCharityID(c *fiber.Ctx) string { return localString(c, LocalCharityID) }

// GetVendorID vendedor asociado al token (VENDOR).
func GetVendorID(c *fiber.Ctx) string { return localString(c, LocalVendorID) }
