package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
)

// Los guards se evalúan después de SessionMiddleware, con la sesión ya resuelta (loading=false).
// En /api/* responden JSON; en pantallas redirigen.

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

// RequireAuth redirige a /login si el navegador no tiene sesión autenticada.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := GetSession(c)
		if h == nil || h.IsLoading() || !h.IsAuthenticated() {
			if isAPI(c) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere iniciar sesión"})
			}
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireRole redirige a /dashboard si el rol de la sesión no es role. Usar después de RequireAuth.
func RequireRole(role entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := currentUser(c)
		if user == nil || user.Role != role {
			if isAPI(c) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol insuficiente"})
			}
			return c.Redirect("/dashboard", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireCompany exige empresa vinculada; si no hay pinta el estado "No Company Attached".
// Usar después de RequireAuth.
func RequireCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !currentUser(c).HasCompany() {
			if isAPI(c) {
				return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_COMPANY", Message: "el usuario no tiene empresa vinculada"})
			}
			return render(c, "products", fiber.Map{"Title": "Products", "NoCompany": true})
		}
		return c.Next()
	}
}
