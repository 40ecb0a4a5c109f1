package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
)

// currentUser copia de la sesión de la petición, o nil.
func currentUser(c *fiber.Ctx) *entity.User {
	if h := GetSession(c); h != nil {
		return h.User()
	}
	return nil
}

// render pinta view dentro del layout agregando el estado de sesión que usa la barra de navegación.
func render(c *fiber.Ctx, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	h := GetSession(c)
	data["User"] = currentUser(c)
	data["Authenticated"] = h != nil && h.IsAuthenticated()
	return c.Render(view, data, LayoutMain)
}
