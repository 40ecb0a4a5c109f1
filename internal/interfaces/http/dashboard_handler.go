package http

import "github.com/gofiber/fiber/v2"

// DashboardHandler pantallas de inicio y resumen de cuenta.
type DashboardHandler struct{}

// NewDashboardHandler construye el handler.
func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// Home GET /.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	return render(c, "home", fiber.Map{})
}

// Dashboard GET /dashboard: perfil, estado de la empresa y accesos según rol.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "dashboard", fiber.Map{"Title": "Dashboard"})
}
