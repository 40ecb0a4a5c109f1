package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/usecase"
	"github.com/jhoicas/ox-dashboard/pkg/logger"
)

// CompanyHandler registro y borrado de la empresa vinculada.
type CompanyHandler struct {
	uc  *usecase.CompanyUseCase
	log *logger.Logger
}

// NewCompanyHandler construye el handler de empresas.
func NewCompanyHandler(uc *usecase.CompanyUseCase, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{uc: uc, log: log}
}

// RegisterPage GET /register.
func (h *CompanyHandler) RegisterPage(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Title": "Register Company"})
}

// Register POST /register: vincula la empresa y muestra el rol y la empresa asignados.
func (h *CompanyHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return render(c, "register", fiber.Map{"Title": "Register Company", "Error": "Invalid form"})
	}
	data := fiber.Map{"Title": "Register Company", "Subdomain": in.Subdomain}
	if msg := validateStruct(in); msg != "" {
		data["Error"] = msg
		return render(c, "register", data)
	}

	out, err := h.uc.Register(c.Context(), GetSession(c), in)
	if err != nil {
		data["Error"] = userMessage(err)
		return render(c, "register", data)
	}
	h.log.Info().Int("company_id", out.CompanyID).Str("role", string(out.Role)).Msg("empresa vinculada")
	data["Success"] = out
	return render(c, "register", data)
}

// CompaniesPage GET /companies (solo admin).
func (h *CompanyHandler) CompaniesPage(c *fiber.Ctx) error {
	return render(c, "companies", fiber.Map{"Title": "Company Management"})
}

// Delete POST /companies/delete: exige la casilla de confirmación marcada.
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return render(c, "companies", fiber.Map{"Title": "Company Management", "Error": "Invalid form"})
	}

	companyID := currentUser(c).CompanyID
	if _, err := h.uc.Delete(c.Context(), GetSession(c), in.Confirmed()); err != nil {
		return render(c, "companies", fiber.Map{"Title": "Company Management", "Error": userMessage(err)})
	}
	if companyID != nil {
		h.log.Info().Int("company_id", *companyID).Msg("empresa desvinculada")
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}
