package dto

import "github.com/jhoicas/ox-dashboard/internal/domain/entity"

// RegisterCompanyRequest vincula una empresa OX: subdominio + token de la API externa.
type RegisterCompanyRequest struct {
	Subdomain string `json:"subdomain" form:"subdomain" validate:"required,max=63"`
	Token     string `json:"token" form:"token" validate:"required"`
}

// RegisterCompanyResponse respuesta de POST /register-company.
type RegisterCompanyResponse struct {
	Message   string      `json:"message"`
	Role      entity.Role `json:"role"`
	CompanyID int         `json:"companyId"`
}

// DeleteCompanyRequest formulario de borrado; Confirm debe venir marcado.
type DeleteCompanyRequest struct {
	Confirm string `form:"confirm"`
}

// Confirmed indica si el usuario aceptó explícitamente el borrado.
func (r DeleteCompanyRequest) Confirmed() bool {
	return r.Confirm == "yes" || r.Confirm == "on" || r.Confirm == "true"
}
