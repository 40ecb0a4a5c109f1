package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/ports"
	"github.com/jhoicas/ox-dashboard/internal/domain"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
)

// CompanyUseCase vincula y desvincula la empresa OX del usuario.
type CompanyUseCase struct {
	api ports.BackendAPI
}

// NewCompanyUseCase construye el caso de uso con el puerto hacia el backend.
func NewCompanyUseCase(api ports.BackendAPI) *CompanyUseCase {
	return &CompanyUseCase{api: api}
}

// Register vincula la empresa (subdominio + token OX) y refleja en la sesión el rol y la
// empresa que devolvió el backend. El token de sesión no cambia.
func (uc *CompanyUseCase) Register(ctx context.Context, s ports.Session, in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	if s.User() == nil {
		return nil, domain.ErrNoSession
	}
	subdomain := strings.TrimSpace(in.Subdomain)
	apiToken := strings.TrimSpace(in.Token)
	if subdomain == "" || apiToken == "" {
		return nil, domain.ErrInvalidInput
	}

	out, err := uc.api.RegisterCompany(ctx, s, subdomain, apiToken)
	if err != nil {
		return nil, err
	}

	role := out.Role
	companyID := out.CompanyID
	s.UpdateUser(entity.UserPatch{Role: &role, CompanyID: &companyID})
	return out, nil
}

// Delete desvincula la empresa del usuario. Exige confirmación explícita y empresa vinculada;
// tras el borrado el usuario queda sin empresa y con rol manager.
func (uc *CompanyUseCase) Delete(ctx context.Context, s ports.Session, confirmed bool) (*dto.MessageResponse, error) {
	if !confirmed {
		return nil, domain.ErrConfirmationRequired
	}
	user := s.User()
	if user == nil {
		return nil, domain.ErrNoSession
	}
	if !user.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	if !user.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	out, err := uc.api.DeleteCompany(ctx, s, *user.CompanyID)
	if err != nil {
		return nil, err
	}

	manager := entity.RoleManager
	s.UpdateUser(entity.UserPatch{UnsetCompany: true, Role: &manager})
	return out, nil
}
