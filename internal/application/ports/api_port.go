package ports

import (
	"context"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
)

// TokenSource entrega el bearer token de la sesión actual ("" si no hay).
// Lo implementa *session.Holder.
type TokenSource interface {
	Token() string
}

// BackendAPI define el puerto de salida hacia la API REST del backend.
// La implementación concreta es infrastructure/oxapi; en tests se inyecta un stub.
// Todos los fallos (red, estado no-2xx, JSON mal formado) llegan como un único tipo de error
// con mensaje legible.
type BackendAPI interface {
	BeginLogin(ctx context.Context, email string) (*dto.BeginLoginResponse, error)
	VerifyLogin(ctx context.Context, email, otp string) (*dto.VerifyLoginResponse, error)
	RegisterCompany(ctx context.Context, tokens TokenSource, subdomain, apiToken string) (*dto.RegisterCompanyResponse, error)
	DeleteCompany(ctx context.Context, tokens TokenSource, companyID int) (*dto.MessageResponse, error)
	// ListProducts devuelve la página ya normalizada, sin importar el sobre de la respuesta.
	ListProducts(ctx context.Context, tokens TokenSource, page, size int) ([]entity.Product, error)
}

// Session identidad del navegador actual. La implementa *session.Holder.
type Session interface {
	TokenSource
	User() *entity.User
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	UpdateUser(patch entity.UserPatch)
}
