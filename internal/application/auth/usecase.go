package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/ports"
	"github.com/jhoicas/ox-dashboard/internal/domain"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
)

// AuthUseCase casos de uso de autenticación por código de un solo uso (OTP).
type AuthUseCase struct {
	api ports.BackendAPI
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(api ports.BackendAPI) *AuthUseCase {
	return &AuthUseCase{api: api}
}

// BeginLogin solicita el OTP para el email. El backend de desarrollo devuelve el código en la
// respuesta y la pantalla lo muestra; en producción llegaría por correo.
func (uc *AuthUseCase) BeginLogin(ctx context.Context, in dto.BeginLoginRequest) (*dto.BeginLoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.api.BeginLogin(ctx, email)
}

// Verify canjea email + OTP por un token y abre la sesión con él.
func (uc *AuthUseCase) Verify(ctx context.Context, s ports.Session, in dto.VerifyLoginRequest) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	otp := strings.TrimSpace(in.OTP)
	if email == "" || otp == "" {
		return nil, domain.ErrInvalidInput
	}
	out, err := uc.api.VerifyLogin(ctx, email, otp)
	if err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, domain.ErrInvalidToken
	}
	if err := s.Login(ctx, out.Token); err != nil {
		return nil, err
	}
	return s.User(), nil
}

// Logout cierra la sesión del navegador.
func (uc *AuthUseCase) Logout(ctx context.Context, s ports.Session) error {
	return s.Logout(ctx)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
