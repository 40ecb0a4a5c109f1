package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ox-dashboard/internal/application/auth"
	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/ports"
	"github.com/jhoicas/ox-dashboard/internal/application/session"
	"github.com/jhoicas/ox-dashboard/internal/domain"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
	"github.com/jhoicas/ox-dashboard/internal/infrastructure/tokenstore"
	pkgjwt "github.com/jhoicas/ox-dashboard/pkg/jwt"
)

// fakeAPI solo implementa los pasos de login; el resto no se usa aquí.
type fakeAPI struct {
	ports.BackendAPI
	token    string
	err      error
	gotEmail string
	gotOTP   string
}

func (f *fakeAPI) BeginLogin(_ context.Context, email string) (*dto.BeginLoginResponse, error) {
	f.gotEmail = email
	if f.err != nil {
		return nil, f.err
	}
	return &dto.BeginLoginResponse{OTP: "123456"}, nil
}

func (f *fakeAPI) VerifyLogin(_ context.Context, email, otp string) (*dto.VerifyLoginResponse, error) {
	f.gotEmail, f.gotOTP = email, otp
	if f.err != nil {
		return nil, f.err
	}
	return &dto.VerifyLoginResponse{Token: f.token}, nil
}

func newHolder(t *testing.T) (*session.Holder, *tokenstore.MemoryStore) {
	t.Helper()
	store := tokenstore.NewMemoryStore()
	h := session.NewHolder(store, "sid")
	require.NoError(t, h.Initialize(context.Background()))
	return h, store
}

func TestBeginLogin_NormalizaEmail(t *testing.T) {
	api := &fakeAPI{}
	out, err := auth.NewAuthUseCase(api).BeginLogin(context.Background(), dto.BeginLoginRequest{Email: "  A@B.com "})
	require.NoError(t, err)
	assert.Equal(t, "123456", out.OTP)
	assert.Equal(t, "A@B.com", api.gotEmail, "solo se recortan espacios, el backend decide el caso")
}

func TestBeginLogin_EmailVacio(t *testing.T) {
	_, err := auth.NewAuthUseCase(&fakeAPI{}).BeginLogin(context.Background(), dto.BeginLoginRequest{Email: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVerify_AbreSesion(t *testing.T) {
	cid := 4
	tok, err := pkgjwt.Generate("k", pkgjwt.Claims{Sub: 5, Email: "a@b.com", Role: "admin", CompanyID: &cid}, time.Hour)
	require.NoError(t, err)
	api := &fakeAPI{token: tok}
	h, store := newHolder(t)

	user, err := auth.NewAuthUseCase(api).Verify(context.Background(), h, dto.VerifyLoginRequest{Email: "a@b.com", OTP: " 123456 "})
	require.NoError(t, err)

	assert.Equal(t, &entity.User{ID: 5, Email: "a@b.com", Role: entity.RoleAdmin, CompanyID: &cid}, user)
	assert.Equal(t, "123456", api.gotOTP)
	assert.True(t, h.IsAuthenticated())
	stored, err := store.GetToken(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, tok, stored)
}

func TestVerify_OTPIncorrecto(t *testing.T) {
	api := &fakeAPI{err: errors.New("Invalid OTP")}
	h, store := newHolder(t)

	_, err := auth.NewAuthUseCase(api).Verify(context.Background(), h, dto.VerifyLoginRequest{Email: "a@b.com", OTP: "1"})
	assert.EqualError(t, err, "Invalid OTP")
	assert.False(t, h.IsAuthenticated())
	assert.Equal(t, 0, store.Len())
}

func TestVerify_TokenBasura(t *testing.T) {
	h, _ := newHolder(t)
	uc := auth.NewAuthUseCase(&fakeAPI{token: "basura"})

	_, err := uc.Verify(context.Background(), h, dto.VerifyLoginRequest{Email: "a@b.com", OTP: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.False(t, h.IsAuthenticated())

	_, err = auth.NewAuthUseCase(&fakeAPI{token: ""}).Verify(context.Background(), h, dto.VerifyLoginRequest{Email: "a@b.com", OTP: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	tok, err := pkgjwt.Generate("k", pkgjwt.Claims{Sub: 5, Role: "manager"}, time.Hour)
	require.NoError(t, err)
	h, store := newHolder(t)
	require.NoError(t, h.Login(context.Background(), tok))

	require.NoError(t, auth.NewAuthUseCase(&fakeAPI{}).Logout(context.Background(), h))
	assert.Nil(t, h.User())
	assert.Equal(t, 0, store.Len())
}
