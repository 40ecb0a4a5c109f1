package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/ports"
	"github.com/jhoicas/ox-dashboard/internal/application/session"
	"github.com/jhoicas/ox-dashboard/internal/application/usecase"
	"github.com/jhoicas/ox-dashboard/internal/domain"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
	"github.com/jhoicas/ox-dashboard/internal/infrastructure/tokenstore"
	pkgjwt "github.com/jhoicas/ox-dashboard/pkg/jwt"
)

// stubAPI implementa ports.BackendAPI en memoria.
type stubAPI struct {
	registerOut *dto.RegisterCompanyResponse
	deleteOut   *dto.MessageResponse
	products    []entity.Product
	err         error

	calls        []string
	gotToken     string
	gotSubdomain string
	gotCompanyID int
	gotPage      int
	gotSize      int
}

var _ ports.BackendAPI = (*stubAPI)(nil)

func (s *stubAPI) BeginLogin(context.Context, string) (*dto.BeginLoginResponse, error) {
	s.calls = append(s.calls, "begin_login")
	return &dto.BeginLoginResponse{OTP: "000000"}, s.err
}

func (s *stubAPI) VerifyLogin(context.Context, string, string) (*dto.VerifyLoginResponse, error) {
	s.calls = append(s.calls, "verify_login")
	return nil, s.err
}

func (s *stubAPI) RegisterCompany(_ context.Context, tokens ports.TokenSource, subdomain, _ string) (*dto.RegisterCompanyResponse, error) {
	s.calls = append(s.calls, "register_company")
	s.gotToken = tokens.Token()
	s.gotSubdomain = subdomain
	if s.err != nil {
		return nil, s.err
	}
	return s.registerOut, nil
}

func (s *stubAPI) DeleteCompany(_ context.Context, tokens ports.TokenSource, companyID int) (*dto.MessageResponse, error) {
	s.calls = append(s.calls, "delete_company")
	s.gotToken = tokens.Token()
	s.gotCompanyID = companyID
	if s.err != nil {
		return nil, s.err
	}
	return s.deleteOut, nil
}

func (s *stubAPI) ListProducts(_ context.Context, tokens ports.TokenSource, page, size int) ([]entity.Product, error) {
	s.calls = append(s.calls, "list_products")
	s.gotToken = tokens.Token()
	s.gotPage, s.gotSize = page, size
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func intPtr(v int) *int { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// loggedIn devuelve un holder autenticado con los claims dados.
func loggedIn(t *testing.T, claims pkgjwt.Claims) *session.Holder {
	t.Helper()
	h := session.NewHolder(tokenstore.NewMemoryStore(), "sid")
	require.NoError(t, h.Initialize(context.Background()))
	tok, err := pkgjwt.Generate("k", claims, time.Hour)
	require.NoError(t, err)
	require.NoError(t, h.Login(context.Background(), tok))
	return h
}

func anonymous(t *testing.T) *session.Holder {
	t.Helper()
	h := session.NewHolder(tokenstore.NewMemoryStore(), "sid")
	require.NoError(t, h.Initialize(context.Background()))
	return h
}

func makeProducts(n int) []entity.Product {
	out := make([]entity.Product, n)
	for i := range out {
		out[i] = entity.Product{ID: i + 1, Name: fmt.Sprintf("P%d", i+1), SKU: fmt.Sprintf("SKU-%d", i+1)}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// CompanyUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_ActualizaRolYEmpresa(t *testing.T) {
	api := &stubAPI{registerOut: &dto.RegisterCompanyResponse{Message: "ok", Role: entity.RoleAdmin, CompanyID: 12}}
	h := loggedIn(t, pkgjwt.Claims{Sub: 1, Email: "a@b.com", Role: "manager"})
	tokenBefore := h.Token()

	out, err := usecase.NewCompanyUseCase(api).Register(context.Background(), h,
		dto.RegisterCompanyRequest{Subdomain: "  Acme ", Token: "ox-tok"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.Equal(t, 12, out.CompanyID)
	assert.Equal(t, &entity.User{ID: 1, Email: "a@b.com", Role: entity.RoleAdmin, CompanyID: intPtr(12)}, h.User())
	assert.Equal(t, tokenBefore, h.Token())
	assert.Equal(t, tokenBefore, api.gotToken, "la llamada va con el bearer de la sesión")
	assert.Equal(t, "Acme", api.gotSubdomain, "solo se recortan espacios")
}

func TestRegister_ErrorDelBackend_NoCambiaSesion(t *testing.T) {
	api := &stubAPI{err: errors.New("Invalid OX token")}
	h := loggedIn(t, pkgjwt.Claims{Sub: 1, Role: "manager"})

	_, err := usecase.NewCompanyUseCase(api).Register(context.Background(), h,
		dto.RegisterCompanyRequest{Subdomain: "acme", Token: "bad"})
	assert.EqualError(t, err, "Invalid OX token")
	assert.Equal(t, entity.RoleManager, h.User().Role)
	assert.Nil(t, h.User().CompanyID)
}

func TestRegister_Validaciones(t *testing.T) {
	api := &stubAPI{}
	uc := usecase.NewCompanyUseCase(api)

	_, err := uc.Register(context.Background(), anonymous(t), dto.RegisterCompanyRequest{Subdomain: "a", Token: "b"})
	assert.ErrorIs(t, err, domain.ErrNoSession)

	h := loggedIn(t, pkgjwt.Claims{Sub: 1, Role: "manager"})
	_, err = uc.Register(context.Background(), h, dto.RegisterCompanyRequest{Subdomain: " ", Token: "b"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, api.calls)
}

func TestDelete_DesvinculaYQuedaManager(t *testing.T) {
	api := &stubAPI{deleteOut: &dto.MessageResponse{Message: "deleted"}}
	h := loggedIn(t, pkgjwt.Claims{Sub: 2, Email: "x@y.com", Role: "admin", CompanyID: intPtr(12)})

	out, err := usecase.NewCompanyUseCase(api).Delete(context.Background(), h, true)
	require.NoError(t, err)

	assert.Equal(t, "deleted", out.Message)
	assert.Equal(t, 12, api.gotCompanyID)
	u := h.User()
	assert.Nil(t, u.CompanyID)
	assert.Equal(t, entity.RoleManager, u.Role)
	assert.Equal(t, "x@y.com", u.Email)
}

func TestDelete_RequiereConfirmacion(t *testing.T) {
	api := &stubAPI{}
	h := loggedIn(t, pkgjwt.Claims{Sub: 2, Role: "admin", CompanyID: intPtr(12)})

	_, err := usecase.NewCompanyUseCase(api).Delete(context.Background(), h, false)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.Empty(t, api.calls, "sin confirmación no se llama al backend")
	assert.Equal(t, 12, *h.User().CompanyID)
}

func TestDelete_SinEmpresaOSinRol(t *testing.T) {
	api := &stubAPI{}
	uc := usecase.NewCompanyUseCase(api)

	_, err := uc.Delete(context.Background(), loggedIn(t, pkgjwt.Claims{Sub: 2, Role: "admin"}), true)
	assert.ErrorIs(t, err, domain.ErrNoCompany)

	_, err = uc.Delete(context.Background(), loggedIn(t, pkgjwt.Claims{Sub: 3, Role: "manager", CompanyID: intPtr(1)}), true)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Delete(context.Background(), anonymous(t), true)
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Empty(t, api.calls)
}

func TestDelete_ErrorDelBackend_ConservaEmpresa(t *testing.T) {
	api := &stubAPI{err: errors.New("Request failed")}
	h := loggedIn(t, pkgjwt.Claims{Sub: 2, Role: "admin", CompanyID: intPtr(12)})

	_, err := usecase.NewCompanyUseCase(api).Delete(context.Background(), h, true)
	assert.EqualError(t, err, "Request failed")
	assert.Equal(t, 12, *h.User().CompanyID)
	assert.Equal(t, entity.RoleAdmin, h.User().Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestPage_PaginaLlena_HasMore(t *testing.T) {
	api := &stubAPI{products: makeProducts(10)}
	h := loggedIn(t, pkgjwt.Claims{Sub: 1, Role: "manager", CompanyID: intPtr(3)})

	page, err := usecase.NewProductUseCase(api, 10).Page(context.Background(), h, dto.PageRequest{Page: 1})
	require.NoError(t, err)

	assert.True(t, page.Page.HasMore)
	assert.False(t, page.Page.HasPrev)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 1, api.gotPage)
	assert.Equal(t, 10, api.gotSize)
}

func TestPage_PaginaIncompleta_SinMas(t *testing.T) {
	api := &stubAPI{products: makeProducts(7)}
	h := loggedIn(t, pkgjwt.Claims{Sub: 1, Role: "manager", CompanyID: intPtr(3)})

	page, err := usecase.NewProductUseCase(api, 10).Page(context.Background(), h, dto.PageRequest{Page: 3})
	require.NoError(t, err)

	assert.False(t, page.Page.HasMore)
	assert.True(t, page.Page.HasPrev)
	assert.Equal(t, 3, page.Page.Page)
	assert.Len(t, page.Products, 7)
}

func TestPage_PaginaMenorQueUno(t *testing.T) {
	api := &stubAPI{products: makeProducts(0)}
	h := loggedIn(t, pkgjwt.Claims{Sub: 1, Role: "manager", CompanyID: intPtr(3)})

	page, err := usecase.NewProductUseCase(api, 0).Page(context.Background(), h, dto.PageRequest{Page: -4})
	require.NoError(t, err)

	assert.Equal(t, 1, api.gotPage)
	assert.Equal(t, usecase.DefaultPageSize, api.gotSize)
	assert.False(t, page.Page.HasPrev)
	assert.False(t, page.Page.HasMore)
	assert.NotNil(t, page.Items)
}

func TestPage_SinEmpresa(t *testing.T) {
	api := &stubAPI{}
	h := loggedIn(t, pkgjwt.Claims{Sub: 1, Role: "manager"})

	_, err := usecase.NewProductUseCase(api, 10).Page(context.Background(), h, dto.PageRequest{Page: 1})
	assert.ErrorIs(t, err, domain.ErrNoCompany)
	assert.Empty(t, api.calls)
}

func TestToCards_Formato(t *testing.T) {
	loc := 1
	products := []entity.Product{
		{
			ID: 1, Name: "Tee", ProductName: "T-Shirt", SKU: "TS-1", Unit: "pcs",
			Properties: []entity.ProductProperty{{Name: "Размер", Value: "XL"}, {Name: "Color", Value: "Red"}},
			Stocks: []entity.ProductStock{
				{Count: decimal.NewFromInt(3), SellPrice: &entity.SellPrice{UZS: dec("1250000"), USD: dec("99.5")}, Location: &loc},
				{Count: decimal.NewFromInt(2)},
			},
		},
		{ID: 2, Name: "Cap", SKU: "C-1", Stocks: []entity.ProductStock{{Count: decimal.NewFromInt(1)}}},
		{ID: 3, Name: "Bag", SKU: "B-1", Unit: "box", Stocks: []entity.ProductStock{
			{Count: decimal.NewFromInt(0), SellPrice: &entity.SellPrice{UZS: dec("0")}},
		}},
	}

	cards := usecase.ToCards(products)
	require.Len(t, cards, 3)

	assert.Equal(t, "T-Shirt", cards[0].Name)
	assert.Equal(t, "XL", cards[0].Size)
	assert.Equal(t, "Red", cards[0].Color)
	assert.Equal(t, "1,250,000 UZS", cards[0].PriceUZS)
	assert.Equal(t, "$99.50 USD", cards[0].PriceUSD)
	assert.Equal(t, "5 pcs", cards[0].Stock)
	assert.Equal(t, dto.StockOK, cards[0].StockLevel)

	assert.Empty(t, cards[1].PriceUZS, "sin sellPrice no hay precio")
	assert.Equal(t, dto.StockLow, cards[1].StockLevel)

	assert.Empty(t, cards[2].PriceUZS, "precio cero no se muestra")
	assert.Equal(t, "0 box", cards[2].Stock)
	assert.Equal(t, dto.StockOut, cards[2].StockLevel)
}

func TestFormatUZS_Redondea(t *testing.T) {
	p := message.NewPrinter(language.English)
	assert.Equal(t, "1,001 UZS", usecase.FormatUZS(p, dec("1000.6")))
	assert.Empty(t, usecase.FormatUZS(p, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// CatalogUseCase
// ──────────────────────────────────────────────────────────────────────────────

type spyGenerator struct {
	doc dto.CatalogDocument
	err error
}

func (g *spyGenerator) GenerateCatalogPDF(_ context.Context, doc dto.CatalogDocument) ([]byte, error) {
	g.doc = doc
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestExportPDF(t *testing.T) {
	api := &stubAPI{products: makeProducts(4)}
	gen := &spyGenerator{}
	h := loggedIn(t, pkgjwt.Claims{Sub: 1, Email: "a@b.com", Role: "admin", CompanyID: intPtr(8)})
	uc := usecase.NewCatalogUseCase(usecase.NewProductUseCase(api, 10), gen, "Catalog")

	pdfBytes, filename, err := uc.ExportPDF(context.Background(), h, dto.PageRequest{Page: 2}, "http://x/products?page=2")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(pdfBytes), "%PDF"))
	assert.Equal(t, "catalogo_empresa_8_p2.pdf", filename)
	assert.Equal(t, "a@b.com", gen.doc.Owner)
	assert.Equal(t, 8, gen.doc.CompanyID)
	assert.Len(t, gen.doc.Cards, 4)
	assert.Equal(t, "http://x/products?page=2", gen.doc.Link)
}

func TestExportPDF_SinEmpresa(t *testing.T) {
	gen := &spyGenerator{}
	h := loggedIn(t, pkgjwt.Claims{Sub: 1, Role: "manager"})
	uc := usecase.NewCatalogUseCase(usecase.NewProductUseCase(&stubAPI{}, 10), gen, "Catalog")

	_, _, err := uc.ExportPDF(context.Background(), h, dto.PageRequest{Page: 1}, "")
	assert.ErrorIs(t, err, domain.ErrNoCompany)
}
