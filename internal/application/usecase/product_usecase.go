package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/ports"
	"github.com/jhoicas/ox-dashboard/internal/domain"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
)

// DefaultPageSize tamaño de página del catálogo si no se configura otro.
const DefaultPageSize = 10

// Por debajo de este total las existencias se marcan como bajas.
var lowStockThreshold = decimal.NewFromInt(5)

// ProductUseCase consulta paginada del catálogo de la empresa vinculada.
type ProductUseCase struct {
	api      ports.BackendAPI
	pageSize int
}

// NewProductUseCase construye el caso de uso. pageSize <= 0 usa DefaultPageSize.
func NewProductUseCase(api ports.BackendAPI, pageSize int) *ProductUseCase {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ProductUseCase{api: api, pageSize: pageSize}
}

// PageSize tamaño de página fijo.
func (uc *ProductUseCase) PageSize() int { return uc.pageSize }

// Page obtiene una página del catálogo. page < 1 se trata como 1.
// No hay total: HasMore se infiere de una página llena.
func (uc *ProductUseCase) Page(ctx context.Context, s ports.Session, req dto.PageRequest) (*dto.ProductPage, error) {
	user := s.User()
	if user == nil {
		return nil, domain.ErrNoSession
	}
	if !user.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	req.Normalize()

	products, err := uc.api.ListProducts(ctx, s, req.Page, uc.pageSize)
	if err != nil {
		return nil, err
	}
	return &dto.ProductPage{
		Items:    ToCards(products),
		Products: products,
		Page: dto.PageResponse{
			Page:    req.Page,
			Size:    uc.pageSize,
			HasPrev: req.Page > 1,
			HasMore: len(products) == uc.pageSize,
		},
	}, nil
}

// ToCards formatea los productos para pintarlos.
func ToCards(products []entity.Product) []dto.ProductCard {
	p := message.NewPrinter(language.English)
	cards := make([]dto.ProductCard, 0, len(products))
	for i := range products {
		cards = append(cards, toCard(p, &products[i]))
	}
	return cards
}

func toCard(p *message.Printer, prod *entity.Product) dto.ProductCard {
	card := dto.ProductCard{
		ID:       prod.ID,
		Name:     prod.DisplayName(),
		SKU:      prod.SKU,
		Barcode:  prod.Barcode,
		Supplier: prod.Supplier,
		Size:     prod.Size(),
		Color:    prod.Color(),
		ImageURL: prod.ImageURL(),
	}
	if price := prod.Price(); price != nil {
		card.PriceUZS = FormatUZS(p, price.UZS)
		card.PriceUSD = FormatUSD(price.USD)
	}

	total := prod.TotalStock()
	card.Stock = total.String() + " " + prod.UnitOrDefault()
	switch {
	case !total.IsPositive():
		card.StockLevel = dto.StockOut
	case total.LessThan(lowStockThreshold):
		card.StockLevel = dto.StockLow
	default:
		card.StockLevel = dto.StockOK
	}
	return card
}

// FormatUZS "1,250,000 UZS" sin decimales; "" si no hay precio o es cero.
func FormatUZS(p *message.Printer, v *decimal.Decimal) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return p.Sprintf("%d UZS", v.Round(0).IntPart())
}

// FormatUSD "$12.50 USD"; "" si no hay precio o es cero.
func FormatUSD(v *decimal.Decimal) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return "$" + v.StringFixed(2) + " USD"
}
