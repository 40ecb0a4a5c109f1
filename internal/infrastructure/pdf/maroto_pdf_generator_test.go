package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/infrastructure/pdf"
)

func TestGenerateCatalogPDF(t *testing.T) {
	doc := dto.CatalogDocument{
		Title:     "Catalog",
		Owner:     "a@b.com",
		CompanyID: 3,
		Page:      dto.PageResponse{Page: 1, Size: 10},
		Cards: []dto.ProductCard{
			{ID: 1, Name: "T-Shirt", SKU: "TS-1", Size: "XL", Color: "Red", PriceUZS: "1,250,000 UZS", PriceUSD: "$99.50 USD", Stock: "5 pcs", StockLevel: dto.StockOK},
			{ID: 2, Name: "Cap", SKU: "C-1", Stock: "0 pcs", StockLevel: dto.StockOut},
		},
		GeneratedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
		Link:        "http://localhost:8080/products?page=1",
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateCatalogPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateCatalogPDF_PaginaVacia(t *testing.T) {
	out, err := pdf.NewMarotoPDFGenerator().GenerateCatalogPDF(context.Background(), dto.CatalogDocument{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateCatalogPDF_Cirilico(t *testing.T) {
	doc := dto.CatalogDocument{
		Title:     "Каталог",
		Owner:     "менеджер@пример.uz",
		CompanyID: 1,
		Page:      dto.PageResponse{Page: 2, Size: 10, HasPrev: true},
		Cards: []dto.ProductCard{
			{ID: 1, Name: "Футболка", SKU: "ФТ-1", Size: "Большой", Color: "Красный", Supplier: "Ташкент", Stock: "3 шт", StockLevel: dto.StockLow},
		},
		GeneratedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateCatalogPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.NotContains(t, string(out), "/BaseFont /Helvetica", "el texto usa la fuente UTF-8 embebida")
}
