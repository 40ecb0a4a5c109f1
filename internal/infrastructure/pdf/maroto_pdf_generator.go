// Package pdf genera el catálogo de productos en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Empresa     │  Página + Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Talla/Color | UZS | USD | Stock     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: usuario + QR con el enlace a la página              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/ports"
)

var _ ports.CatalogPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 200, Green: 30, Blue: 30}
	colorAmber   = &props.Color{Red: 180, Green: 110, Blue: 0}
)

// ── Fuente ────────────────────────────────────────────────────────────────────

// DejaVu Sans embebida (UTF-8): las fuentes core del PDF no cubren cirílico.
const fontFamily = "dejavu"

//go:embed fonts/DejaVuSans.ttf
var fontRegular []byte

//go:embed fonts/DejaVuSans-Bold.ttf
var fontBold []byte

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.CatalogPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCatalogPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCatalogPDF(_ context.Context, doc dto.CatalogDocument) ([]byte, error) {
	fonts, err := repository.New().
		AddUTF8FontFromBytes(fontFamily, fontstyle.Normal, fontRegular).
		AddUTF8FontFromBytes(fontFamily, fontstyle.Italic, fontRegular).
		AddUTF8FontFromBytes(fontFamily, fontstyle.Bold, fontBold).
		AddUTF8FontFromBytes(fontFamily, fontstyle.BoldItalic, fontBold).
		Load()
	if err != nil {
		return nil, fmt.Errorf("pdf: cargar fuentes: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithCustomFonts(fonts).
		WithDefaultFont(&props.Font{Family: fontFamily, Size: 9}).
		WithTitle(nonEmpty(doc.Title, "Catalog"), true).
		WithAuthor(nonEmpty(doc.Owner, "OX Dashboard"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(doc.Cards) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No products on this page", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range tableDetailRows(doc.Cards) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + empresa (izq) y página + fecha (der).
func headerRow(doc dto.CatalogDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(doc.Title, "Catalog"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Company #%d", doc.CompanyID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PRODUCT CATALOG", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Page %d", doc.Page.Page), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Product", 4, align.Left),
		h("Size / Color", 2, align.Left),
		h("UZS", 2, align.Right),
		h("USD", 1, align.Right),
		h("Stock", 1, align.Right),
	)
}

// tableDetailRows: una fila por producto.
func tableDetailRows(cards []dto.ProductCard) []core.Row {
	result := make([]core.Row, 0, len(cards))
	for _, c := range cards {
		name := c.Name
		if c.Supplier != "" {
			name += " (" + c.Supplier + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(c.SKU, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(variant(c), props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(nonEmpty(c.PriceUZS, "-"), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(nonEmpty(strings.TrimSuffix(c.PriceUSD, " USD"), "-"), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(c.Stock, props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1, Color: stockColor(c.StockLevel)})),
		))
	}
	return result
}

// footerRow: quién exportó y QR con el enlace a la página.
func footerRow(doc dto.CatalogDocument) core.Row {
	info := col.New(8).Add(
		text.New("Exported by "+nonEmpty(doc.Owner, "-"), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		}),
		text.New(fmt.Sprintf("%d products, %d per page", len(doc.Cards), doc.Page.Size), props.Text{
			Size: 8, Top: 7, Color: colorGray,
		}),
	)
	if doc.Link == "" {
		return row.New(14).Add(info, col.New(4))
	}
	return row.New(30).Add(
		info,
		col.New(4).Add(code.NewQr(doc.Link, props.Rect{Percent: 90, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func variant(c dto.ProductCard) string {
	switch {
	case c.Size != "" && c.Color != "":
		return c.Size + " / " + c.Color
	case c.Size != "":
		return c.Size
	default:
		return c.Color
	}
}

func stockColor(level string) *props.Color {
	switch level {
	case dto.StockOut:
		return colorRed
	case dto.StockLow:
		return colorAmber
	default:
		return nil
	}
}
