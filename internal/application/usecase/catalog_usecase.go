package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/ports"
	"github.com/jhoicas/ox-dashboard/internal/domain"
)

// CatalogUseCase exporta la página actual del catálogo a PDF.
type CatalogUseCase struct {
	products  *ProductUseCase
	generator ports.CatalogPDFGenerator
	title     string
	now       func() time.Time
}

// NewCatalogUseCase construye el caso de uso. title encabeza el documento.
func NewCatalogUseCase(products *ProductUseCase, generator ports.CatalogPDFGenerator, title string) *CatalogUseCase {
	return &CatalogUseCase{products: products, generator: generator, title: title, now: time.Now}
}

// ExportPDF genera el PDF de la página pedida. Aplica las mismas reglas que Page
// (sesión, empresa vinculada, página mínima 1).
func (uc *CatalogUseCase) ExportPDF(ctx context.Context, s ports.Session, req dto.PageRequest, link string) (pdfBytes []byte, filename string, err error) {
	page, err := uc.products.Page(ctx, s, req)
	if err != nil {
		return nil, "", err
	}
	user := s.User()
	if user == nil || user.CompanyID == nil {
		return nil, "", domain.ErrNoSession
	}

	doc := dto.CatalogDocument{
		Title:       uc.title,
		Owner:       user.Email,
		CompanyID:   *user.CompanyID,
		Page:        page.Page,
		Cards:       page.Items,
		GeneratedAt: uc.now(),
		Link:        link,
	}
	pdfBytes, err = uc.generator.GenerateCatalogPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("catalog: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("catalogo_empresa_%d_p%d.pdf", doc.CompanyID, page.Page.Page)
	return pdfBytes, filename, nil
}
