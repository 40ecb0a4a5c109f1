package ports

import (
	"context"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
)

// CatalogPDFGenerator genera el PDF de una página del catálogo.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, doc dto.CatalogDocument) ([]byte, error)
}
