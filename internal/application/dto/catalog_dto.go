package dto

import "time"

// CatalogDocument datos de una página del catálogo exportada a PDF.
type CatalogDocument struct {
	Title       string
	Owner       string
	CompanyID   int
	Page        PageResponse
	Cards       []ProductCard
	GeneratedAt time.Time
	// Link URL de la misma página en el dashboard (se imprime como QR). Opcional.
	Link string
}
