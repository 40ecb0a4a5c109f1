package dto

import "github.com/jhoicas/ox-dashboard/internal/domain/entity"

// Niveles de existencias de una tarjeta.
const (
	StockOut = "out"
	StockLow = "low"
	StockOK  = "ok"
)

// ProductCard producto listo para pintar (precios y existencias ya formateados).
type ProductCard struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	Barcode    string `json:"barcode,omitempty"`
	Supplier   string `json:"supplier,omitempty"`
	Size       string `json:"size,omitempty"`
	Color      string `json:"color,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	PriceUZS   string `json:"price_uzs,omitempty"`
	PriceUSD   string `json:"price_usd,omitempty"`
	Stock      string `json:"stock"`
	StockLevel string `json:"stock_level"`
}

// ProductPage una página del catálogo.
type ProductPage struct {
	Items    []ProductCard    `json:"items"`
	Products []entity.Product `json:"-"`
	Page     PageResponse     `json:"page"`
}
