package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product producto del sistema OX tal como lo entrega el backend. El dashboard nunca lo modifica.
type Product struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	ProductName       string            `json:"productName,omitempty"`
	SKU               string            `json:"sku"`
	Barcode           string            `json:"barcode,omitempty"`
	Supplier          string            `json:"supplier,omitempty"`
	Unit              string            `json:"unit,omitempty"`
	Properties        []ProductProperty `json:"properties,omitempty"`
	ProductProperties []ProductProperty `json:"productProperties,omitempty"`
	Stocks            []ProductStock    `json:"stocks,omitempty"`
	Images            []ProductImage    `json:"images,omitempty"`
}

// ProductProperty par nombre/valor (talla, color, ...).
type ProductProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductStock existencias en una ubicación con su precio de venta.
type ProductStock struct {
	Count     decimal.Decimal `json:"count"`
	SellPrice *SellPrice      `json:"sellPrice,omitempty"`
	Location  *int            `json:"location,omitempty"`
}

// SellPrice precio de venta por moneda.
type SellPrice struct {
	UZS *decimal.Decimal `json:"UZS,omitempty"`
	USD *decimal.Decimal `json:"USD,omitempty"`
}

// ProductImage imagen con URLs por variante de tamaño ("100x_", "150x_", "300x_", "original").
type ProductImage struct {
	ID   int               `json:"id"`
	URLs map[string]string `json:"urls"`
}

// Orden de preferencia de variantes para la miniatura.
var imageSizePreference = []string{"150x_", "100x_", "300x_", "original"}

// DefaultUnit unidad mostrada cuando el producto no la trae.
const DefaultUnit = "pcs"

// DisplayName nombre a mostrar: productName si existe, si no name.
func (p *Product) DisplayName() string {
	if p.ProductName != "" {
		return p.ProductName
	}
	return p.Name
}

// TotalStock suma de existencias de todas las ubicaciones.
func (p *Product) TotalStock() decimal.Decimal {
	total := decimal.Zero
	for _, s := range p.Stocks {
		total = total.Add(s.Count)
	}
	return total
}

// Price precio de venta de la primera ubicación; nil si no hay existencias.
func (p *Product) Price() *SellPrice {
	if len(p.Stocks) == 0 {
		return nil
	}
	if p.Stocks[0].SellPrice == nil {
		return &SellPrice{}
	}
	return p.Stocks[0].SellPrice
}

// ImageURL URL de la miniatura de la primera imagen, o "" si no hay.
func (p *Product) ImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	urls := p.Images[0].URLs
	for _, size := range imageSizePreference {
		if u := urls[size]; u != "" {
			return u
		}
	}
	return ""
}

// Property valor de la primera propiedad cuyo nombre contiene name (sin distinguir mayúsculas).
func (p *Product) Property(name string) string {
	props := p.Properties
	if len(props) == 0 {
		props = p.ProductProperties
	}
	needle := strings.ToLower(name)
	for _, prop := range props {
		if strings.Contains(strings.ToLower(prop.Name), needle) {
			return prop.Value
		}
	}
	return ""
}

// Size talla del producto (propiedad "размер" o "size").
func (p *Product) Size() string {
	if v := p.Property("размер"); v != "" {
		return v
	}
	return p.Property("size")
}

// Color color del producto (propiedad "цвет" o "color").
func (p *Product) Color() string {
	if v := p.Property("цвет"); v != "" {
		return v
	}
	return p.Property("color")
}

// UnitOrDefault unidad de medida o "pcs".
func (p *Product) UnitOrDefault() string {
	if p.Unit != "" {
		return p.Unit
	}
	return DefaultUnit
}
