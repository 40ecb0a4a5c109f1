package mockapi

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
)

var (
	sampleNames     = []string{"T-Shirt", "Hoodie", "Sneakers", "Cap", "Backpack", "Jacket", "Scarf"}
	sampleSizes     = []string{"S", "M", "L", "XL"}
	sampleColors    = []string{"Black", "White", "Red", "Navy"}
	sampleSuppliers = []string{"Tashkent Textile", "Samarkand Wear", ""}
)

// SampleCatalog catálogo determinista de n productos con variantes, existencias y precios.
// Alterna el formato de propiedades (properties / productProperties, ruso / inglés) para
// ejercitar todas las formas que entrega el sistema OX.
func SampleCatalog(n int) []entity.Product {
	out := make([]entity.Product, 0, n)
	for i := 0; i < n; i++ {
		id := i + 1
		name := sampleNames[i%len(sampleNames)]
		size := sampleSizes[i%len(sampleSizes)]
		color := sampleColors[(i/2)%len(sampleColors)]

		props := []entity.ProductProperty{{Name: "Размер", Value: size}, {Name: "Цвет", Value: color}}
		p := entity.Product{
			ID:       id,
			Name:     name,
			SKU:      fmt.Sprintf("OX-%04d", id),
			Supplier: sampleSuppliers[i%len(sampleSuppliers)],
		}
		if i%3 == 0 {
			p.ProductName = fmt.Sprintf("%s %s %s", name, color, size)
			p.Barcode = fmt.Sprintf("478%010d", id)
		}
		if i%2 == 0 {
			p.Properties = props
		} else {
			p.ProductProperties = []entity.ProductProperty{{Name: "Size", Value: size}, {Name: "Color", Value: color}}
		}
		if i%5 != 4 {
			p.Unit = "pcs"
		}

		uzs := decimal.NewFromInt(int64(85_000 + 12_500*i))
		usd := uzs.Div(decimal.NewFromInt(12_650)).Round(2)
		loc := 1
		p.Stocks = []entity.ProductStock{
			{Count: decimal.NewFromInt(int64(i % 7)), SellPrice: &entity.SellPrice{UZS: &uzs, USD: &usd}, Location: &loc},
		}
		if i%4 == 1 {
			loc2 := 2
			p.Stocks = append(p.Stocks, entity.ProductStock{Count: decimal.NewFromInt(3), Location: &loc2})
		}
		if i%3 != 2 {
			p.Images = []entity.ProductImage{{
				ID: id,
				URLs: map[string]string{
					"original": fmt.Sprintf("https://picsum.photos/seed/ox%d/600", id),
					"150x_":    fmt.Sprintf("https://picsum.photos/seed/ox%d/150", id),
				},
			}}
		}
		out = append(out, p)
	}
	return out
}
