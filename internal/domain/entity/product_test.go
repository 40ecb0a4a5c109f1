package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
)

const productJSON = `{
	"id": 11,
	"name": "T-shirt",
	"productName": "Футболка базовая",
	"sku": "TS-001",
	"barcode": "4780000000011",
	"properties": [{"name": "Размер", "value": "XL"}, {"name": "Цвет", "value": "Черный"}],
	"stocks": [
		{"count": 3, "sellPrice": {"UZS": 125000, "USD": 9.9}, "location": 1},
		{"count": 2.5, "sellPrice": null}
	],
	"images": [{"id": 1, "urls": {"300x_": "https://cdn/300.jpg", "100x_": "https://cdn/100.jpg"}}]
}`

func TestProduct_Helpers(t *testing.T) {
	var p entity.Product
	require.NoError(t, json.Unmarshal([]byte(productJSON), &p))

	assert.Equal(t, "Футболка базовая", p.DisplayName())
	assert.True(t, p.TotalStock().Equal(decimal.RequireFromString("5.5")))
	assert.Equal(t, "https://cdn/100.jpg", p.ImageURL(), "100x_ tiene prioridad sobre 300x_")
	assert.Equal(t, "XL", p.Size())
	assert.Equal(t, "Черный", p.Color())
	assert.Equal(t, entity.DefaultUnit, p.UnitOrDefault())

	price := p.Price()
	require.NotNil(t, price)
	require.NotNil(t, price.UZS)
	assert.True(t, price.UZS.Equal(decimal.NewFromInt(125000)))
	require.NotNil(t, price.USD)
	assert.Equal(t, "9.9", price.USD.String())
}

func TestProduct_SinDatosOpcionales(t *testing.T) {
	p := entity.Product{ID: 1, Name: "Plain", SKU: "P-1", Unit: "kg",
		ProductProperties: []entity.ProductProperty{{Name: "Color", Value: "Red"}}}

	assert.Equal(t, "Plain", p.DisplayName())
	assert.True(t, p.TotalStock().IsZero())
	assert.Nil(t, p.Price())
	assert.Empty(t, p.ImageURL())
	assert.Empty(t, p.Size())
	assert.Equal(t, "Red", p.Color(), "productProperties se usa si properties está vacío")
	assert.Equal(t, "kg", p.UnitOrDefault())
}

func TestUserPatch_Apply(t *testing.T) {
	company := 5
	admin := entity.RoleAdmin
	base := entity.User{ID: 1, Email: "a@b.com", Role: entity.RoleManager}

	got := entity.UserPatch{CompanyID: &company, Role: &admin}.Apply(base)
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, entity.RoleAdmin, got.Role)
	require.NotNil(t, got.CompanyID)
	assert.Equal(t, 5, *got.CompanyID)

	company = 9
	assert.Equal(t, 5, *got.CompanyID, "el patch no debe compartir el puntero")

	cleared := entity.UserPatch{UnsetCompany: true}.Apply(got)
	assert.Nil(t, cleared.CompanyID)
	assert.Equal(t, entity.RoleAdmin, cleared.Role)
}
