package entity

import "github.com/shopspring/decimal"

// ProductStock vista de un producto con la cifra de stock del dashboard (products.current_stock),
// que se mantiene por separado de stock_movements y puede divergir.
type ProductStock struct {
	ProductID     string
	CompanyID     string
	SKU           string
	Name          string
	CurrentStock  decimal.Decimal
	MinStock      decimal.Decimal
	CostPrice     decimal.Decimal
	HasVariations bool
}

// ProductVariation variante activa de un producto.
type ProductVariation struct {
	ID        string
	ProductID string
	SKU       string
}
