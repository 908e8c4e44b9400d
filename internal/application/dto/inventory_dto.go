package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain/stock"
)

// ProductStockSummary resumen de movimientos de un producto frente a su stock de dashboard.
type ProductStockSummary struct {
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	BranchID       string          `json:"branch_id,omitempty"`
	VariationID    string          `json:"variation_id,omitempty"`
	DashboardStock decimal.Decimal `json:"dashboard_stock"`
	AvgCost        decimal.Decimal `json:"avg_cost"`
	Summary        stock.Summary   `json:"summary"`
	// Mismatch solo se evalúa sin filtros de sucursal/variante (el dashboard es por producto).
	Mismatch *stock.Mismatch `json:"mismatch,omitempty"`
}

// InventoryOverviewResponse resumen de inventario de la empresa.
type InventoryOverviewResponse struct {
	BranchID   string              `json:"branch_id,omitempty"`
	Items      []stock.OverviewRow `json:"items"`
	TotalValue decimal.Decimal     `json:"total_value"`
	LowCount   int                 `json:"low_count"`
	OutCount   int                 `json:"out_count"`
}

// ReconciliationResponse productos cuyo dashboard no cuadra con los movimientos.
type ReconciliationResponse struct {
	Checked    int              `json:"checked"`
	Mismatches []stock.Mismatch `json:"mismatches"`
}
