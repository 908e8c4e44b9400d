package stock

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// Mismatch diferencia entre el stock del dashboard y el saldo derivado de movimientos.
type Mismatch struct {
	ProductID      string          `json:"product_id"`
	CompanyID      string          `json:"company_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	DashboardStock decimal.Decimal `json:"dashboard_stock"`
	DerivedBalance decimal.Decimal `json:"derived_balance"`
	Delta          decimal.Decimal `json:"delta"` // dashboard - derivado
}

// DetectMismatch compara products.current_stock contra el saldo agregado.
// Devuelve false cuando la diferencia está dentro de la tolerancia.
func DetectMismatch(p entity.ProductStock, s Summary, tol decimal.Decimal) (Mismatch, bool) {
	if domain.WithinTolerance(p.CurrentStock, s.CurrentBalance, tol) {
		return Mismatch{}, false
	}
	return Mismatch{
		ProductID:      p.ProductID,
		CompanyID:      p.CompanyID,
		SKU:            p.SKU,
		Name:           p.Name,
		DashboardStock: p.CurrentStock,
		DerivedBalance: s.CurrentBalance,
		Delta:          p.CurrentStock.Sub(s.CurrentBalance),
	}, true
}

// AdjustmentNote texto estándar del movimiento de corrección.
func AdjustmentNote(delta decimal.Decimal) string {
	sign := ""
	if delta.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("Balance correction: %s%s units to match dashboard stock", sign, delta.StringFixed(2))
}
