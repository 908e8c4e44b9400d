package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// WeightedAverageCost costo promedio ponderado de las entradas con costo (purchase y adjustment positivo).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Las salidas reducen el stock sin alterar el costo. Devuelve cero si no hay entradas costeadas.
func WeightedAverageCost(movements []entity.StockMovement) decimal.Decimal {
	qty, cost := decimal.Zero, decimal.Zero
	for _, m := range movements {
		t := NormalizeType(m.MovementType)
		if t == "" {
			continue
		}
		costed := t == entity.MovementTypePurchase ||
			(t == entity.MovementTypeAdjustment && m.Quantity.IsPositive() && m.UnitCost.IsPositive())
		if costed && m.Quantity.IsPositive() {
			cost = averageCost(qty, cost, m.Quantity, m.UnitCost)
		}
		qty = qty.Add(m.Quantity)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
	}
	return cost
}

func averageCost(stockQty, stockCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := stockQty.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return stockQty.Mul(stockCost).Add(inQty.Mul(inCost)).Div(sum)
}
