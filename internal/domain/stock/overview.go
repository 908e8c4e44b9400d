package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// Estados de stock del resumen de inventario.
const (
	StatusOut = "Out"
	StatusLow = "Low"
	StatusOK  = "OK"
)

// VariationStock saldo derivado de una variante.
type VariationStock struct {
	VariationID string          `json:"variation_id"`
	SKU         string          `json:"sku"`
	Stock       decimal.Decimal `json:"stock"`
}

// OverviewRow fila del resumen de inventario de un producto.
type OverviewRow struct {
	ProductID     string           `json:"product_id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Stock         decimal.Decimal  `json:"stock"`
	AvgCost       decimal.Decimal  `json:"avg_cost"`
	StockValue    decimal.Decimal  `json:"stock_value"`
	MinStock      decimal.Decimal  `json:"min_stock"`
	Status        string           `json:"status"`
	HasVariations bool             `json:"has_variations"`
	Variations    []VariationStock `json:"variations,omitempty"`
}

// Overview construye el resumen usando stock_movements como única fuente de verdad.
// Un producto con variantes no tiene stock propio: su fila es la suma de sus variantes.
// Sin variantes solo cuentan los movimientos con variation_id vacío.
func Overview(products []entity.ProductStock, variations []entity.ProductVariation, movements []entity.StockMovement) []OverviewRow {
	byProduct := make(map[string][]entity.StockMovement, len(products))
	for _, m := range movements {
		if m.ProductID == "" {
			continue
		}
		byProduct[m.ProductID] = append(byProduct[m.ProductID], m)
	}
	varsByProduct := make(map[string][]entity.ProductVariation)
	for _, v := range variations {
		varsByProduct[v.ProductID] = append(varsByProduct[v.ProductID], v)
	}

	rows := make([]OverviewRow, 0, len(products))
	for _, p := range products {
		movs := byProduct[p.ProductID]
		vars := varsByProduct[p.ProductID]
		row := OverviewRow{
			ProductID:     p.ProductID,
			SKU:           p.SKU,
			Name:          p.Name,
			MinStock:      p.MinStock,
			HasVariations: p.HasVariations || len(vars) > 0,
		}
		if row.HasVariations {
			total := decimal.Zero
			for _, v := range vars {
				s := Aggregate(movs, Scope{VariationID: v.ID}).CurrentBalance
				total = total.Add(s)
				row.Variations = append(row.Variations, VariationStock{VariationID: v.ID, SKU: v.SKU, Stock: s})
			}
			row.Stock = total
		} else {
			row.Stock = Aggregate(parentLevel(movs), Scope{}).CurrentBalance
		}

		row.AvgCost = WeightedAverageCost(movs)
		if row.AvgCost.IsZero() {
			row.AvgCost = p.CostPrice
		}
		row.StockValue = row.Stock.Mul(row.AvgCost)
		row.Status = Status(row.Stock, p.MinStock)
		rows = append(rows, row)
	}
	return rows
}

// Status clasifica el stock: Out (≤ 0), Low (≤ mínimo cuando hay mínimo), OK.
func Status(stock, minStock decimal.Decimal) string {
	switch {
	case stock.LessThanOrEqual(decimal.Zero):
		return StatusOut
	case minStock.IsPositive() && stock.LessThanOrEqual(minStock):
		return StatusLow
	default:
		return StatusOK
	}
}

func parentLevel(movs []entity.StockMovement) []entity.StockMovement {
	out := make([]entity.StockMovement, 0, len(movs))
	for _, m := range movs {
		if m.VariationID == "" {
			out = append(out, m)
		}
	}
	return out
}
