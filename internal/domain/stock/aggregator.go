// Package stock contiene la lógica pura de agregación de movimientos de inventario
// (servicio de dominio, sin acceso a datos).
package stock

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// Scope acota la agregación. Campos vacíos no filtran.
type Scope struct {
	ProductID    string
	BranchID     string
	VariationID  string
	OpeningStock decimal.Decimal // stock inicial aportado por el llamador
}

// Summary totales por categoría (siempre no negativos) y saldo neto con signo.
type Summary struct {
	Purchased          decimal.Decimal `json:"purchased"`
	Sold               decimal.Decimal `json:"sold"`
	Returned           decimal.Decimal `json:"returned"`
	TransferIn         decimal.Decimal `json:"transfer_in"`
	TransferOut        decimal.Decimal `json:"transfer_out"`
	AdjustmentPositive decimal.Decimal `json:"adjustment_positive"`
	AdjustmentNegative decimal.Decimal `json:"adjustment_negative"`
	CurrentBalance     decimal.Decimal `json:"current_balance"`
	Movements          int             `json:"movements"` // movimientos reconocidos dentro del scope
	Ignored            int             `json:"ignored"`   // movimientos con tipo desconocido
}

// Negative indica stock derivado negativo (más salidas que entradas registradas).
func (s Summary) Negative() bool {
	return s.CurrentBalance.IsNegative()
}

// NormalizeType devuelve el tipo en minúsculas y sin espacios; "" si no es un tipo reconocido.
func NormalizeType(movementType string) string {
	t := strings.ToLower(strings.TrimSpace(movementType))
	switch t {
	case entity.MovementTypePurchase, entity.MovementTypeSale, entity.MovementTypeReturn,
		entity.MovementTypeTransferIn, entity.MovementTypeTransferOut, entity.MovementTypeAdjustment:
		return t
	}
	return ""
}

// Aggregate recorre los movimientos una sola vez. Cada bucket acumula el valor absoluto
// mientras CurrentBalance acumula la cantidad con signo.
// Los tipos no reconocidos quedan fuera de buckets y de CurrentBalance (solo se cuentan en Ignored).
// Nunca falla; sin movimientos el resultado es cero más OpeningStock.
func Aggregate(movements []entity.StockMovement, scope Scope) Summary {
	sum := Summary{CurrentBalance: scope.OpeningStock}
	for i := range movements {
		m := &movements[i]
		if !scope.includes(m) {
			continue
		}
		t := NormalizeType(m.MovementType)
		if t == "" {
			sum.Ignored++
			continue
		}
		abs := m.Quantity.Abs()
		switch t {
		case entity.MovementTypePurchase:
			sum.Purchased = sum.Purchased.Add(abs)
		case entity.MovementTypeSale:
			sum.Sold = sum.Sold.Add(abs)
		case entity.MovementTypeReturn:
			sum.Returned = sum.Returned.Add(abs)
		case entity.MovementTypeTransferIn:
			sum.TransferIn = sum.TransferIn.Add(abs)
		case entity.MovementTypeTransferOut:
			sum.TransferOut = sum.TransferOut.Add(abs)
		case entity.MovementTypeAdjustment:
			if m.Quantity.IsNegative() {
				sum.AdjustmentNegative = sum.AdjustmentNegative.Add(abs)
			} else {
				sum.AdjustmentPositive = sum.AdjustmentPositive.Add(abs)
			}
		}
		sum.CurrentBalance = sum.CurrentBalance.Add(m.Quantity)
		sum.Movements++
	}
	return sum
}

func (s Scope) includes(m *entity.StockMovement) bool {
	if s.ProductID != "" && m.ProductID != s.ProductID {
		return false
	}
	if s.BranchID != "" && m.BranchID != s.BranchID {
		return false
	}
	if s.VariationID != "" && m.VariationID != s.VariationID {
		return false
	}
	return true
}
