package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// AgingReport saldo pendiente por antigüedad de factura.
type AgingReport struct {
	Current    decimal.Decimal `json:"current"`
	Days1To30  decimal.Decimal `json:"days_1_30"`
	Days31To60 decimal.Decimal `json:"days_31_60"`
	Days61To90 decimal.Decimal `json:"days_61_90"`
	Days90Plus decimal.Decimal `json:"days_90_plus"`
	Total      decimal.Decimal `json:"total"`
}

// Aging reparte due_amount de las ventas con saldo según los días transcurridos hasta asOf.
func Aging(sales []entity.Sale, asOf time.Time) AgingReport {
	var r AgingReport
	for _, s := range sales {
		if !s.DueAmount.IsPositive() {
			continue
		}
		days := int(asOf.Sub(s.InvoiceDate).Hours() / 24)
		switch {
		case days <= 0:
			r.Current = r.Current.Add(s.DueAmount)
		case days <= 30:
			r.Days1To30 = r.Days1To30.Add(s.DueAmount)
		case days <= 60:
			r.Days31To60 = r.Days31To60.Add(s.DueAmount)
		case days <= 90:
			r.Days61To90 = r.Days61To90.Add(s.DueAmount)
		default:
			r.Days90Plus = r.Days90Plus.Add(s.DueAmount)
		}
		r.Total = r.Total.Add(s.DueAmount)
	}
	return r
}
