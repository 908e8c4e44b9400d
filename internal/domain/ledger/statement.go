package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// StatementRow movimiento del extracto con saldo acumulado.
type StatementRow struct {
	Date           time.Time       `json:"date"`
	EntryNo        string          `json:"entry_no"`
	Description    string          `json:"description"`
	ReferenceType  string          `json:"reference_type"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// StatementResult extracto de un sujeto en un rango de fechas.
type StatementResult struct {
	From           *time.Time      `json:"from,omitempty"`
	To             *time.Time      `json:"to,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Rows           []StatementRow  `json:"rows"`
}

// Statement arma el extracto: el saldo inicial suma las líneas anteriores a from,
// las filas dentro de [from, to] se ordenan por fecha y número de asiento.
// from/to nil no acotan. to incluye el día completo.
func Statement(lines []entity.LedgerLine, from, to *time.Time) StatementResult {
	sorted := make([]entity.LedgerLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Entry, sorted[j].Entry
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		return a.EntryNo < b.EntryNo
	})

	var end time.Time
	if to != nil {
		end = to.AddDate(0, 0, 1)
	}

	res := StatementResult{From: from, To: to, Rows: []StatementRow{}}
	for _, l := range sorted {
		d := l.Entry.EntryDate
		net := l.Line.Debit.Sub(l.Line.Credit)
		if from != nil && d.Before(*from) {
			res.OpeningBalance = res.OpeningBalance.Add(net)
			continue
		}
		if to != nil && !d.Before(end) {
			continue
		}
		res.TotalDebit = res.TotalDebit.Add(l.Line.Debit)
		res.TotalCredit = res.TotalCredit.Add(l.Line.Credit)
		res.Rows = append(res.Rows, StatementRow{
			Date:          d,
			EntryNo:       l.Entry.EntryNo,
			Description:   l.Entry.Description,
			ReferenceType: l.Entry.ReferenceType,
			Debit:         l.Line.Debit,
			Credit:        l.Line.Credit,
		})
	}

	running := res.OpeningBalance
	for i := range res.Rows {
		running = running.Add(res.Rows[i].Debit).Sub(res.Rows[i].Credit)
		res.Rows[i].RunningBalance = running
	}
	res.ClosingBalance = running
	return res
}
