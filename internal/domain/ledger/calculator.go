package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

const (
	commissionKeyword   = "commission"
	extraExpenseKeyword = "extra expense"
)

// Options parámetros del cálculo.
type Options struct {
	// ReceivableAccountID habilita las reglas de comisión y signo sobre Cuentas por Cobrar.
	ReceivableAccountID string
	// ExpectedBalance habilita BalanceMismatch cuando no es nil.
	ExpectedBalance *decimal.Decimal
	Tolerance       decimal.Decimal // cero = domain.Tolerance
}

// Result totales y anomalías de un conjunto de líneas.
type Result struct {
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"` // TotalDebit - TotalCredit
	Lines       int             `json:"lines"`
	Anomalies   []Anomaly       `json:"anomalies"`
}

// Calculate suma débitos y créditos y clasifica anomalías. Nunca modifica datos.
func Calculate(lines []entity.LedgerLine, opts Options) Result {
	res := Result{Anomalies: []Anomaly{}}
	for _, l := range lines {
		res.TotalDebit = res.TotalDebit.Add(l.Line.Debit)
		res.TotalCredit = res.TotalCredit.Add(l.Line.Credit)
		res.Lines++
		res.Anomalies = append(res.Anomalies, lineAnomalies(l, opts.ReceivableAccountID)...)
	}
	res.Balance = res.TotalDebit.Sub(res.TotalCredit)

	if opts.ExpectedBalance != nil && !domain.WithinTolerance(res.Balance, *opts.ExpectedBalance, opts.Tolerance) {
		expected, actual := *opts.ExpectedBalance, res.Balance
		res.Anomalies = append(res.Anomalies, Anomaly{
			Kind:            AnomalyBalanceMismatch,
			ExpectedBalance: &expected,
			ActualBalance:   &actual,
			Message: fmt.Sprintf("saldo del libro %s distinto del esperado %s (diferencia %s)",
				actual.StringFixed(2), expected.StringFixed(2), actual.Sub(expected).StringFixed(2)),
		})
	}
	return res
}

func lineAnomalies(l entity.LedgerLine, receivableID string) []Anomaly {
	var out []Anomaly
	if IsDualAmount(l.Line) {
		a := newLineAnomaly(AnomalyDualAmount, l)
		a.Message = "línea con débito y crédito mayores que cero"
		out = append(out, a)
	}
	if receivableID == "" || l.Line.AccountID != receivableID {
		return out
	}
	if IsCommission(l.Entry) {
		a := newLineAnomaly(AnomalyCommissionInReceivable, l)
		a.Message = "comisión registrada en Cuentas por Cobrar; es gasto de la empresa"
		out = append(out, a)
	}
	if IsWrongSignExtraExpense(l) {
		want := PolarityDebit
		a := newLineAnomaly(AnomalyWrongSign, l)
		a.Expected = &want
		a.Message = "gasto extra registrado como crédito; debe ser débito"
		out = append(out, a)
	}
	return out
}

func newLineAnomaly(kind AnomalyKind, l entity.LedgerLine) Anomaly {
	return Anomaly{
		Kind:          kind,
		LineID:        l.Line.ID,
		EntryID:       l.Entry.ID,
		EntryNo:       l.Entry.EntryNo,
		Description:   l.Entry.Description,
		ReferenceType: l.Entry.ReferenceType,
		ReferenceID:   l.Entry.ReferenceID,
		Debit:         l.Line.Debit,
		Credit:        l.Line.Credit,
	}
}

// IsDualAmount línea corrupta: débito y crédito a la vez.
func IsDualAmount(line entity.JournalEntryLine) bool {
	return line.Debit.IsPositive() && line.Credit.IsPositive()
}

// IsCommission el asiento describe una comisión.
func IsCommission(e entity.JournalEntry) bool {
	return containsFold(e.Description, commissionKeyword)
}

// IsWrongSignExtraExpense gasto extra de una venta (sin pago asociado) registrado como crédito.
func IsWrongSignExtraExpense(l entity.LedgerLine) bool {
	return containsFold(l.Entry.Description, extraExpenseKeyword) &&
		l.Entry.ReferenceType == entity.ReferenceTypeSale &&
		l.Entry.PaymentID == "" &&
		l.Line.Credit.IsPositive() && l.Line.Debit.IsZero()
}

// ExpectedBalance Σ ventas.total − Σ pagos.amount del sujeto.
func ExpectedBalance(sales []entity.Sale, payments []entity.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	for _, p := range payments {
		total = total.Sub(p.Amount)
	}
	return total
}

// OrphanReferences marca asientos de venta/pago cuya referencia no existe.
// exists recibe (referenceType, referenceID).
func OrphanReferences(lines []entity.LedgerLine, exists func(refType, refID string) bool) []Anomaly {
	var out []Anomaly
	seenEntry := make(map[string]struct{})
	for _, l := range lines {
		e := l.Entry
		if e.ReferenceType != entity.ReferenceTypeSale && e.ReferenceType != entity.ReferenceTypePayment {
			continue
		}
		if e.ReferenceID == "" || exists(e.ReferenceType, e.ReferenceID) {
			continue
		}
		if _, ok := seenEntry[e.ID]; ok {
			continue
		}
		seenEntry[e.ID] = struct{}{}
		a := newLineAnomaly(AnomalyOrphanReference, l)
		a.Message = fmt.Sprintf("el asiento referencia %s %s que no existe", e.ReferenceType, e.ReferenceID)
		out = append(out, a)
	}
	return out
}
