package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
)

func TestStatement_SaldoInicialYAcumulado(t *testing.T) {
	early := line("a", "Sale INV-0", entity.ReferenceTypeSale, "s0", "300", "0")
	early.Entry.EntryDate = day.AddDate(0, 0, -10)
	sale := line("b", "Sale INV-1", entity.ReferenceTypeSale, "s1", "1000", "0")
	sale.Entry.EntryDate = day.Add(15 * time.Hour) // mismo día que "to"
	pay := line("c", "Payment", entity.ReferenceTypePayment, "p1", "0", "400")
	pay.Entry.EntryDate = day
	late := line("z", "Sale INV-2", entity.ReferenceTypeSale, "s2", "50", "0")
	late.Entry.EntryDate = day.AddDate(0, 0, 2)

	from, to := day, day
	st := ledger.Statement([]entity.LedgerLine{late, sale, early, pay}, &from, &to)

	assertDec(t, "300", st.OpeningBalance, "saldo inicial")
	require.Len(t, st.Rows, 2)
	assert.Equal(t, "JE-c", st.Rows[0].EntryNo, "orden por fecha")
	assertDec(t, "-100", st.Rows[0].RunningBalance, "acumulado fila 1")
	assertDec(t, "900", st.Rows[1].RunningBalance, "acumulado fila 2")
	assertDec(t, "900", st.ClosingBalance, "saldo final")
	assertDec(t, "1000", st.TotalDebit, "débitos del rango")
	assertDec(t, "400", st.TotalCredit, "créditos del rango")
}

func TestStatement_SinRango(t *testing.T) {
	st := ledger.Statement([]entity.LedgerLine{
		line("a", "x", "", "", "10", "0"),
		line("b", "x", "", "", "0", "4"),
	}, nil, nil)
	assert.True(t, st.OpeningBalance.IsZero())
	assert.Len(t, st.Rows, 2)
	assertDec(t, "6", st.ClosingBalance, "saldo final")
}

func TestAging_Buckets(t *testing.T) {
	asOf := day
	sale := func(daysAgo int, due string) entity.Sale {
		return entity.Sale{InvoiceDate: asOf.AddDate(0, 0, -daysAgo), DueAmount: d(due)}
	}
	r := ledger.Aging([]entity.Sale{
		sale(0, "10"),
		sale(15, "20"),
		sale(45, "30"),
		sale(75, "40"),
		sale(120, "50"),
		sale(200, "0"), // pagada
	}, asOf)

	assertDec(t, "10", r.Current, "corriente")
	assertDec(t, "20", r.Days1To30, "1-30")
	assertDec(t, "30", r.Days31To60, "31-60")
	assertDec(t, "40", r.Days61To90, "61-90")
	assertDec(t, "50", r.Days90Plus, "90+")
	assertDec(t, "150", r.Total, "total")
}
