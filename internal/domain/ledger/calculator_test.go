package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
)

func opts(expected *decimal.Decimal) ledger.Options {
	return ledger.Options{ReceivableAccountID: arAccount, ExpectedBalance: expected}
}

// ── saldo ─────────────────────────────────────────────────────────────────────

// Venta 5000 y pago 3000 ⇒ saldo 2000 sin anomalías.
func TestCalculate_VentaYPago_SaldoLimpio(t *testing.T) {
	lines := []entity.LedgerLine{
		line("s1", "Sale INV-001", entity.ReferenceTypeSale, "sale-1", "5000", "0"),
		line("p1", "Payment received", entity.ReferenceTypePayment, "pay-1", "0", "3000"),
	}
	expected := ledger.ExpectedBalance(
		[]entity.Sale{{ID: "sale-1", Total: d("5000")}},
		[]entity.Payment{{ID: "pay-1", Amount: d("3000")}},
	)
	res := ledger.Calculate(lines, opts(&expected))

	assertDec(t, "5000", res.TotalDebit, "totalDebit")
	assertDec(t, "3000", res.TotalCredit, "totalCredit")
	assertDec(t, "2000", res.Balance, "balance")
	assert.Equal(t, 2, res.Lines)
	assert.Empty(t, res.Anomalies)
	assert.NotNil(t, res.Anomalies, "anomalies debe serializar como [] y no null")
}

func TestCalculate_SinLineas(t *testing.T) {
	res := ledger.Calculate(nil, ledger.Options{})
	assert.True(t, res.Balance.IsZero())
	assert.Empty(t, res.Anomalies)
}

// Propiedad: balance = Σdebit − Σcredit sobre cualquier conjunto.
func TestCalculate_BalanceEsDebitoMenosCredito(t *testing.T) {
	var lines []entity.LedgerLine
	wantD, wantC := decimal.Zero, decimal.Zero
	for i := 0; i < 40; i++ {
		deb := decimal.NewFromInt(int64(i * 7 % 13)).Div(decimal.NewFromInt(3)).Round(4)
		cred := decimal.NewFromInt(int64(i * 5 % 11)).Div(decimal.NewFromInt(7)).Round(4)
		if i%2 == 0 {
			cred = decimal.Zero
		} else {
			deb = decimal.Zero
		}
		l := line("r", "x", "", "", "0", "0")
		l.Line.ID = string(rune('a' + i%26))
		l.Line.Debit, l.Line.Credit = deb, cred
		lines = append(lines, l)
		wantD, wantC = wantD.Add(deb), wantC.Add(cred)
	}
	res := ledger.Calculate(lines, ledger.Options{})
	assert.True(t, wantD.Sub(wantC).Equal(res.Balance))
}

// ── anomalías ────────────────────────────────────────────────────────────────

func TestCalculate_ComisionEnCxC_SeMarcaYDesapareceAlRemover(t *testing.T) {
	sale := line("s1", "Sale INV-001", entity.ReferenceTypeSale, "sale-1", "5000", "0")
	commission := line("c1", "Commission on sale INV-001", entity.ReferenceTypeSale, "sale-1", "250", "0")

	res := ledger.Calculate([]entity.LedgerLine{sale, commission}, opts(nil))
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, ledger.AnomalyCommissionInReceivable, res.Anomalies[0].Kind)
	assert.Equal(t, "c1", res.Anomalies[0].LineID)
	assert.Equal(t, []string{"c1"}, ledger.LineIDsOf(res.Anomalies, ledger.AnomalyCommissionInReceivable))

	after := ledger.Calculate([]entity.LedgerLine{sale}, opts(nil))
	assert.Empty(t, after.Anomalies)
	assertDec(t, "5000", after.Balance, "balance tras remover la comisión")
}

func TestCalculate_ComisionFueraDeCxC_NoSeMarca(t *testing.T) {
	l := line("c1", "COMMISSION paid", entity.ReferenceTypeExpense, "", "250", "0")
	l.Line.AccountID = "acc-expense"
	res := ledger.Calculate([]entity.LedgerLine{l}, opts(nil))
	assert.Empty(t, res.Anomalies)
}

func TestCalculate_GastoExtraComoCredito_WrongSign(t *testing.T) {
	l := line("w1", "Extra Expense for INV-001", entity.ReferenceTypeSale, "sale-1", "0", "120")
	res := ledger.Calculate([]entity.LedgerLine{l}, opts(nil))

	require.Len(t, res.Anomalies, 1)
	a := res.Anomalies[0]
	assert.Equal(t, ledger.AnomalyWrongSign, a.Kind)
	require.NotNil(t, a.Expected)
	assert.Equal(t, ledger.PolarityDebit, *a.Expected)

	// ya corregida: débito
	fixed := line("w1", "Extra Expense for INV-001", entity.ReferenceTypeSale, "sale-1", "120", "0")
	assert.Empty(t, ledger.Calculate([]entity.LedgerLine{fixed}, opts(nil)).Anomalies)

	// con back-reference a pago no es un gasto extra de venta
	withPay := l
	withPay.Entry.PaymentID = "pay-1"
	assert.Empty(t, ledger.Calculate([]entity.LedgerLine{withPay}, opts(nil)).Anomalies)
}

// DualAmount se marca siempre, en cualquier cuenta y sin opciones.
func TestCalculate_DualAmountSiempreSeMarca(t *testing.T) {
	l := line("d1", "Corrupta", entity.ReferenceTypeSale, "sale-1", "10", "5")
	l.Line.AccountID = "acc-cualquiera"

	for _, o := range []ledger.Options{{}, opts(nil)} {
		res := ledger.Calculate([]entity.LedgerLine{l}, o)
		assert.Equal(t, 1, ledger.CountByKind(res.Anomalies)[ledger.AnomalyDualAmount])
	}
}

func TestCalculate_BalanceMismatch_Tolerancia(t *testing.T) {
	lines := []entity.LedgerLine{line("s1", "Sale", entity.ReferenceTypeSale, "sale-1", "100.004", "0")}

	within := d("100")
	assert.Empty(t, ledger.Calculate(lines, opts(&within)).Anomalies, "diferencia < 0.01 no es descuadre")

	off := d("90")
	res := ledger.Calculate(lines, opts(&off))
	require.Len(t, res.Anomalies, 1)
	a := res.Anomalies[0]
	assert.Equal(t, ledger.AnomalyBalanceMismatch, a.Kind)
	require.NotNil(t, a.ExpectedBalance)
	require.NotNil(t, a.ActualBalance)
	assertDec(t, "90", *a.ExpectedBalance, "expected")
	assertDec(t, "100.004", *a.ActualBalance, "actual")
}

func TestParsePolarity(t *testing.T) {
	p, ok := ledger.ParsePolarity(" Debit ")
	assert.True(t, ok)
	assert.Equal(t, ledger.PolarityDebit, p)
	p, ok = ledger.ParsePolarity("CREDIT")
	assert.True(t, ok)
	assert.Equal(t, ledger.PolarityCredit, p)
	_, ok = ledger.ParsePolarity("both")
	assert.False(t, ok)
}

func TestOrphanReferences(t *testing.T) {
	a := line("o1", "Sale", entity.ReferenceTypeSale, "sale-gone", "10", "0")
	b := line("o2", "Sale", entity.ReferenceTypeSale, "sale-gone", "0", "10")
	b.Entry.ID = a.Entry.ID // mismo asiento, dos líneas
	ok := line("o3", "Payment", entity.ReferenceTypePayment, "pay-1", "0", "5")
	other := line("o4", "Purchase", entity.ReferenceTypePurchase, "nope", "5", "0")

	exists := func(refType, refID string) bool { return refID == "pay-1" }
	got := ledger.OrphanReferences([]entity.LedgerLine{a, b, ok, other}, exists)

	require.Len(t, got, 1, "un hallazgo por asiento")
	assert.Equal(t, ledger.AnomalyOrphanReference, got[0].Kind)
	assert.Equal(t, "sale-gone", got[0].ReferenceID)
}
