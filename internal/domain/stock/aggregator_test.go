package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/stock"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func mov(typ, qty string) entity.StockMovement {
	return entity.StockMovement{
		ProductID:    "prod-1",
		MovementType: typ,
		Quantity:     decimal.RequireFromString(qty),
		CreatedAt:    time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got.String())
}

// ── Aggregate ─────────────────────────────────────────────────────────────────

// Escenario base: compra 50, venta -20, compra 30 ⇒ comprado 80, vendido 20, saldo 60.
func TestAggregate_CompraVentaCompra(t *testing.T) {
	sum := stock.Aggregate([]entity.StockMovement{
		mov("purchase", "50"),
		mov("sale", "-20"),
		mov("purchase", "30"),
	}, stock.Scope{})

	assertDec(t, "80", sum.Purchased, "purchased")
	assertDec(t, "20", sum.Sold, "sold")
	assertDec(t, "60", sum.CurrentBalance, "currentBalance")
	assert.Equal(t, 3, sum.Movements)
	assert.Zero(t, sum.Ignored)
}

func TestAggregate_SinMovimientos_TodoCero(t *testing.T) {
	sum := stock.Aggregate(nil, stock.Scope{})
	assert.True(t, sum.CurrentBalance.IsZero())
	assert.True(t, sum.Purchased.IsZero())
	assert.True(t, sum.AdjustmentNegative.IsZero())
	assert.Zero(t, sum.Movements)
}

func TestAggregate_StockInicialSeSumaAlSaldo(t *testing.T) {
	sum := stock.Aggregate([]entity.StockMovement{mov("sale", "-5")}, stock.Scope{
		OpeningStock: decimal.NewFromInt(12),
	})
	assertDec(t, "7", sum.CurrentBalance, "saldo con stock inicial")
}

// Los buckets siempre son no negativos aunque el signo de la cantidad sea atípico.
func TestAggregate_BucketsUsanValorAbsoluto(t *testing.T) {
	sum := stock.Aggregate([]entity.StockMovement{
		mov("transfer_out", "-4"),
		mov("transfer_in", "6"),
		mov("return", "2"),
		mov("adjustment", "-3"),
		mov("adjustment", "1.5"),
		mov("sale", "3"), // signo atípico: bucket absoluto, saldo con signo
	}, stock.Scope{})

	assertDec(t, "4", sum.TransferOut, "transferOut")
	assertDec(t, "6", sum.TransferIn, "transferIn")
	assertDec(t, "2", sum.Returned, "returned")
	assertDec(t, "3", sum.AdjustmentNegative, "adjustmentNegative")
	assertDec(t, "1.5", sum.AdjustmentPositive, "adjustmentPositive")
	assertDec(t, "3", sum.Sold, "sold")
	assertDec(t, "5.5", sum.CurrentBalance, "currentBalance")
}

func TestAggregate_TipoSinDistinguirMayusculas(t *testing.T) {
	sum := stock.Aggregate([]entity.StockMovement{
		mov("PURCHASE", "10"),
		mov(" Sale ", "-4"),
	}, stock.Scope{})
	assertDec(t, "10", sum.Purchased, "purchased")
	assertDec(t, "6", sum.CurrentBalance, "currentBalance")
}

// Política explícita: los tipos desconocidos no afectan buckets ni saldo.
func TestAggregate_TiposDesconocidosNoCambianSaldo(t *testing.T) {
	base := []entity.StockMovement{mov("purchase", "50"), mov("sale", "-20")}
	withUnknown := append([]entity.StockMovement{}, base...)
	withUnknown = append(withUnknown, mov("production", "999"), mov("", "-7"), mov("damage", "-3"))

	a := stock.Aggregate(base, stock.Scope{})
	b := stock.Aggregate(withUnknown, stock.Scope{})

	assert.True(t, a.CurrentBalance.Equal(b.CurrentBalance), "los tipos no reconocidos no deben alterar currentBalance")
	assert.Equal(t, 3, b.Ignored)
	assert.Equal(t, a.Movements, b.Movements)
}

// Propiedad: el saldo es la suma algebraica de las cantidades de tipos reconocidos.
func TestAggregate_SaldoEsSumaAlgebraicaDeReconocidos(t *testing.T) {
	types := []string{"purchase", "sale", "return", "transfer_in", "transfer_out", "adjustment", "bogus", "Sale"}
	var movs []entity.StockMovement
	want := decimal.Zero
	for i := 0; i < 64; i++ {
		typ := types[i%len(types)]
		qty := decimal.NewFromInt(int64((i*37)%23 - 11)).Div(decimal.NewFromInt(4))
		movs = append(movs, entity.StockMovement{ProductID: "prod-1", MovementType: typ, Quantity: qty})
		if stock.NormalizeType(typ) != "" {
			want = want.Add(qty)
		}
	}
	sum := stock.Aggregate(movs, stock.Scope{})
	assert.True(t, want.Equal(sum.CurrentBalance), "esperado %s, obtenido %s", want, sum.CurrentBalance)
}

func TestAggregate_ScopePorSucursalYVariante(t *testing.T) {
	a := mov("purchase", "10")
	a.BranchID = "br-1"
	b := mov("purchase", "7")
	b.BranchID = "br-2"
	c := mov("purchase", "3")
	c.BranchID = "br-1"
	c.VariationID = "var-1"
	other := mov("purchase", "100")
	other.ProductID = "prod-2"

	movs := []entity.StockMovement{a, b, c, other}

	assertDec(t, "13", stock.Aggregate(movs, stock.Scope{ProductID: "prod-1", BranchID: "br-1"}).CurrentBalance, "sucursal br-1")
	assertDec(t, "3", stock.Aggregate(movs, stock.Scope{VariationID: "var-1"}).CurrentBalance, "variante var-1")
	assertDec(t, "20", stock.Aggregate(movs, stock.Scope{ProductID: "prod-1"}).CurrentBalance, "producto completo")
}

func TestSummary_Negative(t *testing.T) {
	sum := stock.Aggregate([]entity.StockMovement{mov("sale", "-2")}, stock.Scope{})
	require.True(t, sum.Negative())
}
