package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-recon/internal/application/inventory"
	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/stock"
	"github.com/jhoicas/ledger-recon/internal/infrastructure/memory"
)

const company = "company-1"

func mov(product, branch, typ string, qty, cost int64) entity.StockMovement {
	return entity.StockMovement{
		CompanyID:    company,
		ProductID:    product,
		BranchID:     branch,
		MovementType: typ,
		Quantity:     decimal.NewFromInt(qty),
		UnitCost:     decimal.NewFromInt(cost),
		CreatedAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newUseCase() (*inventory.UseCase, *memory.Store) {
	st := memory.NewStore()
	st.Products = []entity.ProductStock{
		{ProductID: "p-1", CompanyID: company, SKU: "BJS-01", Name: "Bridal Jewelry Set", CurrentStock: decimal.NewFromInt(75), MinStock: decimal.NewFromInt(5)},
		{ProductID: "p-2", CompanyID: company, SKU: "RNG-02", Name: "Ring", CurrentStock: decimal.NewFromInt(3), MinStock: decimal.NewFromInt(5)},
		{ProductID: "p-3", CompanyID: company, SKU: "NCK-03", Name: "Necklace", CurrentStock: decimal.Zero},
		{ProductID: "p-9", CompanyID: "company-2", SKU: "X", Name: "Ajeno", CurrentStock: decimal.NewFromInt(1)},
	}
	st.Movements = []entity.StockMovement{
		mov("p-1", "b-1", entity.MovementTypePurchase, 80, 10),
		mov("p-1", "b-1", entity.MovementTypeSale, -20, 0),
		mov("p-1", "b-2", entity.MovementTypePurchase, 10, 10),
		mov("p-2", "b-1", entity.MovementTypePurchase, 3, 4),
		mov("p-3", "b-2", entity.MovementTypePurchase, 2, 1),
		mov("p-3", "b-2", entity.MovementTypeSale, -2, 0),
	}
	return inventory.NewUseCase(st.ProductRepo(), st.MovementRepo(), nil, decimal.Zero), st
}

// ── ProductSummary ───────────────────────────────────────────────────────────

func TestProductSummary_DetectaDescuadre(t *testing.T) {
	uc, _ := newUseCase()
	out, err := uc.ProductSummary(context.Background(), company, "p-1", "", "")
	require.NoError(t, err)

	assert.True(t, out.Summary.CurrentBalance.Equal(decimal.NewFromInt(70)))
	assert.True(t, out.Summary.Purchased.Equal(decimal.NewFromInt(90)))
	assert.True(t, out.Summary.Sold.Equal(decimal.NewFromInt(20)))
	assert.True(t, out.AvgCost.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, out.Mismatch)
	assert.True(t, out.Mismatch.Delta.Equal(decimal.NewFromInt(5)), "dashboard 75 - derivado 70")
}

func TestProductSummary_PorSucursalNoCompara(t *testing.T) {
	uc, _ := newUseCase()
	out, err := uc.ProductSummary(context.Background(), company, "p-1", "b-1", "")
	require.NoError(t, err)
	assert.True(t, out.Summary.CurrentBalance.Equal(decimal.NewFromInt(60)))
	assert.Nil(t, out.Mismatch, "el dashboard es por producto")
}

func TestProductSummary_Errores(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.ProductSummary(context.Background(), company, "", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ProductSummary(context.Background(), company, "p-9", "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Overview ─────────────────────────────────────────────────────────────────

func TestOverview_TotalesYEstados(t *testing.T) {
	uc, _ := newUseCase()
	out, err := uc.Overview(context.Background(), company, "")
	require.NoError(t, err)

	require.Len(t, out.Items, 3, "solo productos de la empresa")
	assert.Equal(t, 1, out.LowCount) // p-2 con 3 ≤ 5
	assert.Equal(t, 1, out.OutCount) // p-3 en cero
	// p-1: 70 * 10, p-2: 3 * 4
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(712)), "total %s", out.TotalValue)
}

func TestOverview_PorSucursal(t *testing.T) {
	uc, _ := newUseCase()
	out, err := uc.Overview(context.Background(), company, "b-2")
	require.NoError(t, err)
	for _, r := range out.Items {
		if r.ProductID == "p-1" {
			assert.True(t, r.Stock.Equal(decimal.NewFromInt(10)))
		}
	}
	assert.Equal(t, "b-2", out.BranchID)
}

// ── Reconciliation ───────────────────────────────────────────────────────────

func TestReconciliation_OrdenaPorDelta(t *testing.T) {
	uc, st := newUseCase()
	st.Products[2].CurrentStock = decimal.NewFromInt(-9)

	out, err := uc.Reconciliation(context.Background(), company)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Checked)
	require.Len(t, out.Mismatches, 2)
	assert.Equal(t, "p-3", out.Mismatches[0].ProductID)
	assert.Equal(t, "p-1", out.Mismatches[1].ProductID)
}

// Tras insertar el ajuste el producto deja de aparecer.
func TestReconciliation_AjusteCuadra(t *testing.T) {
	uc, st := newUseCase()
	st.Movements = append(st.Movements, mov("p-1", "", entity.MovementTypeAdjustment, 5, 0))

	out, err := uc.Reconciliation(context.Background(), company)
	require.NoError(t, err)
	assert.Empty(t, out.Mismatches)
}

func TestReconciliation_TodasLasEmpresas(t *testing.T) {
	uc, _ := newUseCase()
	out, err := uc.Reconciliation(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, out.Checked)
	var ids []string
	for _, m := range out.Mismatches {
		ids = append(ids, m.ProductID)
	}
	assert.Contains(t, ids, "p-9")
	assert.NotEmpty(t, stock.AdjustmentNote(out.Mismatches[0].Delta))
}
