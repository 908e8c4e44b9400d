package repair_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/application/repair"
	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
	"github.com/jhoicas/ledger-recon/internal/infrastructure/memory"
)

const (
	company = "company-1"
	arID    = "acc-ar"
)

var now = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

// ── helpers ───────────────────────────────────────────────────────────────────

type fixture struct {
	store  *memory.Store
	cache  *memory.Cache
	locker *memory.Locker
	svc    *repair.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	st.Entries = []entity.JournalEntry{
		{ID: "je-1", CompanyID: company, EntryNo: "JE-1", Description: "Sale INV-1", ReferenceType: "sale", ReferenceID: "sale-1", EntryDate: now},
		{ID: "je-2", CompanyID: company, EntryNo: "JE-2", Description: "Extra Expense INV-1", ReferenceType: "sale", ReferenceID: "sale-1", EntryDate: now},
		{ID: "je-3", CompanyID: company, EntryNo: "JE-3", Description: "Commission INV-1", ReferenceType: "sale", ReferenceID: "sale-1", EntryDate: now},
		{ID: "je-4", CompanyID: "company-2", EntryNo: "JE-4", Description: "Otra empresa", EntryDate: now},
		{ID: "je-5", CompanyID: company, EntryNo: "JE-5", Description: "Ajuste manual", EntryDate: now},
	}
	st.Lines = []entity.JournalEntryLine{
		{ID: "l-sale", JournalEntryID: "je-1", AccountID: arID, Debit: decimal.NewFromInt(5000), Credit: decimal.Zero},
		{ID: "l-extra", JournalEntryID: "je-2", AccountID: arID, Debit: decimal.Zero, Credit: decimal.NewFromInt(120)},
		{ID: "l-comm", JournalEntryID: "je-3", AccountID: arID, Debit: decimal.NewFromInt(250), Credit: decimal.Zero},
		{ID: "l-dual", JournalEntryID: "je-5", AccountID: arID, Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(5)},
		{ID: "l-other", JournalEntryID: "je-4", AccountID: "acc-x", Debit: decimal.Zero, Credit: decimal.NewFromInt(7)},
	}
	st.Products = []entity.ProductStock{{ProductID: "prod-1", CompanyID: company, Name: "Bridal Jewelry Set", CurrentStock: decimal.NewFromInt(75)}}

	c := memory.NewCache()
	l := memory.NewLocker()
	svc := repair.NewService(st.TxRunner(), st.Journal(), st.MovementRepo(), st.ProductRepo(), c, l, nil, repair.Config{}).
		WithClock(func() time.Time { return now })
	return &fixture{store: st, cache: c, locker: l, svc: svc}
}

func (f *fixture) line(t *testing.T, id string) entity.JournalEntryLine {
	t.Helper()
	l, ok := f.store.Line(id)
	require.True(t, ok, "línea %s no encontrada", id)
	return l
}

// ── FixWrongSign ─────────────────────────────────────────────────────────────

func TestFixWrongSign_MueveCreditoADebito(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	applied, err := f.svc.FixWrongSign(ctx, company, "l-extra", ledger.PolarityDebit)
	require.NoError(t, err)
	assert.True(t, applied)

	l := f.line(t, "l-extra")
	assert.True(t, l.Debit.Equal(decimal.NewFromInt(120)))
	assert.True(t, l.Credit.IsZero())
	assert.Equal(t, []string{arID}, f.cache.Invalidated, "la cuenta corregida debe invalidarse")
}

// Aplicar dos veces equivale a aplicar una.
func TestFixWrongSign_Idempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.FixWrongSign(ctx, company, "l-extra", ledger.PolarityDebit)
	require.NoError(t, err)
	once := f.line(t, "l-extra")

	applied, err := f.svc.FixWrongSign(ctx, company, "l-extra", ledger.PolarityDebit)
	require.NoError(t, err)
	assert.False(t, applied, "la segunda ejecución no debe aplicar cambios")

	twice := f.line(t, "l-extra")
	assert.True(t, once.Debit.Equal(twice.Debit))
	assert.True(t, once.Credit.Equal(twice.Credit))
	assert.Len(t, f.cache.Invalidated, 1)
}

func TestFixWrongSign_HaciaCredito(t *testing.T) {
	f := newFixture(t)
	applied, err := f.svc.FixWrongSign(context.Background(), company, "l-comm", ledger.PolarityCredit)
	require.NoError(t, err)
	assert.True(t, applied)
	l := f.line(t, "l-comm")
	assert.True(t, l.Credit.Equal(decimal.NewFromInt(250)))
	assert.True(t, l.Debit.IsZero())
}

func TestFixWrongSign_RechazaDualAmount(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.FixWrongSign(context.Background(), company, "l-dual", ledger.PolarityDebit)
	assert.ErrorIs(t, err, domain.ErrDualAmount)

	l := f.line(t, "l-dual")
	assert.True(t, l.Debit.Equal(decimal.NewFromInt(10)), "la línea no debe modificarse")
	assert.True(t, l.Credit.Equal(decimal.NewFromInt(5)))
	assert.Empty(t, f.cache.Invalidated)
}

func TestFixWrongSign_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.FixWrongSign(ctx, company, "no-existe", ledger.PolarityDebit)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.FixWrongSign(ctx, company, "l-other", ledger.PolarityDebit)
	assert.ErrorIs(t, err, domain.ErrNotFound, "línea de otra empresa")

	_, err = f.svc.FixWrongSign(ctx, company, "l-extra", ledger.Polarity("both"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.locker.Held[ports.LineLockKey("l-extra")] = true
	_, err = f.svc.FixWrongSign(ctx, company, "l-extra", ledger.PolarityDebit)
	assert.ErrorIs(t, err, domain.ErrLockNotObtained)
	assert.True(t, repair.IsLockContention(err))
}

func TestFixWrongSigns_LoteContinuaTrasError(t *testing.T) {
	f := newFixture(t)
	out := f.svc.FixWrongSigns(context.Background(), "", []string{"l-dual", "l-extra", "l-extra"}, ledger.PolarityDebit)
	require.Len(t, out, 2, "ids repetidos se procesan una vez")
	assert.ErrorIs(t, out[0].Err, domain.ErrDualAmount)
	assert.True(t, out[1].Applied)
	assert.Equal(t, 1, repair.Failed(out))
}

// ── RemoveMisclassifiedLines ─────────────────────────────────────────────────

// La comisión se marca, se elimina y la cuenta queda sin esa anomalía.
func TestRemoveMisclassifiedLines_ComisionDesaparece(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lines, err := f.store.Journal().ListLinesByAccount(ctx, company, arID)
	require.NoError(t, err)
	before := ledger.Calculate(lines, ledger.Options{ReceivableAccountID: arID})
	ids := ledger.LineIDsOf(before.Anomalies, ledger.AnomalyCommissionInReceivable)
	require.Equal(t, []string{"l-comm"}, ids)

	out := f.svc.RemoveMisclassifiedLines(ctx, company, ids)
	require.Len(t, out, 1)
	assert.True(t, out[0].Applied)
	assert.NoError(t, out[0].Err)

	lines, err = f.store.Journal().ListLinesByAccount(ctx, company, arID)
	require.NoError(t, err)
	after := ledger.Calculate(lines, ledger.Options{ReceivableAccountID: arID})
	assert.Zero(t, ledger.CountByKind(after.Anomalies)[ledger.AnomalyCommissionInReceivable])
	assert.Equal(t, []string{arID}, f.cache.Invalidated)
}

func TestRemoveMisclassifiedLines_InexistenteYRechazo(t *testing.T) {
	f := newFixture(t)
	f.store.DeleteErrors["l-sale"] = errors.New("violates foreign key constraint")

	out := f.svc.RemoveMisclassifiedLines(context.Background(), company, []string{"l-sale", "no-existe", "l-comm"})
	require.Len(t, out, 3)

	assert.Error(t, out[0].Err, "el rechazo queda registrado por fila")
	assert.False(t, out[0].Applied)

	assert.NoError(t, out[1].Err, "id inexistente no es error")
	assert.False(t, out[1].Applied)

	assert.True(t, out[2].Applied, "el lote continúa tras un error")
	_, ok := f.store.Line("l-comm")
	assert.False(t, ok)

	// repetir el borrado es un no-op
	again := f.svc.RemoveMisclassifiedLines(context.Background(), company, []string{"l-comm"})
	assert.False(t, again[0].Applied)
	assert.NoError(t, again[0].Err)
}

func TestRemoveMisclassifiedLines_SinIDs(t *testing.T) {
	f := newFixture(t)
	assert.Empty(t, f.svc.RemoveMisclassifiedLines(context.Background(), company, nil))
}

// ── InsertBalancingAdjustment ────────────────────────────────────────────────

// Insertar dos veces el mismo ajuste deja un solo movimiento.
func TestInsertBalancingAdjustment_Idempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := repair.AdjustmentInput{CompanyID: company, ProductID: "prod-1", DeltaQuantity: decimal.NewFromInt(5)}

	first, err := f.svc.InsertBalancingAdjustment(ctx, in)
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.NotEmpty(t, first.MovementID)

	second, err := f.svc.InsertBalancingAdjustment(ctx, in)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, repair.SkipDuplicate, second.Skipped)
	assert.Equal(t, first.MovementID, second.MovementID)

	assert.Equal(t, 1, f.store.MovementCount("prod-1", entity.MovementTypeAdjustment))

	m := f.store.Movements[0]
	assert.Equal(t, entity.StockReferenceAdjustment, m.ReferenceType)
	assert.True(t, m.UnitCost.IsZero())
	assert.True(t, m.TotalCost.IsZero())
	assert.Equal(t, "Balance correction: +5.00 units to match dashboard stock", m.Notes)
}

func TestInsertBalancingAdjustment_RegistraLaSucursal(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.InsertBalancingAdjustment(context.Background(), repair.AdjustmentInput{
		CompanyID: company, ProductID: "prod-1", BranchID: "branch-main", DeltaQuantity: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	require.True(t, res.Applied)
	require.Len(t, f.store.Movements, 1)
	assert.Equal(t, "branch-main", f.store.Movements[0].BranchID)
}

func TestInsertBalancingAdjustment_FueraDeVentanaSeInsertaDeNuevo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := repair.AdjustmentInput{CompanyID: company, ProductID: "prod-1", DeltaQuantity: decimal.NewFromInt(-3), Note: "conteo físico"}

	_, err := f.svc.InsertBalancingAdjustment(ctx, in)
	require.NoError(t, err)

	f.svc.WithClock(func() time.Time { return now.Add(25 * time.Hour) })
	res, err := f.svc.InsertBalancingAdjustment(ctx, in)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 2, f.store.MovementCount("prod-1", entity.MovementTypeAdjustment))
	assert.Equal(t, "conteo físico", f.store.Movements[1].Notes)
}

func TestInsertBalancingAdjustment_DeltaBajoTolerancia(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.InsertBalancingAdjustment(context.Background(), repair.AdjustmentInput{
		CompanyID: company, ProductID: "prod-1", DeltaQuantity: decimal.RequireFromString("0.004"),
	})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, repair.SkipBelowTolerance, res.Skipped)
	assert.Empty(t, f.store.Movements)
}

func TestInsertBalancingAdjustment_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.InsertBalancingAdjustment(ctx, repair.AdjustmentInput{ProductID: "prod-1", DeltaQuantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.InsertBalancingAdjustment(ctx, repair.AdjustmentInput{CompanyID: "company-2", ProductID: "prod-1", DeltaQuantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto de otra empresa")

	f.locker.Held[ports.ProductLockKey(company, "prod-1")] = true
	_, err = f.svc.InsertBalancingAdjustment(ctx, repair.AdjustmentInput{CompanyID: company, ProductID: "prod-1", DeltaQuantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrLockNotObtained)
	assert.Empty(t, f.store.Movements)
}
