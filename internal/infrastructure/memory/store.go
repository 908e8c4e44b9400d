// Package memory implementa los puertos de repositorio sobre slices en memoria.
// Lo usan los tests de casos de uso y de handlers; replica las reglas de las consultas SQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/application/repair"
	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
)

// Store datos en memoria. Los campos se pueblan directamente antes de usarlo.
type Store struct {
	mu sync.Mutex

	Contacts   []entity.Contact
	Accounts   []entity.Account
	Sales      []entity.Sale
	Payments   []entity.Payment
	Entries    []entity.JournalEntry
	Lines      []entity.JournalEntryLine
	Products   []entity.ProductStock
	Variations []entity.ProductVariation
	Movements  []entity.StockMovement

	// DeleteErrors simula rechazos de la base al borrar líneas concretas.
	DeleteErrors map[string]error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{DeleteErrors: make(map[string]error)}
}

func (s *Store) entry(id string) (entity.JournalEntry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return entity.JournalEntry{}, false
}

func (s *Store) lineIndex(companyID, lineID string) int {
	for i, l := range s.Lines {
		if l.ID != lineID {
			continue
		}
		if companyID != "" {
			e, ok := s.entry(l.JournalEntryID)
			if !ok || e.CompanyID != companyID {
				return -1
			}
		}
		return i
	}
	return -1
}

// ── Journal ──────────────────────────────────────────────────────────────────

// Journal adaptador de JournalRepository.
func (s *Store) Journal() repository.JournalRepository { return journalRepo{s} }

type journalRepo struct{ s *Store }

func (r journalRepo) ListLinesByAccount(_ context.Context, companyID, accountID string) ([]entity.LedgerLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.LedgerLine
	for _, l := range r.s.Lines {
		if l.AccountID != accountID {
			continue
		}
		e, ok := r.s.entry(l.JournalEntryID)
		if !ok || e.CompanyID != companyID {
			continue
		}
		out = append(out, entity.LedgerLine{Line: l, Entry: e})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Entry, out[j].Entry
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		return a.EntryNo < b.EntryNo
	})
	return out, nil
}

func (r journalRepo) GetLineForUpdate(_ context.Context, companyID, lineID string) (*entity.JournalEntryLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.lineIndex(companyID, lineID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	l := r.s.Lines[i]
	return &l, nil
}

func (r journalRepo) UpdateLineAmounts(_ context.Context, lineID string, debit, credit decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.lineIndex("", lineID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.Lines[i].Debit, r.s.Lines[i].Credit = debit, credit
	return nil
}

func (r journalRepo) DeleteLine(_ context.Context, companyID, lineID string) (string, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.DeleteErrors[lineID]; err != nil {
		return "", false, err
	}
	i := r.s.lineIndex(companyID, lineID)
	if i < 0 {
		return "", false, nil
	}
	accountID := r.s.Lines[i].AccountID
	r.s.Lines = append(r.s.Lines[:i], r.s.Lines[i+1:]...)
	return accountID, true, nil
}

// TxRunner simula la transacción: si fn falla se restauran las líneas.
func (s *Store) TxRunner() repair.TxRunner { return txRunner{s} }

type txRunner struct{ s *Store }

func (t txRunner) RunJournal(ctx context.Context, fn func(journal repository.JournalRepository) error) error {
	t.s.mu.Lock()
	snapshot := append([]entity.JournalEntryLine(nil), t.s.Lines...)
	t.s.mu.Unlock()
	if err := fn(t.s.Journal()); err != nil {
		t.s.mu.Lock()
		t.s.Lines = snapshot
		t.s.mu.Unlock()
		return err
	}
	return nil
}

// ── Accounts / Contacts ──────────────────────────────────────────────────────

// AccountRepo adaptador de AccountRepository.
func (s *Store) AccountRepo() repository.AccountRepository { return accountRepo{s} }

type accountRepo struct{ s *Store }

func (r accountRepo) FindReceivable(_ context.Context, companyID, code string) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	match := []func(a entity.Account) bool{
		func(a entity.Account) bool { return code != "" && a.Code == code },
		func(a entity.Account) bool { return a.Code == entity.AccountCodeReceivableLegacy },
		func(a entity.Account) bool { return strings.Contains(strings.ToLower(a.Name), "accounts receivable") },
	}
	for _, m := range match {
		for _, a := range r.s.Accounts {
			if a.CompanyID == companyID && m(a) {
				acc := a
				return &acc, nil
			}
		}
	}
	return nil, domain.ErrAccountNotFound
}

// ContactRepo adaptador de ContactRepository.
func (s *Store) ContactRepo() repository.ContactRepository { return contactRepo{s} }

type contactRepo struct{ s *Store }

func (r contactRepo) Find(_ context.Context, companyID, idOrCode string) (*entity.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, byID := range []bool{true, false} {
		for _, c := range r.s.Contacts {
			if companyID != "" && c.CompanyID != companyID {
				continue
			}
			if (byID && c.ID == idOrCode) || (!byID && c.Code == idOrCode) {
				found := c
				return &found, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

// ── Sales / Payments ─────────────────────────────────────────────────────────

// SaleRepo adaptador de SaleRepository.
func (s *Store) SaleRepo() repository.SaleRepository { return saleRepo{s} }

type saleRepo struct{ s *Store }

func (r saleRepo) ListByCustomer(_ context.Context, companyID, customerID string) ([]entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Sale
	for _, sale := range r.s.Sales {
		if sale.CompanyID == companyID && sale.CustomerID == customerID {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (r saleRepo) ExistingIDs(_ context.Context, ids []string) (map[string]struct{}, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]struct{})
	for _, id := range ids {
		for _, sale := range r.s.Sales {
			if sale.ID == id {
				out[id] = struct{}{}
			}
		}
	}
	return out, nil
}

// PaymentRepo adaptador de PaymentRepository.
func (s *Store) PaymentRepo() repository.PaymentRepository { return paymentRepo{s} }

type paymentRepo struct{ s *Store }

func (r paymentRepo) ListForSubject(_ context.Context, companyID, contactID string, saleIDs []string) ([]entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sales := make(map[string]struct{}, len(saleIDs))
	for _, id := range saleIDs {
		sales[id] = struct{}{}
	}
	var out []entity.Payment
	for _, p := range r.s.Payments {
		if p.CompanyID != companyID {
			continue
		}
		_, forSale := sales[p.ReferenceID]
		if p.ContactID == contactID || (p.ReferenceType == entity.ReferenceTypeSale && forSale) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r paymentRepo) ListByIDs(_ context.Context, ids []string) ([]entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Payment
	for _, id := range ids {
		for _, p := range r.s.Payments {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (r paymentRepo) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	list, _ := r.ListByIDs(ctx, ids)
	out := make(map[string]struct{}, len(list))
	for _, p := range list {
		out[p.ID] = struct{}{}
	}
	return out, nil
}

// ── Products / Movements ─────────────────────────────────────────────────────

// ProductRepo adaptador de ProductRepository.
func (s *Store) ProductRepo() repository.ProductRepository { return productRepo{s} }

type productRepo struct{ s *Store }

func (r productRepo) GetStock(_ context.Context, companyID, productID string) (*entity.ProductStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.Products {
		if p.ProductID == productID && p.CompanyID == companyID {
			found := p
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r productRepo) ListStock(_ context.Context, companyID string) ([]entity.ProductStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.ProductStock
	for _, p := range r.s.Products {
		if companyID == "" || p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r productRepo) ListVariations(_ context.Context, companyID string) ([]entity.ProductVariation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	owned := make(map[string]struct{})
	for _, p := range r.s.Products {
		if companyID == "" || p.CompanyID == companyID {
			owned[p.ProductID] = struct{}{}
		}
	}
	var out []entity.ProductVariation
	for _, v := range r.s.Variations {
		if _, ok := owned[v.ProductID]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// MovementRepo adaptador de StockMovementRepository.
func (s *Store) MovementRepo() repository.StockMovementRepository { return movementRepo{s} }

type movementRepo struct{ s *Store }

func (r movementRepo) List(_ context.Context, f repository.StockMovementFilter) ([]entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.StockMovement
	for _, m := range r.s.Movements {
		if (f.CompanyID != "" && m.CompanyID != f.CompanyID) ||
			(f.ProductID != "" && m.ProductID != f.ProductID) ||
			(f.BranchID != "" && m.BranchID != f.BranchID) ||
			(f.VariationID != "" && m.VariationID != f.VariationID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r movementRepo) FindRecentAdjustment(_ context.Context, companyID, productID string, qty, tol decimal.Decimal, since time.Time) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := len(r.s.Movements) - 1; i >= 0; i-- {
		m := r.s.Movements[i]
		if m.ProductID == productID && m.CompanyID == companyID &&
			m.MovementType == entity.MovementTypeAdjustment &&
			m.Quantity.Sub(qty).Abs().LessThan(tol) &&
			m.CreatedAt.After(since) {
			return &m, nil
		}
	}
	return nil, nil
}

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.s.Movements = append(r.s.Movements, *m)
	return nil
}

// MovementCount cuenta los movimientos del producto con el tipo indicado (aserciones de tests).
func (s *Store) MovementCount(productID, movementType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.Movements {
		if m.ProductID == productID && m.MovementType == movementType {
			n++
		}
	}
	return n
}

// Line devuelve la línea por id (aserciones de tests).
func (s *Store) Line(id string) (entity.JournalEntryLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.lineIndex("", id)
	if i < 0 {
		return entity.JournalEntryLine{}, false
	}
	return s.Lines[i], true
}
