package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
)

var _ repository.JournalRepository = (*JournalRepo)(nil)

// JournalRepo acceso a journal_entry_lines ⋈ journal_entries (usable con pool o tx).
type JournalRepo struct {
	q Querier
}

// NewJournalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJournalRepository(q Querier) *JournalRepo {
	return &JournalRepo{q: q}
}

// ListLinesByAccount líneas de la cuenta con su asiento, en orden cronológico.
func (r *JournalRepo) ListLinesByAccount(ctx context.Context, companyID, accountID string) ([]entity.LedgerLine, error) {
	query := `
		SELECT l.id, l.journal_entry_id, l.account_id, COALESCE(l.debit, 0), COALESCE(l.credit, 0),
		       e.id, e.entry_no, e.company_id, e.description, e.reference_type,
		       e.reference_id::text, e.payment_id::text, e.entry_date
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.id = l.journal_entry_id
		WHERE l.account_id = $1 AND e.company_id = $2
		ORDER BY e.entry_date, e.entry_no, l.id`
	rows, err := r.q.Query(ctx, query, accountID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list ledger lines: %w", err)
	}
	defer rows.Close()

	var list []entity.LedgerLine
	for rows.Next() {
		var ll entity.LedgerLine
		var entryNo, desc, refType, refID, pay *string
		if err := rows.Scan(
			&ll.Line.ID, &ll.Line.JournalEntryID, &ll.Line.AccountID, &ll.Line.Debit, &ll.Line.Credit,
			&ll.Entry.ID, &entryNo, &ll.Entry.CompanyID, &desc, &refType, &refID, &pay, &ll.Entry.EntryDate,
		); err != nil {
			return nil, fmt.Errorf("scan ledger line: %w", err)
		}
		ll.Entry.EntryNo = deref(entryNo)
		ll.Entry.Description = deref(desc)
		ll.Entry.ReferenceType = deref(refType)
		ll.Entry.ReferenceID = deref(refID)
		ll.Entry.PaymentID = deref(pay)
		list = append(list, ll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ledger lines: %w", err)
	}
	return list, nil
}

// GetLineForUpdate bloquea la línea hasta el fin de la transacción.
func (r *JournalRepo) GetLineForUpdate(ctx context.Context, companyID, lineID string) (*entity.JournalEntryLine, error) {
	query := `
		SELECT l.id, l.journal_entry_id, l.account_id, COALESCE(l.debit, 0), COALESCE(l.credit, 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.id = l.journal_entry_id
		WHERE l.id = $1 AND ($2 = '' OR e.company_id::text = $2)
		FOR UPDATE OF l`
	var l entity.JournalEntryLine
	err := r.q.QueryRow(ctx, query, lineID, companyID).Scan(
		&l.ID, &l.JournalEntryID, &l.AccountID, &l.Debit, &l.Credit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get line for update: %w", err)
	}
	return &l, nil
}

// UpdateLineAmounts fija débito y crédito de la línea.
func (r *JournalRepo) UpdateLineAmounts(ctx context.Context, lineID string, debit, credit decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE journal_entry_lines SET debit = $2, credit = $3 WHERE id = $1`, lineID, debit, credit)
	if err != nil {
		return fmt.Errorf("update line amounts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLine borra la línea. Una línea inexistente no es error (found=false).
func (r *JournalRepo) DeleteLine(ctx context.Context, companyID, lineID string) (string, bool, error) {
	query := `
		DELETE FROM journal_entry_lines l
		USING journal_entries e
		WHERE l.id = $1 AND e.id = l.journal_entry_id AND ($2 = '' OR e.company_id::text = $2)
		RETURNING l.account_id`
	var accountID string
	err := r.q.QueryRow(ctx, query, lineID, companyID).Scan(&accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		if isForeignKeyViolation(err) {
			return "", false, fmt.Errorf("delete line %s: %w", lineID, domain.ErrConflict)
		}
		return "", false, fmt.Errorf("delete line: %w", err)
	}
	return accountID, true, nil
}
