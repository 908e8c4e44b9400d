package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo lectura de payments.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `
	id, company_id, contact_id::text, reference_type, reference_id::text,
	journal_entry_id::text, COALESCE(amount, 0), payment_date`

// ListForSubject pagos del contacto o aplicados a sus ventas.
func (r *PaymentRepo) ListForSubject(ctx context.Context, companyID, contactID string, saleIDs []string) ([]entity.Payment, error) {
	if saleIDs == nil {
		saleIDs = []string{}
	}
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE company_id = $1
		  AND (contact_id::text = $2
		       OR (reference_type = 'sale' AND reference_id::text = ANY($3)))
		ORDER BY payment_date, id`
	return r.list(ctx, query, companyID, contactID, saleIDs)
}

// ListByIDs resuelve pagos por id.
func (r *PaymentRepo) ListByIDs(ctx context.Context, ids []string) ([]entity.Payment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id::text = ANY($1)`
	return r.list(ctx, query, ids)
}

// ExistingIDs subconjunto de ids presentes en payments.
func (r *PaymentRepo) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	return existingIDs(ctx, r.q, "payments", ids)
}

func (r *PaymentRepo) list(ctx context.Context, query string, args ...any) ([]entity.Payment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []entity.Payment
	for rows.Next() {
		var p entity.Payment
		var contactID, refType, refID, entryID *string
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &contactID, &refType, &refID, &entryID, &p.Amount, &p.PaymentDate,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.ContactID = deref(contactID)
		p.ReferenceType = deref(refType)
		p.ReferenceID = deref(refID)
		p.JournalEntryID = deref(entryID)
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return list, nil
}
