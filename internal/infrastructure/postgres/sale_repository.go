package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo lectura de sales.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// ListByCustomer ventas del cliente, de la más antigua a la más reciente.
func (r *SaleRepo) ListByCustomer(ctx context.Context, companyID, customerID string) ([]entity.Sale, error) {
	query := `
		SELECT id, company_id, customer_id, invoice_no, invoice_date,
		       COALESCE(total, 0), COALESCE(paid_amount, 0), COALESCE(due_amount, 0),
		       COALESCE(subtotal, 0), COALESCE(discount_amount, 0), COALESCE(expenses, 0),
		       payment_status
		FROM sales
		WHERE customer_id = $1 AND company_id = $2
		ORDER BY invoice_date, invoice_no`
	rows, err := r.q.Query(ctx, query, customerID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []entity.Sale
	for rows.Next() {
		var s entity.Sale
		var invoiceNo, status *string
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.CustomerID, &invoiceNo, &s.InvoiceDate,
			&s.Total, &s.PaidAmount, &s.DueAmount, &s.Subtotal, &s.DiscountAmount, &s.Expenses,
			&status,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.InvoiceNo = deref(invoiceNo)
		s.PaymentStatus = deref(status)
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return list, nil
}

// ExistingIDs subconjunto de ids presentes en sales.
func (r *SaleRepo) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	return existingIDs(ctx, r.q, "sales", ids)
}

// existingIDs consulta en bloque qué ids existen en la tabla indicada (nombre fijo, no proviene del usuario).
func existingIDs(ctx context.Context, q Querier, table string, ids []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `SELECT id::text FROM `+table+` WHERE id::text = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("existing %s ids: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", table, err)
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("existing %s ids: %w", table, err)
	}
	return out, nil
}
