package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo lectura de contacts.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// Find busca primero por id y luego por código.
func (r *ContactRepo) Find(ctx context.Context, companyID, idOrCode string) (*entity.Contact, error) {
	query := `
		SELECT id, company_id, code, name, type, phone
		FROM contacts
		WHERE (id::text = $1 OR code = $1) AND ($2 = '' OR company_id::text = $2)
		ORDER BY (id::text = $1) DESC
		LIMIT 1`
	var c entity.Contact
	var code, name, typ, phone *string
	err := r.q.QueryRow(ctx, query, idOrCode, companyID).Scan(&c.ID, &c.CompanyID, &code, &name, &typ, &phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	c.Code = deref(code)
	c.Name = deref(name)
	c.Type = deref(typ)
	c.Phone = deref(phone)
	return &c, nil
}
