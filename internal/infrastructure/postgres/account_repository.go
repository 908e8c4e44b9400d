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

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo consulta de accounts.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// FindReceivable prueba el código configurado, luego el código heredado y por último el nombre.
func (r *AccountRepo) FindReceivable(ctx context.Context, companyID, code string) (*entity.Account, error) {
	base := `SELECT id, company_id, code, name FROM accounts WHERE company_id = $1 AND `
	attempts := []struct {
		cond string
		arg  string
	}{
		{`code = $2`, code},
		{`code = $2`, entity.AccountCodeReceivableLegacy},
		{`name ILIKE $2`, "%Accounts Receivable%"},
	}
	for _, a := range attempts {
		if a.arg == "" {
			continue
		}
		var acc entity.Account
		var accCode, name *string
		err := r.q.QueryRow(ctx, base+a.cond+` ORDER BY code LIMIT 1`, companyID, a.arg).Scan(
			&acc.ID, &acc.CompanyID, &accCode, &name,
		)
		if err == nil {
			acc.Code = deref(accCode)
			acc.Name = deref(name)
			return &acc, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("find receivable account: %w", err)
		}
	}
	return nil, domain.ErrAccountNotFound
}
