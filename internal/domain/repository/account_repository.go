package repository

import (
	"context"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// AccountRepository consulta del plan de cuentas.
type AccountRepository interface {
	// FindReceivable resuelve Cuentas por Cobrar: código configurado, luego 1100,
	// luego nombre ILIKE '%Accounts Receivable%'. domain.ErrAccountNotFound si nada coincide.
	FindReceivable(ctx context.Context, companyID, code string) (*entity.Account, error)
}
