package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// JournalRepository puerto de lectura/corrección de journal_entry_lines unidas a su asiento.
// En los métodos por línea companyID vacío no acota por empresa (herramientas de operador).
type JournalRepository interface {
	// ListLinesByAccount devuelve las líneas de la cuenta (JOIN con journal_entries),
	// ordenadas por fecha y número de asiento.
	ListLinesByAccount(ctx context.Context, companyID, accountID string) ([]entity.LedgerLine, error)
	// GetLineForUpdate bloquea la línea (SELECT ... FOR UPDATE). Usar dentro de una transacción.
	// Devuelve domain.ErrNotFound si no existe.
	GetLineForUpdate(ctx context.Context, companyID, lineID string) (*entity.JournalEntryLine, error)
	UpdateLineAmounts(ctx context.Context, lineID string, debit, credit decimal.Decimal) error
	// DeleteLine borra la línea y devuelve la cuenta a la que pertenecía.
	// found es false cuando la línea no existe (no es error).
	DeleteLine(ctx context.Context, companyID, lineID string) (accountID string, found bool, err error)
}
