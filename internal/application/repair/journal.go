package repair

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
)

// FixWrongSign mueve el importe de la línea al lado indicado.
// Si ya está en ese lado no hace nada (applied=false). Una línea con débito y crédito
// a la vez se rechaza con domain.ErrDualAmount. companyID vacío no acota por empresa.
func (s *Service) FixWrongSign(ctx context.Context, companyID, lineID string, want ledger.Polarity) (bool, error) {
	if lineID == "" || (want != ledger.PolarityDebit && want != ledger.PolarityCredit) {
		return false, domain.ErrInvalidInput
	}

	var applied bool
	var accountID string
	err := s.withLock(ctx, ports.LineLockKey(lineID), func() error {
		return s.tx.RunJournal(ctx, func(journal repository.JournalRepository) error {
			line, err := journal.GetLineForUpdate(ctx, companyID, lineID)
			if err != nil {
				return err
			}
			accountID = line.AccountID
			if ledger.IsDualAmount(*line) {
				return domain.ErrDualAmount
			}

			debit, credit := line.Debit, line.Credit
			switch want {
			case ledger.PolarityDebit:
				if credit.IsZero() {
					return nil
				}
				debit, credit = credit, decimal.Zero
			case ledger.PolarityCredit:
				if debit.IsZero() {
					return nil
				}
				debit, credit = decimal.Zero, debit
			}
			if err := journal.UpdateLineAmounts(ctx, lineID, debit, credit); err != nil {
				return err
			}
			applied = true
			return nil
		})
	})
	if err != nil {
		return false, fmt.Errorf("fix wrong sign %s: %w", lineID, err)
	}

	if applied {
		s.invalidate(ctx, accountID)
		s.log.Info().Str("line_id", lineID).Str("expected", string(want)).Msg("signo de línea corregido")
	}
	return applied, nil
}

// FixWrongSigns aplica FixWrongSign a cada id; un fallo no detiene el lote.
func (s *Service) FixWrongSigns(ctx context.Context, companyID string, lineIDs []string, want ledger.Polarity) []Outcome {
	out := make([]Outcome, 0, len(lineIDs))
	for _, id := range uniqueIDs(lineIDs) {
		applied, err := s.FixWrongSign(ctx, companyID, id, want)
		out = append(out, Outcome{ID: id, Applied: applied, Err: err})
	}
	return out
}

// RemoveMisclassifiedLines borra cada línea de forma independiente. Un id inexistente no es error
// (applied=false); un rechazo de la base queda en el Outcome de esa fila y el lote continúa.
func (s *Service) RemoveMisclassifiedLines(ctx context.Context, companyID string, lineIDs []string) []Outcome {
	ids := uniqueIDs(lineIDs)
	out := make([]Outcome, 0, len(ids))
	var touched []string
	for _, id := range ids {
		var accountID string
		var found bool
		err := s.withLock(ctx, ports.LineLockKey(id), func() error {
			var err error
			accountID, found, err = s.journal.DeleteLine(ctx, companyID, id)
			return err
		})
		if err != nil {
			s.log.Error().Err(err).Str("line_id", id).Msg("borrar línea")
			out = append(out, Outcome{ID: id, Err: err})
			continue
		}
		if found {
			touched = append(touched, accountID)
			s.log.Info().Str("line_id", id).Str("account_id", accountID).Msg("línea borrada")
		}
		out = append(out, Outcome{ID: id, Applied: found})
	}
	s.invalidate(ctx, touched...)
	return out
}

// Failed cuenta los outcomes con error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// IsLockContention indica si el error se debe a otra reparación en curso.
func IsLockContention(err error) bool {
	return errors.Is(err, domain.ErrLockNotObtained)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
