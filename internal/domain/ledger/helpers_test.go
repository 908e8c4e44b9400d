package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

const arAccount = "acc-ar"

var day = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(id, desc, refType, refID, debit, credit string) entity.LedgerLine {
	return entity.LedgerLine{
		Line: entity.JournalEntryLine{
			ID:             id,
			JournalEntryID: "je-" + id,
			AccountID:      arAccount,
			Debit:          d(debit),
			Credit:         d(credit),
		},
		Entry: entity.JournalEntry{
			ID:            "je-" + id,
			EntryNo:       "JE-" + id,
			Description:   desc,
			ReferenceType: refType,
			ReferenceID:   refID,
			EntryDate:     day,
		},
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got.String())
}
