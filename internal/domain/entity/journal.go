package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de referencia de journal_entries.
const (
	ReferenceTypeSale     = "sale"
	ReferenceTypePurchase = "purchase"
	ReferenceTypePayment  = "payment"
	ReferenceTypeExpense  = "expense"
)

// JournalEntry representa una transacción contable; agrupa una o más líneas.
type JournalEntry struct {
	ID            string
	EntryNo       string
	CompanyID     string
	Description   string
	ReferenceType string
	ReferenceID   string
	PaymentID     string // back-reference opcional (esquema alterno de pagos)
	EntryDate     time.Time
}

// JournalEntryLine es una línea de débito o crédito contra una cuenta.
// Exactamente uno de Debit/Credit debe ser distinto de cero.
type JournalEntryLine struct {
	ID             string
	JournalEntryID string
	AccountID      string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
}

// LedgerLine es una línea unida a su asiento padre (JOIN journal_entry_lines ↔ journal_entries).
type LedgerLine struct {
	Line  JournalEntryLine
	Entry JournalEntry
}
