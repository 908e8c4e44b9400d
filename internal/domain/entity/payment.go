package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment pago recibido o emitido. ReferenceType/ReferenceID apuntan al documento pagado (normalmente una venta).
type Payment struct {
	ID             string
	CompanyID      string
	ContactID      string
	ReferenceType  string
	ReferenceID    string
	JournalEntryID string
	Amount         decimal.Decimal
	PaymentDate    time.Time
}
