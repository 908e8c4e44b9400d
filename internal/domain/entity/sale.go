package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una venta.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
	PaymentStatusUnpaid  = "unpaid"
)

// Sale factura de venta a un cliente.
type Sale struct {
	ID             string
	CompanyID      string
	CustomerID     string
	InvoiceNo      string
	InvoiceDate    time.Time
	Total          decimal.Decimal
	PaidAmount     decimal.Decimal
	DueAmount      decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Expenses       decimal.Decimal
	PaymentStatus  string
}
