package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock (columna stock_movements.movement_type).
const (
	MovementTypePurchase    = "purchase"     // entrada por compra
	MovementTypeSale        = "sale"         // salida por venta (cantidad negativa)
	MovementTypeReturn      = "return"       // devolución de cliente
	MovementTypeTransferIn  = "transfer_in"  // traslado entrante desde otra sucursal
	MovementTypeTransferOut = "transfer_out" // traslado saliente (cantidad negativa)
	MovementTypeAdjustment  = "adjustment"   // ajuste (+/-), también saldo inicial
)

// Tipos de referencia usados por los movimientos generados por el sistema.
const (
	StockReferenceAdjustment     = "adjustment"
	StockReferenceOpeningBalance = "opening_balance"
)

// StockMovement es una fila inmutable de stock_movements.
// Las correcciones se registran como nuevos movimientos de tipo adjustment, nunca como ediciones.
type StockMovement struct {
	ID            string
	CompanyID     string
	BranchID      string // vacío = sin sucursal
	ProductID     string
	VariationID   string // vacío = stock a nivel producto
	MovementType  string
	Quantity      decimal.Decimal // con signo: negativo en sale/transfer_out
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Notes         string
	CreatedAt     time.Time
}
