package dto

import "github.com/shopspring/decimal"

// FixSignRequest body de POST /api/repairs/lines/:id/sign.
type FixSignRequest struct {
	Expected string `json:"expected"` // debit | credit
}

// DeleteLinesRequest body de POST /api/repairs/lines/delete.
type DeleteLinesRequest struct {
	LineIDs []string `json:"line_ids"`
}

// StockAdjustmentRequest body de POST /api/repairs/stock-adjustments.
type StockAdjustmentRequest struct {
	ProductID string          `json:"product_id"`
	BranchID  string          `json:"branch_id,omitempty"`
	Delta     decimal.Decimal `json:"delta"`
	Note      string          `json:"note,omitempty"`
}

// RepairOutcomeDTO resultado por fila.
type RepairOutcomeDTO struct {
	ID      string `json:"id"`
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}

// RepairBatchResponse resultado de un lote de reparaciones.
type RepairBatchResponse struct {
	Applied int                `json:"applied"`
	Failed  int                `json:"failed"`
	Results []RepairOutcomeDTO `json:"results"`
}
