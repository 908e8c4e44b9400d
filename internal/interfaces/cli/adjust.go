package cli

import (
	"github.com/jhoicas/ledger-recon/internal/application/repair"
	"github.com/jhoicas/ledger-recon/internal/domain/stock"
)

// AdjustmentInputs un ajuste por producto descuadrado, registrado en la sucursal branchID.
func AdjustmentInputs(mismatches []stock.Mismatch, branchID string) []repair.AdjustmentInput {
	out := make([]repair.AdjustmentInput, 0, len(mismatches))
	for _, m := range mismatches {
		out = append(out, repair.AdjustmentInput{
			CompanyID:     m.CompanyID,
			ProductID:     m.ProductID,
			BranchID:      branchID,
			DeltaQuantity: m.Delta,
		})
	}
	return out
}
