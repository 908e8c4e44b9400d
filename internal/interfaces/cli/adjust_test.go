package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-recon/internal/domain/stock"
	"github.com/jhoicas/ledger-recon/internal/interfaces/cli"
)

func TestAdjustmentInputs_LlevanLaSucursal(t *testing.T) {
	mismatches := []stock.Mismatch{
		{CompanyID: "company-1", ProductID: "p-1", Delta: dec("5")},
		{CompanyID: "company-1", ProductID: "p-2", Delta: dec("-2.5")},
	}

	got := cli.AdjustmentInputs(mismatches, "branch-main")
	require.Len(t, got, 2)
	for i, in := range got {
		assert.Equal(t, "branch-main", in.BranchID)
		assert.Equal(t, mismatches[i].ProductID, in.ProductID)
		assert.Equal(t, "company-1", in.CompanyID)
		assert.True(t, in.DeltaQuantity.Equal(mismatches[i].Delta))
	}
	assert.Empty(t, cli.AdjustmentInputs(nil, "branch-main"))
}
