// stock-reconcile compara products.current_stock con el saldo de stock_movements y, con
// -dry-run=false -confirm=INSERT, inserta un ajuste por cada producto descuadrado en la
// sucursal indicada con -branch.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/jhoicas/ledger-recon/internal/application/repair"
	"github.com/jhoicas/ledger-recon/internal/interfaces/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	companyID := flag.String("company", "", "Optional: reconcile only one company (uuid string). If empty, checks all companies.")
	branchID := flag.String("branch", "", "Branch id the adjustments are recorded in. Required with -dry-run=false, together with -company.")
	dryRun := flag.Bool("dry-run", true, "Only report mismatches; do not insert adjustments.")
	confirm := flag.String("confirm", "", "Must be INSERT to write adjustments when -dry-run=false.")
	xlsxPath := flag.String("xlsx", "", "Optional: write the reconciliation workbook to this path.")
	flag.Parse()

	company := strings.TrimSpace(*companyID)
	branch := strings.TrimSpace(*branchID)
	if !*dryRun {
		if *confirm != "INSERT" {
			return cli.Failf(os.Stderr, "refusing to insert adjustments without -confirm=INSERT")
		}
		if company == "" || branch == "" {
			return cli.Failf(os.Stderr, "inserting adjustments requires -company and -branch")
		}
	}

	ctx := context.Background()
	app, err := cli.Open(ctx, "stock-reconcile")
	if err != nil {
		return cli.Failf(os.Stderr, "%v", err)
	}
	defer app.Close()

	rec, err := app.Inventory.Reconciliation(ctx, company)
	if err != nil {
		return cli.Failf(os.Stderr, "reconciliación: %v", err)
	}
	if err := cli.PrintReconciliation(os.Stdout, rec); err != nil {
		return cli.Failf(os.Stderr, "%v", err)
	}
	if *xlsxPath != "" {
		b, err := app.XLSX.ReconciliationWorkbook(rec)
		if err != nil {
			return cli.Failf(os.Stderr, "generar xlsx: %v", err)
		}
		if err := cli.WriteFile(*xlsxPath, b); err != nil {
			return cli.Failf(os.Stderr, "%v", err)
		}
	}

	if *dryRun || len(rec.Mismatches) == 0 {
		return cli.ExitOK
	}

	inputs := cli.AdjustmentInputs(rec.Mismatches, branch)
	results := make([]*repair.AdjustmentResult, 0, len(inputs))
	failed := 0
	for _, in := range inputs {
		res, err := app.Repairs.InsertBalancingAdjustment(ctx, in)
		if err != nil {
			failed++
			app.Log.Error().Err(err).Str("product_id", in.ProductID).Str("branch_id", in.BranchID).Msg("insertar ajuste")
			continue
		}
		results = append(results, res)
	}
	if err := cli.PrintAdjustments(os.Stdout, results); err != nil {
		return cli.Failf(os.Stderr, "%v", err)
	}
	if failed > 0 {
		return cli.Failf(os.Stderr, "%d ajustes fallaron", failed)
	}
	return cli.ExitOK
}
