// ledger-repair aplica correcciones puntuales sobre journal_entry_lines: cambio de lado de
// líneas con signo invertido (-fix-sign) o borrado de líneas mal clasificadas (-remove-lines).
// Por defecto solo muestra lo que haría.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/ledger-recon/internal/application/repair"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
	"github.com/jhoicas/ledger-recon/internal/interfaces/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	companyID := flag.String("company", "", "Required: company id (uuid string).")
	fixSign := flag.String("fix-sign", "", "Comma separated line ids whose amount must move to -expected.")
	expected := flag.String("expected", "", "Expected side for -fix-sign: debit or credit.")
	removeLines := flag.String("remove-lines", "", "Comma separated line ids to delete.")
	dryRun := flag.Bool("dry-run", true, "Only print the planned changes.")
	confirm := flag.String("confirm", "", "Must be FIX (for -fix-sign) or DELETE (for -remove-lines) when -dry-run=false.")
	flag.Parse()

	company := strings.TrimSpace(*companyID)
	signIDs := cli.SplitIDs(*fixSign)
	deleteIDs := cli.SplitIDs(*removeLines)
	if company == "" || (len(signIDs) == 0) == (len(deleteIDs) == 0) {
		fmt.Fprintln(os.Stderr, "use -company with exactly one of -fix-sign or -remove-lines")
		flag.Usage()
		return cli.ExitUsage
	}

	var want ledger.Polarity
	if len(signIDs) > 0 {
		p, ok := ledger.ParsePolarity(*expected)
		if !ok {
			return cli.Failf(os.Stderr, "-expected must be debit or credit")
		}
		want = p
	}

	if *dryRun {
		for _, id := range signIDs {
			fmt.Printf("[dry-run] line %s -> %s\n", id, want)
		}
		for _, id := range deleteIDs {
			fmt.Printf("[dry-run] delete line %s\n", id)
		}
		return cli.ExitOK
	}
	if len(signIDs) > 0 && *confirm != "FIX" {
		return cli.Failf(os.Stderr, "refusing to change lines without -confirm=FIX")
	}
	if len(deleteIDs) > 0 && *confirm != "DELETE" {
		return cli.Failf(os.Stderr, "refusing to delete lines without -confirm=DELETE")
	}

	ctx := context.Background()
	app, err := cli.Open(ctx, "ledger-repair")
	if err != nil {
		return cli.Failf(os.Stderr, "%v", err)
	}
	defer app.Close()

	var (
		outcomes []repair.Outcome
		action   string
	)
	if len(signIDs) > 0 {
		outcomes = app.Repairs.FixWrongSigns(ctx, company, signIDs, want)
		action = "fix-sign:" + string(want)
	} else {
		outcomes = app.Repairs.RemoveMisclassifiedLines(ctx, company, deleteIDs)
		action = "delete"
	}
	if err := cli.PrintOutcomes(os.Stdout, action, outcomes); err != nil {
		return cli.Failf(os.Stderr, "%v", err)
	}
	if n := repair.Failed(outcomes); n > 0 {
		return cli.Failf(os.Stderr, "%d filas con error", n)
	}
	return cli.ExitOK
}
