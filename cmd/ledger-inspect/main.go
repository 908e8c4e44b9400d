// ledger-inspect imprime el saldo de un cliente en Cuentas por Cobrar, o la auditoría
// completa de la cuenta con -audit. Solo lectura.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/jhoicas/ledger-recon/internal/interfaces/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	companyID := flag.String("company", "", "Required: company id (uuid string).")
	customer := flag.String("customer", "", "Customer id or code to inspect.")
	auditAll := flag.Bool("audit", false, "Audit every line of the receivable account instead of one customer.")
	refresh := flag.Bool("refresh", false, "Ignore the cached result and recompute.")
	xlsxPath := flag.String("xlsx", "", "Optional: write the audit workbook to this path (only with -audit).")
	pdfPath := flag.String("pdf", "", "Optional: write the customer statement PDF to this path.")
	flag.Parse()

	company := strings.TrimSpace(*companyID)
	subject := strings.TrimSpace(*customer)
	if company == "" || (subject == "" && !*auditAll) {
		flag.Usage()
		return cli.ExitUsage
	}

	ctx := context.Background()
	app, err := cli.Open(ctx, "ledger-inspect")
	if err != nil {
		return cli.Failf(os.Stderr, "%v", err)
	}
	defer app.Close()

	if *auditAll {
		res, err := app.Audit.AuditReceivable(ctx, company, *refresh)
		if err != nil {
			return cli.Failf(os.Stderr, "auditoría de Cuentas por Cobrar: %v", err)
		}
		if err := cli.PrintAccountAudit(os.Stdout, res); err != nil {
			return cli.Failf(os.Stderr, "%v", err)
		}
		if *xlsxPath != "" {
			b, err := app.XLSX.AuditWorkbook(res)
			if err != nil {
				return cli.Failf(os.Stderr, "generar xlsx: %v", err)
			}
			if err := cli.WriteFile(*xlsxPath, b); err != nil {
				return cli.Failf(os.Stderr, "%v", err)
			}
		}
		return cli.ExitOK
	}

	rep, err := app.Audit.InspectSubject(ctx, company, subject, *refresh)
	if err != nil {
		return cli.Failf(os.Stderr, "inspeccionar %s: %v", subject, err)
	}
	if err := cli.PrintSubjectReport(os.Stdout, rep); err != nil {
		return cli.Failf(os.Stderr, "%v", err)
	}

	if *pdfPath != "" {
		st, err := app.Audit.Statement(ctx, company, subject, nil, nil)
		if err != nil {
			return cli.Failf(os.Stderr, "extracto %s: %v", subject, err)
		}
		b, err := app.PDF.GenerateStatementPDF(ctx, st, rep.Result.Anomalies)
		if err != nil {
			return cli.Failf(os.Stderr, "generar pdf: %v", err)
		}
		if err := cli.WriteFile(*pdfPath, b); err != nil {
			return cli.Failf(os.Stderr, "%v", err)
		}
	}
	return cli.ExitOK
}
