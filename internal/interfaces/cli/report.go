// Package cli formatea los reportes de las herramientas de consola (cmd/ledger-inspect,
// cmd/stock-reconcile, cmd/ledger-repair). Escribe texto plano en columnas.
package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/application/dto"
	"github.com/jhoicas/ledger-recon/internal/application/repair"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
	"github.com/jhoicas/ledger-recon/internal/domain/stock"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

// PrintSubjectReport imprime el saldo de un sujeto, sus líneas y las anomalías encontradas.
func PrintSubjectReport(w io.Writer, rep *dto.SubjectReport) error {
	fmt.Fprintf(w, "Sujeto:   %s (%s)\n", rep.Subject.Name, rep.Subject.ID)
	fmt.Fprintf(w, "Cuenta:   %s %s\n", rep.Account.Code, rep.Account.Name)
	fmt.Fprintf(w, "Ventas:   %d por %s\n", rep.SalesCount, money(rep.SalesTotal))
	fmt.Fprintf(w, "Pagos:    %d por %s\n", rep.PaymentsCount, money(rep.PaymentsTotal))
	fmt.Fprintf(w, "Esperado: %s\n", money(rep.ExpectedBalance))
	fmt.Fprintf(w, "Libro:    débito %s  crédito %s  saldo %s\n",
		money(rep.Result.TotalDebit), money(rep.Result.TotalCredit), money(rep.Result.Balance))
	if rep.Cached {
		fmt.Fprintln(w, "(resultado desde caché)")
	}
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "FECHA\tASIENTO\tDESCRIPCION\tREF\tDEBITO\tCREDITO\tREGLAS")
	for _, l := range rep.Lines {
		rules := ""
		for i, r := range l.MatchedBy {
			if i > 0 {
				rules += ","
			}
			rules += string(r)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.EntryDate.Format("2006-01-02"), l.EntryNo, l.Description, l.ReferenceType,
			money(l.Debit), money(l.Credit), rules)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return PrintAnomalies(w, rep.Result.Anomalies)
}

// PrintAccountAudit imprime el resumen de la auditoría de Cuentas por Cobrar.
func PrintAccountAudit(w io.Writer, a *dto.AccountAudit) error {
	fmt.Fprintf(w, "Cuenta: %s %s\n", a.Account.Code, a.Account.Name)
	fmt.Fprintf(w, "Líneas: %d  débito %s  crédito %s  saldo %s\n",
		a.Result.Lines, money(a.Result.TotalDebit), money(a.Result.TotalCredit), money(a.Result.Balance))

	kinds := make([]string, 0, len(a.Counts))
	for k := range a.Counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-24s %d\n", k, a.Counts[ledger.AnomalyKind(k)])
	}
	fmt.Fprintln(w)
	return PrintAnomalies(w, a.Result.Anomalies)
}

// PrintAnomalies una fila por hallazgo.
func PrintAnomalies(w io.Writer, anomalies []ledger.Anomaly) error {
	if len(anomalies) == 0 {
		fmt.Fprintln(w, "Sin anomalías.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "TIPO\tLINEA\tASIENTO\tDESCRIPCION\tDEBITO\tCREDITO\tDETALLE")
	for _, a := range anomalies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Kind, a.LineID, a.EntryNo, a.Description, money(a.Debit), money(a.Credit), a.Message)
	}
	return tw.Flush()
}

// PrintReconciliation imprime los productos descuadrados.
func PrintReconciliation(w io.Writer, r *dto.ReconciliationResponse) error {
	fmt.Fprintf(w, "Productos revisados: %d  descuadrados: %d\n", r.Checked, len(r.Mismatches))
	if len(r.Mismatches) == 0 {
		return nil
	}
	return printMismatches(w, r.Mismatches)
}

func printMismatches(w io.Writer, ms []stock.Mismatch) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "EMPRESA\tPRODUCTO\tSKU\tNOMBRE\tDASHBOARD\tDERIVADO\tDELTA")
	for _, m := range ms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.CompanyID, m.ProductID, m.SKU, m.Name,
			money(m.DashboardStock), money(m.DerivedBalance), money(m.Delta))
	}
	return tw.Flush()
}

// PrintOutcomes imprime el resultado por fila de un lote de reparaciones.
func PrintOutcomes(w io.Writer, action string, outcomes []repair.Outcome) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tACCION\tRESULTADO")
	locked := 0
	for _, o := range outcomes {
		status := "sin cambios"
		switch {
		case repair.IsLockContention(o.Err):
			status = "bloqueada por otra reparación"
			locked++
		case o.Err != nil:
			status = "error: " + o.Err.Error()
		case o.Applied:
			status = "aplicado"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.ID, action, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d filas, %d con error\n", len(outcomes), repair.Failed(outcomes))
	if locked > 0 {
		fmt.Fprintf(w, "%d filas bloqueadas: reintentar más tarde con los mismos ids\n", locked)
	}
	return nil
}

// PrintAdjustments imprime el resultado de los ajustes de stock.
func PrintAdjustments(w io.Writer, results []*repair.AdjustmentResult) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "PRODUCTO\tDELTA\tRESULTADO\tMOVIMIENTO")
	for _, r := range results {
		status := "aplicado"
		if !r.Applied {
			status = "omitido"
			if r.Skipped != "" {
				status += " (" + r.Skipped + ")"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ProductID, money(r.Delta), status, r.MovementID)
	}
	return tw.Flush()
}
