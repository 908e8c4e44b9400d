// Package excel exporta los reportes de auditoría y reconciliación a XLSX (excelize).
package excel

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ledger-recon/internal/application/dto"
	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
)

// Nombres de hoja.
const (
	SheetSummary        = "Resumen"
	SheetAnomalies      = "Anomalias"
	SheetReconciliation = "Reconciliacion"
)

var _ ports.SpreadsheetExporter = (*Exporter)(nil)

// Exporter implementa ports.SpreadsheetExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// AuditWorkbook hoja Resumen con totales y conteos por tipo, y hoja Anomalias con una fila por hallazgo.
func (e *Exporter) AuditWorkbook(audit *dto.AccountAudit) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"Cuenta", audit.Account.Code + " " + audit.Account.Name},
		{"Generado", audit.GeneratedAt.Format("2006-01-02 15:04")},
		{"Líneas", audit.Result.Lines},
		{"Total débito", num(audit.Result.TotalDebit)},
		{"Total crédito", num(audit.Result.TotalCredit)},
		{"Saldo", num(audit.Result.Balance)},
	}
	kinds := make([]string, 0, len(audit.Counts))
	for k := range audit.Counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		summary = append(summary, []any{k, audit.Counts[ledger.AnomalyKind(k)]})
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetAnomalies); err != nil {
		return nil, err
	}
	rows := [][]any{{"Tipo", "Línea", "Asiento", "Descripción", "Referencia", "Débito", "Crédito", "Mensaje"}}
	for _, a := range audit.Result.Anomalies {
		ref := a.ReferenceType
		if a.ReferenceID != "" {
			ref += ":" + a.ReferenceID
		}
		rows = append(rows, []any{
			string(a.Kind), a.LineID, a.EntryNo, a.Description, ref,
			num(a.Debit), num(a.Credit), a.Message,
		})
	}
	if err := writeRows(f, SheetAnomalies, rows); err != nil {
		return nil, err
	}
	if err := boldHeader(f, SheetAnomalies, len(rows[0])); err != nil {
		return nil, err
	}
	return toBytes(f)
}

// ReconciliationWorkbook una fila por producto descuadrado.
func (e *Exporter) ReconciliationWorkbook(rec *dto.ReconciliationResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetReconciliation); err != nil {
		return nil, err
	}
	rows := [][]any{{"Producto", "SKU", "Nombre", "Stock dashboard", "Saldo movimientos", "Diferencia"}}
	for _, m := range rec.Mismatches {
		rows = append(rows, []any{
			m.ProductID, m.SKU, m.Name,
			num(m.DashboardStock), num(m.DerivedBalance), num(m.Delta),
		})
	}
	rows = append(rows, []any{}, []any{"Revisados", rec.Checked}, []any{"Descuadres", len(rec.Mismatches)})
	if err := writeRows(f, SheetReconciliation, rows); err != nil {
		return nil, err
	}
	if err := boldHeader(f, SheetReconciliation, len(rows[0])); err != nil {
		return nil, err
	}
	return toBytes(f)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := r
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("excel: fila %d de %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func boldHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func toBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// num redondea a 2 decimales para celdas numéricas.
func num(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
