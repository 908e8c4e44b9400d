// Package pdf genera el extracto de cuenta de un sujeto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sujeto + código     │  Cuenta + rango de fechas     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Saldo inicial / Débitos / Créditos / Saldo final   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Asiento | Descripción | Débito | Crédito | Saldo │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ANOMALÍAS (opcional)                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/application/dto"
	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.StatementPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.StatementPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStatementPDF(
	_ context.Context,
	rep *dto.StatementReport,
	anomalies []ledger.Anomaly,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extracto de cuenta", true).
		WithAuthor(rep.Subject.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep.Statement))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rep.Statement.Rows)...)

	if len(anomalies) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(anomalyRows(anomalies)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: sujeto (izq) y cuenta + período (der).
func headerRow(rep *dto.StatementReport) core.Row {
	period := "Todos los movimientos"
	if st := rep.Statement; st.From != nil || st.To != nil {
		from, to := "inicio", "hoy"
		if st.From != nil {
			from = st.From.Format("02/01/2006")
		}
		if st.To != nil {
			to = st.To.Format("02/01/2006")
		}
		period = from + " - " + to
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(rep.Subject.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+nonEmpty(rep.Subject.Code, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("EXTRACTO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(rep.Account.Code+" "+rep.Account.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Período: "+period, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: saldo inicial, movimientos del período y saldo final.
func summaryRow(st ledger.StatementResult) core.Row {
	cell := func(label string, v decimal.Decimal) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(formatMoney(v), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("Saldo inicial", st.OpeningBalance),
		cell("Débitos", st.TotalDebit),
		cell("Créditos", st.TotalCredit),
		cell("Saldo final", st.ClosingBalance),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Asiento", 1, align.Left),
		h("Descripción", 3, align.Left),
		h("Débito", 2, align.Right),
		h("Crédito", 2, align.Right),
		h("Saldo", 2, align.Right),
	)
}

// tableRows: una fila por movimiento.
func tableRows(rows []ledger.StatementRow) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(7).Add(
			col.New(2).Add(text.New(r.Date.Format("02/01/2006"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(r.EntryNo, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(r.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(r.Debit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(r.Credit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(r.RunningBalance), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	if len(out) == 0 {
		out = append(out, row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el período", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	return out
}

// anomalyRows: listado de hallazgos pendientes de revisión.
func anomalyRows(anomalies []ledger.Anomaly) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("ANOMALÍAS DETECTADAS (%d)", len(anomalies)), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1,
			}),
		)),
	}
	for _, a := range anomalies {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(string(a.Kind), props.Text{Style: fontstyle.Bold, Size: 7, Top: 0.5, Left: 1})),
			col.New(2).Add(text.New(a.EntryNo, props.Text{Size: 7, Top: 0.5})),
			col.New(7).Add(text.New(a.Message, props.Text{Size: 7, Top: 0.5, Color: colorGray})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000 → "$25.000,00", -1234.5 → "-$1.234,50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	intPart, frac, _ := strings.Cut(d.StringFixed(2), ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "," + frac
}
