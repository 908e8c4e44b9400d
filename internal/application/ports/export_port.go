package ports

import (
	"context"

	"github.com/jhoicas/ledger-recon/internal/application/dto"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
)

// StatementPDFGenerator genera la representación PDF del extracto de un sujeto.
// anomalies puede ser nil; si trae elementos se listan al final del documento.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, rep *dto.StatementReport, anomalies []ledger.Anomaly) ([]byte, error)
}

// SpreadsheetExporter exporta reportes a XLSX.
type SpreadsheetExporter interface {
	AuditWorkbook(audit *dto.AccountAudit) ([]byte, error)
	ReconciliationWorkbook(rec *dto.ReconciliationResponse) ([]byte, error)
}
