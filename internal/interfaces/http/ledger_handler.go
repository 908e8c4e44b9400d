package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-recon/internal/application/audit"
	"github.com/jhoicas/ledger-recon/internal/application/dto"
	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/pkg/logger"
)

const dateLayout = "2006-01-02"

// LedgerHandler inspecciones del libro auxiliar (solo lectura).
type LedgerHandler struct {
	uc   *audit.UseCase
	pdf  ports.StatementPDFGenerator
	xlsx ports.SpreadsheetExporter
	log  *logger.Logger
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *audit.UseCase, pdf ports.StatementPDFGenerator, xlsx ports.SpreadsheetExporter, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{uc: uc, pdf: pdf, xlsx: xlsx, log: log}
}

// InspectSubject godoc
// @Summary      Saldo y anomalías de un sujeto en Cuentas por Cobrar
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID o código del contacto"
// @Param        refresh  query  bool    false  "Ignorar el caché"
// @Success      200  {object}  dto.SubjectReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/subjects/{id} [get]
func (h *LedgerHandler) InspectSubject(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	rep, err := h.uc.InspectSubject(c.Context(), companyID, c.Params("id"), c.QueryBool("refresh"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(rep)
}

// Statement godoc
// @Summary      Extracto del sujeto con saldo acumulado
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID o código del contacto"
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Success      200  {object}  dto.StatementReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger/subjects/{id}/statement [get]
func (h *LedgerHandler) Statement(c *fiber.Ctx) error {
	rep, err := h.statement(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(rep)
}

// StatementPDF godoc
// @Summary      Extracto del sujeto en PDF
// @Tags         ledger
// @Security     Bearer
// @Produce      application/pdf
// @Param        id    path   string  true   "ID o código del contacto"
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger/subjects/{id}/statement.pdf [get]
func (h *LedgerHandler) StatementPDF(c *fiber.Ctx) error {
	rep, err := h.statement(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	inspection, err := h.uc.InspectSubject(c.Context(), GetCompanyID(c), c.Params("id"), false)
	if err != nil {
		return respondError(c, h.log, err)
	}
	b, err := h.pdf.GenerateStatementPDF(c.Context(), rep, inspection.Result.Anomalies)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement-`+rep.Subject.ID+`.pdf"`)
	return c.Send(b)
}

func (h *LedgerHandler) statement(c *fiber.Ctx) (*dto.StatementReport, error) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return nil, domain.ErrUnauthorized
	}
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return nil, domain.ErrInvalidInput
	}
	from, err := parseDate(q.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(q.To)
	if err != nil {
		return nil, err
	}
	return h.uc.Statement(c.Context(), companyID, c.Params("id"), from, to)
}

// Aging godoc
// @Summary      Antigüedad del saldo pendiente del sujeto
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID o código del contacto"
// @Param        as_of  query  string  false  "Fecha de corte (YYYY-MM-DD), vacío = hoy"
// @Success      200  {object}  dto.AgingResponse
// @Router       /api/ledger/subjects/{id}/aging [get]
func (h *LedgerHandler) Aging(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	asOf, err := parseDate(c.Query("as_of"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	var at time.Time
	if asOf != nil {
		at = *asOf
	}
	rep, err := h.uc.Aging(c.Context(), companyID, c.Params("id"), at)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(rep)
}

// AuditReceivable godoc
// @Summary      Auditoría de todas las líneas de Cuentas por Cobrar
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        refresh  query  bool  false  "Ignorar el caché"
// @Success      200  {object}  dto.AccountAudit
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/receivable/audit [get]
func (h *LedgerHandler) AuditReceivable(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	res, err := h.uc.AuditReceivable(c.Context(), companyID, c.QueryBool("refresh"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(res)
}

// AuditReceivableXLSX godoc
// @Summary      Auditoría de Cuentas por Cobrar en XLSX
// @Tags         ledger
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/ledger/receivable/audit.xlsx [get]
func (h *LedgerHandler) AuditReceivableXLSX(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	res, err := h.uc.AuditReceivable(c.Context(), companyID, c.QueryBool("refresh"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	b, err := h.xlsx.AuditWorkbook(res)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendXLSX(c, "receivable-audit.xlsx", b)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

func sendXLSX(c *fiber.Ctx, filename string, b []byte) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}
