package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
)

// SubjectDTO cliente/proveedor inspeccionado.
type SubjectDTO struct {
	ID    string `json:"id"`
	Code  string `json:"code,omitempty"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// AccountDTO cuenta contable.
type AccountDTO struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// LedgerLineDTO línea del libro con su asiento.
type LedgerLineDTO struct {
	LineID        string            `json:"line_id"`
	EntryID       string            `json:"entry_id"`
	EntryNo       string            `json:"entry_no"`
	EntryDate     time.Time         `json:"entry_date"`
	Description   string            `json:"description"`
	ReferenceType string            `json:"reference_type"`
	ReferenceID   string            `json:"reference_id,omitempty"`
	PaymentID     string            `json:"payment_id,omitempty"`
	Debit         decimal.Decimal   `json:"debit"`
	Credit        decimal.Decimal   `json:"credit"`
	MatchedBy     []ledger.RuleName `json:"matched_by,omitempty"`
}

// SubjectReport inspección del saldo de un sujeto en Cuentas por Cobrar.
type SubjectReport struct {
	Subject         SubjectDTO      `json:"subject"`
	Account         AccountDTO      `json:"account"`
	SalesCount      int             `json:"sales_count"`
	SalesTotal      decimal.Decimal `json:"sales_total"`
	PaymentsCount   int             `json:"payments_count"`
	PaymentsTotal   decimal.Decimal `json:"payments_total"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
	Result          ledger.Result   `json:"result"`
	Lines           []LedgerLineDTO `json:"lines"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Cached          bool            `json:"cached"`
}

// AccountAudit auditoría de todas las líneas de Cuentas por Cobrar de la empresa.
type AccountAudit struct {
	Account     AccountDTO                 `json:"account"`
	Result      ledger.Result              `json:"result"`
	Counts      map[ledger.AnomalyKind]int `json:"counts"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Cached      bool                       `json:"cached"`
}

// StatementReport extracto con saldo acumulado.
type StatementReport struct {
	Subject   SubjectDTO             `json:"subject"`
	Account   AccountDTO             `json:"account"`
	Statement ledger.StatementResult `json:"statement"`
}

// AgingResponse antigüedad de saldos de un sujeto.
type AgingResponse struct {
	Subject SubjectDTO         `json:"subject"`
	AsOf    time.Time          `json:"as_of"`
	Aging   ledger.AgingReport `json:"aging"`
}

// ToSubjectDTO convierte la entidad.
func ToSubjectDTO(c *entity.Contact) SubjectDTO {
	return SubjectDTO{ID: c.ID, Code: c.Code, Name: c.Name, Type: c.Type, Phone: c.Phone}
}

// ToAccountDTO convierte la entidad.
func ToAccountDTO(a *entity.Account) AccountDTO {
	return AccountDTO{ID: a.ID, Code: a.Code, Name: a.Name}
}

// ToLedgerLineDTOs convierte las líneas clasificadas.
func ToLedgerLineDTOs(lines []ledger.ClassifiedLine) []LedgerLineDTO {
	out := make([]LedgerLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, LedgerLineDTO{
			LineID:        l.Line.ID,
			EntryID:       l.Entry.ID,
			EntryNo:       l.Entry.EntryNo,
			EntryDate:     l.Entry.EntryDate,
			Description:   l.Entry.Description,
			ReferenceType: l.Entry.ReferenceType,
			ReferenceID:   l.Entry.ReferenceID,
			PaymentID:     l.Entry.PaymentID,
			Debit:         l.Line.Debit,
			Credit:        l.Line.Credit,
			MatchedBy:     l.MatchedBy,
		})
	}
	return out
}
