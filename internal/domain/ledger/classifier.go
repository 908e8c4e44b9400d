// Package ledger reúne la lógica pura del libro auxiliar: clasificación de líneas por sujeto,
// cálculo de saldos, detección de anomalías, extractos y antigüedad de saldos.
package ledger

import "github.com/jhoicas/ledger-recon/internal/domain/entity"

// RuleName identifica la convención de enlace que hizo coincidir una línea.
type RuleName string

const (
	RuleReferencedSale         RuleName = "referenced_sale"           // a: asiento de venta del sujeto
	RuleReferencedPayment      RuleName = "referenced_payment"        // b: asiento de pago del sujeto
	RulePaymentForSale         RuleName = "payment_for_sale"          // c: pago que resuelve a una venta del sujeto
	RuleSaleWithPaymentBackRef RuleName = "sale_with_payment_backref" // d: asiento tipo venta con payment_id del sujeto
)

// SubjectRefs referencias propias de un sujeto (cliente/proveedor).
type SubjectRefs struct {
	SaleIDs    map[string]struct{}
	PaymentIDs map[string]struct{}
	// PaymentRefs resuelve payment.id -> payment.reference_id para la indirección pago→venta.
	PaymentRefs map[string]string
}

// NewSubjectRefs construye las referencias a partir de las ventas y pagos del sujeto.
// Todos los pagos conocidos alimentan PaymentRefs, aunque no pertenezcan al sujeto.
func NewSubjectRefs(sales []entity.Sale, ownPayments []entity.Payment, knownPayments ...entity.Payment) SubjectRefs {
	refs := SubjectRefs{
		SaleIDs:     make(map[string]struct{}, len(sales)),
		PaymentIDs:  make(map[string]struct{}, len(ownPayments)),
		PaymentRefs: make(map[string]string, len(ownPayments)+len(knownPayments)),
	}
	for _, s := range sales {
		refs.SaleIDs[s.ID] = struct{}{}
	}
	for _, p := range ownPayments {
		refs.PaymentIDs[p.ID] = struct{}{}
		if p.ReferenceID != "" {
			refs.PaymentRefs[p.ID] = p.ReferenceID
		}
	}
	for _, p := range knownPayments {
		if p.ReferenceID != "" {
			refs.PaymentRefs[p.ID] = p.ReferenceID
		}
	}
	return refs
}

func (r SubjectRefs) hasSale(id string) bool {
	if id == "" {
		return false
	}
	_, ok := r.SaleIDs[id]
	return ok
}

func (r SubjectRefs) hasPayment(id string) bool {
	if id == "" {
		return false
	}
	_, ok := r.PaymentIDs[id]
	return ok
}

// Rule predicado independiente sobre una línea.
type Rule struct {
	Name  RuleName
	Match func(refs SubjectRefs, e entity.JournalEntry) bool
}

// Rules convenciones de enlace conocidas, en orden de evaluación.
var Rules = []Rule{
	{Name: RuleReferencedSale, Match: MatchReferencedSale},
	{Name: RuleReferencedPayment, Match: MatchReferencedPayment},
	{Name: RulePaymentForSale, Match: MatchPaymentForSale},
	{Name: RuleSaleWithPaymentBackRef, Match: MatchSaleWithPaymentBackRef},
}

// MatchReferencedSale regla a.
func MatchReferencedSale(refs SubjectRefs, e entity.JournalEntry) bool {
	return e.ReferenceType == entity.ReferenceTypeSale && refs.hasSale(e.ReferenceID)
}

// MatchReferencedPayment regla b.
func MatchReferencedPayment(refs SubjectRefs, e entity.JournalEntry) bool {
	return e.ReferenceType == entity.ReferenceTypePayment && refs.hasPayment(e.ReferenceID)
}

// MatchPaymentForSale regla c.
func MatchPaymentForSale(refs SubjectRefs, e entity.JournalEntry) bool {
	if e.ReferenceType != entity.ReferenceTypePayment {
		return false
	}
	saleID, ok := refs.PaymentRefs[e.ReferenceID]
	return ok && refs.hasSale(saleID)
}

// MatchSaleWithPaymentBackRef regla d.
func MatchSaleWithPaymentBackRef(refs SubjectRefs, e entity.JournalEntry) bool {
	return e.ReferenceType == entity.ReferenceTypeSale && refs.hasPayment(e.PaymentID)
}

// ClassifiedLine línea atribuida al sujeto junto con las reglas que la aceptaron.
type ClassifiedLine struct {
	entity.LedgerLine
	MatchedBy []RuleName
}

// Classify devuelve las líneas atribuibles al sujeto, cada una una sola vez y en el orden de entrada.
// Una línea que no coincide con ninguna regla se excluye.
func Classify(refs SubjectRefs, lines []entity.LedgerLine) []ClassifiedLine {
	seen := make(map[string]struct{}, len(lines))
	out := make([]ClassifiedLine, 0, len(lines))
	for _, l := range lines {
		if _, dup := seen[l.Line.ID]; dup && l.Line.ID != "" {
			continue
		}
		var matched []RuleName
		for _, r := range Rules {
			if r.Match(refs, l.Entry) {
				matched = append(matched, r.Name)
			}
		}
		if len(matched) == 0 {
			continue
		}
		seen[l.Line.ID] = struct{}{}
		out = append(out, ClassifiedLine{LedgerLine: l, MatchedBy: matched})
	}
	return out
}

// Lines desenvuelve las líneas clasificadas.
func Lines(classified []ClassifiedLine) []entity.LedgerLine {
	out := make([]entity.LedgerLine, len(classified))
	for i, c := range classified {
		out[i] = c.LedgerLine
	}
	return out
}
