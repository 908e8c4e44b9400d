package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AnomalyKind tipo de violación de invariante detectada.
type AnomalyKind string

const (
	AnomalyDualAmount             AnomalyKind = "DualAmount"
	AnomalyCommissionInReceivable AnomalyKind = "CommissionInReceivable"
	AnomalyWrongSign              AnomalyKind = "WrongSign"
	AnomalyBalanceMismatch        AnomalyKind = "BalanceMismatch"
	AnomalyOrphanReference        AnomalyKind = "OrphanReference"
)

// Polarity lado esperado de una línea.
type Polarity string

const (
	PolarityDebit  Polarity = "debit"
	PolarityCredit Polarity = "credit"
)

// ParsePolarity acepta "debit"/"credit" (sin distinguir mayúsculas).
func ParsePolarity(s string) (Polarity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PolarityDebit):
		return PolarityDebit, true
	case string(PolarityCredit):
		return PolarityCredit, true
	}
	return "", false
}

// Anomaly hallazgo reportable. No es un error: requiere revisión humana antes de reparar.
type Anomaly struct {
	Kind          AnomalyKind     `json:"kind"`
	LineID        string          `json:"line_id,omitempty"`
	EntryID       string          `json:"entry_id,omitempty"`
	EntryNo       string          `json:"entry_no,omitempty"`
	Description   string          `json:"description,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Expected      *Polarity       `json:"expected_polarity,omitempty"`
	// ExpectedBalance y ActualBalance solo aplican a BalanceMismatch.
	ExpectedBalance *decimal.Decimal `json:"expected_balance,omitempty"`
	ActualBalance   *decimal.Decimal `json:"actual_balance,omitempty"`
	Message         string           `json:"message"`
}

// CountByKind cuenta anomalías por tipo.
func CountByKind(anomalies []Anomaly) map[AnomalyKind]int {
	out := make(map[AnomalyKind]int)
	for _, a := range anomalies {
		out[a.Kind]++
	}
	return out
}

// LineIDsOf devuelve los IDs de línea de las anomalías del tipo indicado, sin repetir.
func LineIDsOf(anomalies []Anomaly, kind AnomalyKind) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, a := range anomalies {
		if a.Kind != kind || a.LineID == "" {
			continue
		}
		if _, ok := seen[a.LineID]; ok {
			continue
		}
		seen[a.LineID] = struct{}{}
		ids = append(ids, a.LineID)
	}
	return ids
}
