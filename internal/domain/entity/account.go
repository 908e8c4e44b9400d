package entity

// Códigos convencionales de cuentas.
const (
	AccountCodeReceivable       = "2000"
	AccountCodeReceivableLegacy = "1100"
)

// Account cuenta del plan contable de una empresa.
type Account struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
}
