package entity

// Tipos de contacto.
const (
	ContactTypeCustomer = "customer"
	ContactTypeSupplier = "supplier"
)

// Contact cliente o proveedor (sujeto de un libro auxiliar).
type Contact struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Type      string
	Phone     string
}
