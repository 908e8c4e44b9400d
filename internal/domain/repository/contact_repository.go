package repository

import (
	"context"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// ContactRepository lectura de clientes/proveedores.
type ContactRepository interface {
	// Find busca por id o, si no coincide, por código. companyID vacío no acota por empresa.
	// Devuelve domain.ErrNotFound si no existe.
	Find(ctx context.Context, companyID, idOrCode string) (*entity.Contact, error)
}
