package repository

import (
	"context"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// SaleRepository lectura de ventas.
type SaleRepository interface {
	ListByCustomer(ctx context.Context, companyID, customerID string) ([]entity.Sale, error)
	// ExistingIDs devuelve el subconjunto de ids que existe en sales.
	ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
}
