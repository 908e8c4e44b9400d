package repository

import (
	"context"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// PaymentRepository lectura de pagos.
type PaymentRepository interface {
	// ListForSubject devuelve los pagos con contact_id = contactID o con
	// reference_type = 'sale' y reference_id dentro de saleIDs, sin repetir.
	ListForSubject(ctx context.Context, companyID, contactID string, saleIDs []string) ([]entity.Payment, error)
	// ListByIDs resuelve pagos por id (para la indirección pago→venta del clasificador).
	ListByIDs(ctx context.Context, ids []string) ([]entity.Payment, error)
	ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
}
