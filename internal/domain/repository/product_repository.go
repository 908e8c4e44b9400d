package repository

import (
	"context"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// ProductRepository lectura de productos con su stock de dashboard (products.current_stock).
type ProductRepository interface {
	// GetStock devuelve domain.ErrNotFound si el producto no pertenece a la empresa.
	GetStock(ctx context.Context, companyID, productID string) (*entity.ProductStock, error)
	// ListStock devuelve los productos de la empresa; companyID vacío lista todas las empresas.
	ListStock(ctx context.Context, companyID string) ([]entity.ProductStock, error)
	// ListVariations devuelve las variantes activas de la empresa.
	ListVariations(ctx context.Context, companyID string) ([]entity.ProductVariation, error)
}
