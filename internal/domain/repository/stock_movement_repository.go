package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain/entity"
)

// StockMovementFilter acota la lectura de stock_movements. Campos vacíos no filtran.
type StockMovementFilter struct {
	CompanyID   string
	ProductID   string
	BranchID    string
	VariationID string
}

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
// Los movimientos son inmutables: solo se leen o se insertan.
type StockMovementRepository interface {
	// List devuelve los movimientos ordenados por created_at ascendente.
	List(ctx context.Context, f StockMovementFilter) ([]entity.StockMovement, error)
	// FindRecentAdjustment busca un ajuste del producto con |quantity - qty| < tol creado desde since.
	// Devuelve nil, nil si no existe.
	FindRecentAdjustment(ctx context.Context, companyID, productID string, qty, tol decimal.Decimal, since time.Time) (*entity.StockMovement, error)
	Create(ctx context.Context, m *entity.StockMovement) error
}
