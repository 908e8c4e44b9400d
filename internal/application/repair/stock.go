package repair

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/stock"
)

// Motivos por los que un ajuste no se inserta.
const (
	SkipBelowTolerance = "below_tolerance"
	SkipDuplicate      = "duplicate"
)

// AdjustmentInput ajuste de stock para cuadrar el dashboard con los movimientos.
type AdjustmentInput struct {
	CompanyID     string
	ProductID     string
	BranchID      string
	DeltaQuantity decimal.Decimal // dashboard - derivado
	Note          string          // vacío = nota estándar
}

// AdjustmentResult resultado del ajuste. MovementID es el movimiento insertado o el duplicado encontrado.
type AdjustmentResult struct {
	ProductID  string          `json:"product_id"`
	Delta      decimal.Decimal `json:"delta"`
	Applied    bool            `json:"applied"`
	MovementID string          `json:"movement_id,omitempty"`
	Skipped    string          `json:"skipped,omitempty"`
}

// InsertBalancingAdjustment inserta un movimiento adjustment con cantidad DeltaQuantity, salvo que
// |delta| < tolerancia o que ya exista un ajuste equivalente dentro de la ventana configurada.
func (s *Service) InsertBalancingAdjustment(ctx context.Context, in AdjustmentInput) (*AdjustmentResult, error) {
	if in.CompanyID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	res := &AdjustmentResult{ProductID: in.ProductID, Delta: in.DeltaQuantity}
	if in.DeltaQuantity.Abs().LessThan(s.cfg.Tolerance) {
		res.Skipped = SkipBelowTolerance
		return res, nil
	}

	err := s.withLock(ctx, ports.ProductLockKey(in.CompanyID, in.ProductID), func() error {
		if _, err := s.products.GetStock(ctx, in.CompanyID, in.ProductID); err != nil {
			return err
		}
		now := s.now()
		existing, err := s.movements.FindRecentAdjustment(ctx, in.CompanyID, in.ProductID,
			in.DeltaQuantity, s.cfg.Tolerance, now.Add(-s.cfg.AdjustmentLookback))
		if err != nil {
			return err
		}
		if existing != nil {
			res.Skipped = SkipDuplicate
			res.MovementID = existing.ID
			return nil
		}

		note := in.Note
		if note == "" {
			note = stock.AdjustmentNote(in.DeltaQuantity)
		}
		m := &entity.StockMovement{
			CompanyID:     in.CompanyID,
			BranchID:      in.BranchID,
			ProductID:     in.ProductID,
			MovementType:  entity.MovementTypeAdjustment,
			Quantity:      in.DeltaQuantity,
			UnitCost:      decimal.Zero,
			TotalCost:     decimal.Zero,
			ReferenceType: entity.StockReferenceAdjustment,
			Notes:         note,
			CreatedAt:     now,
		}
		if err := s.movements.Create(ctx, m); err != nil {
			return err
		}
		res.Applied = true
		res.MovementID = m.ID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert balancing adjustment %s: %w", in.ProductID, err)
	}

	if res.Applied {
		s.log.Info().
			Str("company_id", in.CompanyID).
			Str("product_id", in.ProductID).
			Str("delta", in.DeltaQuantity.String()).
			Str("movement_id", res.MovementID).
			Msg("ajuste de stock insertado")
	}
	return res, nil
}
