package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/application/dto"
	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
	"github.com/jhoicas/ledger-recon/internal/domain/stock"
	"github.com/jhoicas/ledger-recon/pkg/logger"
)

// UseCase consultas de stock derivadas de stock_movements. Solo lectura: las correcciones
// pasan por repair.Service.
type UseCase struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	log       *logger.Logger
	tolerance decimal.Decimal
}

// NewUseCase construye el caso de uso. tolerance cero usa domain.Tolerance.
func NewUseCase(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	log *logger.Logger,
	tolerance decimal.Decimal,
) *UseCase {
	if tolerance.IsZero() {
		tolerance = domain.Tolerance
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		products:  products,
		movements: movements,
		log:       log.Named("inventory"),
		tolerance: tolerance,
	}
}

// ProductSummary agrega los movimientos de un producto, opcionalmente acotados por sucursal y variante.
// La comparación contra el dashboard solo se hace sin filtros.
func (uc *UseCase) ProductSummary(ctx context.Context, companyID, productID, branchID, variationID string) (*dto.ProductStockSummary, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetStock(ctx, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", productID, err)
	}
	movs, err := uc.movements.List(ctx, repository.StockMovementFilter{
		CompanyID:   companyID,
		ProductID:   productID,
		BranchID:    branchID,
		VariationID: variationID,
	})
	if err != nil {
		return nil, fmt.Errorf("list movements %s: %w", productID, err)
	}

	sum := stock.Aggregate(movs, stock.Scope{ProductID: productID, BranchID: branchID, VariationID: variationID})
	out := &dto.ProductStockSummary{
		ProductID:      p.ProductID,
		SKU:            p.SKU,
		Name:           p.Name,
		BranchID:       branchID,
		VariationID:    variationID,
		DashboardStock: p.CurrentStock,
		AvgCost:        stock.WeightedAverageCost(movs),
		Summary:        sum,
	}
	if out.AvgCost.IsZero() {
		out.AvgCost = p.CostPrice
	}
	if branchID == "" && variationID == "" {
		if m, ok := stock.DetectMismatch(*p, sum, uc.tolerance); ok {
			out.Mismatch = &m
		}
	}
	if sum.Ignored > 0 {
		uc.log.Warn().Str("product_id", productID).Int("ignored", sum.Ignored).Msg("movimientos con tipo desconocido")
	}
	return out, nil
}

// Overview resumen de inventario de la empresa; branchID vacío considera todas las sucursales.
func (uc *UseCase) Overview(ctx context.Context, companyID, branchID string) (*dto.InventoryOverviewResponse, error) {
	products, err := uc.products.ListStock(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	variations, err := uc.products.ListVariations(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list variations: %w", err)
	}
	movs, err := uc.movements.List(ctx, repository.StockMovementFilter{CompanyID: companyID, BranchID: branchID})
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}

	rows := stock.Overview(products, variations, movs)
	out := &dto.InventoryOverviewResponse{BranchID: branchID, Items: rows, TotalValue: decimal.Zero}
	for _, r := range rows {
		out.TotalValue = out.TotalValue.Add(r.StockValue)
		switch r.Status {
		case stock.StatusLow:
			out.LowCount++
		case stock.StatusOut:
			out.OutCount++
		}
	}
	return out, nil
}

// Reconciliation compara products.current_stock con el saldo de todos sus movimientos y devuelve
// los descuadres ordenados por |delta| descendente. companyID vacío revisa todas las empresas.
func (uc *UseCase) Reconciliation(ctx context.Context, companyID string) (*dto.ReconciliationResponse, error) {
	products, err := uc.products.ListStock(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	movs, err := uc.movements.List(ctx, repository.StockMovementFilter{CompanyID: companyID})
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	byProduct := make(map[string][]entity.StockMovement, len(products))
	for _, m := range movs {
		byProduct[m.ProductID] = append(byProduct[m.ProductID], m)
	}

	out := &dto.ReconciliationResponse{Checked: len(products), Mismatches: []stock.Mismatch{}}
	for _, p := range products {
		sum := stock.Aggregate(byProduct[p.ProductID], stock.Scope{ProductID: p.ProductID})
		if m, ok := stock.DetectMismatch(p, sum, uc.tolerance); ok {
			out.Mismatches = append(out.Mismatches, m)
		}
	}
	sort.SliceStable(out.Mismatches, func(i, j int) bool {
		return out.Mismatches[i].Delta.Abs().GreaterThan(out.Mismatches[j].Delta.Abs())
	})

	uc.log.Info().
		Str("company_id", companyID).
		Int("checked", out.Checked).
		Int("mismatches", len(out.Mismatches)).
		Msg("reconciliación de stock")
	return out, nil
}
