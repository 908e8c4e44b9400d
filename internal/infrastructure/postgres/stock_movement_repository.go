package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const stockMovementColumns = `
	id, company_id, branch_id, product_id, variation_id, movement_type, quantity,
	COALESCE(unit_cost, 0), COALESCE(total_cost, 0),
	reference_type, reference_id::text, notes, created_at`

// List devuelve los movimientos que cumplen el filtro, del más antiguo al más reciente.
func (r *StockMovementRepo) List(ctx context.Context, f repository.StockMovementFilter) ([]entity.StockMovement, error) {
	var (
		conds []string
		args  []any
	)
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("company_id", f.CompanyID)
	add("product_id", f.ProductID)
	add("branch_id", f.BranchID)
	add("variation_id", f.VariationID)

	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []entity.StockMovement
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return list, nil
}

// FindRecentAdjustment busca un ajuste equivalente ya registrado dentro de la ventana.
func (r *StockMovementRepo) FindRecentAdjustment(
	ctx context.Context,
	companyID, productID string,
	qty, tol decimal.Decimal,
	since time.Time,
) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + `
		FROM stock_movements
		WHERE product_id = $1
		  AND company_id = $2
		  AND movement_type = 'adjustment'
		  AND ABS(quantity - $3) < $4
		  AND created_at > $5
		ORDER BY created_at DESC
		LIMIT 1`
	m, err := scanStockMovement(r.q.QueryRow(ctx, query, productID, companyID, qty, tol, since))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find recent adjustment: %w", err)
	}
	return m, nil
}

// Create inserta un movimiento. Asigna ID y CreatedAt si vienen vacíos.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO stock_movements (
			id, company_id, branch_id, product_id, variation_id, movement_type,
			quantity, unit_cost, total_cost, reference_type, reference_id, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, nullable(m.BranchID), m.ProductID, nullable(m.VariationID), m.MovementType,
		m.Quantity, m.UnitCost, m.TotalCost, nullable(m.ReferenceType), nullable(m.ReferenceID),
		nullable(m.Notes), m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func scanStockMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var branchID, variationID, refType, refID, notes *string
	err := row.Scan(
		&m.ID, &m.CompanyID, &branchID, &m.ProductID, &variationID, &m.MovementType, &m.Quantity,
		&m.UnitCost, &m.TotalCost, &refType, &refID, &notes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.BranchID = deref(branchID)
	m.VariationID = deref(variationID)
	m.ReferenceType = deref(refType)
	m.ReferenceID = deref(refID)
	m.Notes = deref(notes)
	return &m, nil
}
